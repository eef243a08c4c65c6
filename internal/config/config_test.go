package config

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if cfg.MinClipSeconds != DefaultMinClipSeconds || cfg.MaxClipSeconds != DefaultMaxClipSeconds {
		t.Fatalf("unexpected clip window defaults: %d-%d", cfg.MinClipSeconds, cfg.MaxClipSeconds)
	}
	if cfg.ClipsPerDay != DefaultClipsPerDay {
		t.Fatalf("unexpected quota default: %d", cfg.ClipsPerDay)
	}
	if cfg.Visibility != DefaultVisibility {
		t.Fatalf("unexpected visibility default: %q", cfg.Visibility)
	}
	if cfg.LedgerBackend != DefaultLedgerBackend {
		t.Fatalf("unexpected ledger backend default: %q", cfg.LedgerBackend)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv(EnvChannels, "@somecast, UCabc123 ,")
	t.Setenv(EnvClipsPerDay, "3")
	t.Setenv(EnvMinClipSeconds, "15")
	t.Setenv(EnvVisibility, "unlisted")
	t.Setenv(EnvOpenRouterAllowedHosts, "proxy.internal,openrouter.ai")

	cfg, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(cfg.Channels) != 2 || cfg.Channels[0] != "@somecast" || cfg.Channels[1] != "UCabc123" {
		t.Fatalf("channel list parsed wrong: %v", cfg.Channels)
	}
	if cfg.ClipsPerDay != 3 {
		t.Fatalf("quota override ignored: %d", cfg.ClipsPerDay)
	}
	if cfg.MinClip() != 15*time.Second {
		t.Fatalf("min clip override ignored: %v", cfg.MinClip())
	}
	if cfg.Visibility != "unlisted" {
		t.Fatalf("visibility override ignored: %q", cfg.Visibility)
	}
	if len(cfg.OpenRouterAllowedHosts) != 2 || cfg.OpenRouterAllowedHosts[0] != "proxy.internal" {
		t.Fatalf("allowed hosts parsed wrong: %v", cfg.OpenRouterAllowedHosts)
	}
}

func TestNew_RejectsBadIntegers(t *testing.T) {
	t.Setenv(EnvClipsPerDay, "eight")

	if _, err := New(); err == nil {
		t.Fatalf("expected error for non-numeric %s", EnvClipsPerDay)
	}
}
