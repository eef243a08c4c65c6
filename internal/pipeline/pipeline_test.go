package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports/adapters/youtubeapi"
)

func validConfig() Config {
	return Config{
		Channels:      []string{"@somecast"},
		MaxPerChannel: 5,
		MinClip:       20 * time.Second,
		MaxClip:       45 * time.Second,
		ClipsPerDay:   8,
		Visibility:    "public",
		WhisperBin:    "whisper.cpp",
		WhisperModel:  "ggml-base.bin",
		YouTubeAPIKey: "yt-key",
		OAuth: youtubeapi.OAuthCredentials{
			ClientID:     "id",
			ClientSecret: "secret",
			RefreshToken: "token",
		},
		OpenRouterAPIKey: "or-key",
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no channels", func(c *Config) { c.Channels = nil }, "source channel"},
		{"zero per channel", func(c *Config) { c.MaxPerChannel = 0 }, "max results"},
		{"zero min clip", func(c *Config) { c.MinClip = 0 }, "min clip"},
		{"min above max", func(c *Config) { c.MinClip = time.Minute; c.MaxClip = time.Second }, "max clip"},
		{"zero quota", func(c *Config) { c.ClipsPerDay = 0 }, "quota"},
		{"bad visibility", func(c *Config) { c.Visibility = "secret" }, "visibility"},
		{"no whisper model", func(c *Config) { c.WhisperModel = "" }, "whisper"},
		{"no api key", func(c *Config) { c.YouTubeAPIKey = "" }, "YOUTUBE_API_KEY"},
		{"no openrouter key", func(c *Config) { c.OpenRouterAPIKey = "" }, "OPENROUTER_API_KEY"},
		{"no refresh token", func(c *Config) { c.OAuth.RefreshToken = "" }, "OAuth"},
		{"http base url", func(c *Config) { c.OpenRouterBaseURL = "http://openrouter.ai" }, "https"},
		{"unlisted base url host", func(c *Config) { c.OpenRouterBaseURL = "https://evil.example" }, "OPENROUTER_ALLOWED_HOSTS"},
		{"allowlisted base url host", func(c *Config) {
			c.OpenRouterBaseURL = "https://proxy.internal"
			c.OpenRouterAllowedHosts = []string{"proxy.internal"}
		}, ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}
