// Package config loads clipper configuration from environment
// variables with sensible defaults. Credentials are env-only; tuning
// options may also be overridden by CLI flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// Environment variable names.
	EnvChannels          = "CLIPPER_CHANNELS"
	EnvMaxPerChannel     = "CLIPPER_MAX_PER_CHANNEL"
	EnvMinClipSeconds    = "CLIPPER_MIN_CLIP_SECONDS"
	EnvMaxClipSeconds    = "CLIPPER_MAX_CLIP_SECONDS"
	EnvClipsPerDay       = "CLIPPER_CLIPS_PER_DAY"
	EnvVisibility        = "CLIPPER_VISIBILITY"
	EnvFallbackTitle     = "CLIPPER_FALLBACK_TITLE"
	EnvUploadDescription = "CLIPPER_UPLOAD_DESCRIPTION"
	EnvWorkDir           = "CLIPPER_WORK_DIR"
	EnvLedgerBackend     = "CLIPPER_LEDGER_BACKEND"
	EnvLedgerPath        = "CLIPPER_LEDGER_PATH"
	EnvClipWorkers       = "CLIPPER_CLIP_WORKERS"
	EnvLogLevel          = "CLIPPER_LOG_LEVEL"

	EnvYtdlpPath    = "CLIPPER_YTDLP_PATH"
	EnvFFmpegPath   = "CLIPPER_FFMPEG_PATH"
	EnvWhisperBin   = "CLIPPER_WHISPER_BIN"
	EnvWhisperModel = "CLIPPER_WHISPER_MODEL"

	EnvYouTubeAPIKey          = "YOUTUBE_API_KEY"
	EnvOAuthClientID          = "YOUTUBE_OAUTH_CLIENT_ID"
	EnvOAuthClientSecret      = "YOUTUBE_OAUTH_CLIENT_SECRET"
	EnvOAuthRefreshToken      = "YOUTUBE_OAUTH_REFRESH_TOKEN"
	EnvOpenRouterAPIKey       = "OPENROUTER_API_KEY"
	EnvOpenRouterModel        = "OPENROUTER_MODEL"
	EnvOpenRouterBaseURL      = "OPENROUTER_BASE_URL"
	EnvOpenRouterAllowedHosts = "OPENROUTER_ALLOWED_HOSTS"

	// Defaults. The clip window and quota follow the original cut
	// policy for podcast moments.
	DefaultMaxPerChannel     = 5
	DefaultMinClipSeconds    = 20
	DefaultMaxClipSeconds    = 45
	DefaultClipsPerDay       = 8
	DefaultVisibility        = "public"
	DefaultFallbackTitle     = "Podcast Highlight"
	DefaultUploadDescription = "#business #money #podcast"
	DefaultWorkDir           = ".cache/clipper"
	DefaultLedgerBackend     = "file"
	DefaultLedgerPath        = ".cache/clipper/processed.log"
	DefaultClipWorkers       = 1
	DefaultLogLevel          = "info"
	DefaultWhisperBin        = ".cache/bin/whisper.cpp"
	DefaultWhisperModel      = ".cache/models/ggml-base.bin"
)

// Config holds everything a run needs, resolved from the environment.
type Config struct {
	Channels       []string
	MaxPerChannel  int
	MinClipSeconds int
	MaxClipSeconds int
	ClipsPerDay    int
	Visibility     string
	FallbackTitle  string

	UploadDescription string
	WorkDir           string
	LedgerBackend     string
	LedgerPath        string
	ClipWorkers       int
	LogLevel          string

	YtdlpPath    string
	FFmpegPath   string
	WhisperBin   string
	WhisperModel string

	YouTubeAPIKey          string
	OAuthClientID          string
	OAuthClientSecret      string
	OAuthRefreshToken      string
	OpenRouterAPIKey       string
	OpenRouterModel        string
	OpenRouterBaseURL      string
	OpenRouterAllowedHosts []string
}

// New resolves configuration from the environment, applying defaults.
// Validation of the combined flag+env result happens in the pipeline
// config, after flag overrides are applied.
func New() (*Config, error) {
	cfg := &Config{
		Channels:               splitList(os.Getenv(EnvChannels)),
		MaxPerChannel:          DefaultMaxPerChannel,
		MinClipSeconds:         DefaultMinClipSeconds,
		MaxClipSeconds:         DefaultMaxClipSeconds,
		ClipsPerDay:            DefaultClipsPerDay,
		Visibility:             getenvDefault(EnvVisibility, DefaultVisibility),
		FallbackTitle:          getenvDefault(EnvFallbackTitle, DefaultFallbackTitle),
		UploadDescription:      getenvDefault(EnvUploadDescription, DefaultUploadDescription),
		WorkDir:                getenvDefault(EnvWorkDir, DefaultWorkDir),
		LedgerBackend:          getenvDefault(EnvLedgerBackend, DefaultLedgerBackend),
		LedgerPath:             getenvDefault(EnvLedgerPath, DefaultLedgerPath),
		ClipWorkers:            DefaultClipWorkers,
		LogLevel:               getenvDefault(EnvLogLevel, DefaultLogLevel),
		YtdlpPath:              os.Getenv(EnvYtdlpPath),
		FFmpegPath:             os.Getenv(EnvFFmpegPath),
		WhisperBin:             getenvDefault(EnvWhisperBin, DefaultWhisperBin),
		WhisperModel:           getenvDefault(EnvWhisperModel, DefaultWhisperModel),
		YouTubeAPIKey:          os.Getenv(EnvYouTubeAPIKey),
		OAuthClientID:          os.Getenv(EnvOAuthClientID),
		OAuthClientSecret:      os.Getenv(EnvOAuthClientSecret),
		OAuthRefreshToken:      os.Getenv(EnvOAuthRefreshToken),
		OpenRouterAPIKey:       os.Getenv(EnvOpenRouterAPIKey),
		OpenRouterModel:        os.Getenv(EnvOpenRouterModel),
		OpenRouterBaseURL:      os.Getenv(EnvOpenRouterBaseURL),
		OpenRouterAllowedHosts: splitList(os.Getenv(EnvOpenRouterAllowedHosts)),
	}

	for _, opt := range []struct {
		env string
		dst *int
	}{
		{EnvMaxPerChannel, &cfg.MaxPerChannel},
		{EnvMinClipSeconds, &cfg.MinClipSeconds},
		{EnvMaxClipSeconds, &cfg.MaxClipSeconds},
		{EnvClipsPerDay, &cfg.ClipsPerDay},
		{EnvClipWorkers, &cfg.ClipWorkers},
	} {
		if v := os.Getenv(opt.env); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", opt.env, err)
			}
			*opt.dst = n
		}
	}

	return cfg, nil
}

// MinClip returns the clip window lower bound as a duration.
func (c *Config) MinClip() time.Duration {
	return time.Duration(c.MinClipSeconds) * time.Second
}

// MaxClip returns the clip window upper bound as a duration.
func (c *Config) MaxClip() time.Duration {
	return time.Duration(c.MaxClipSeconds) * time.Second
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated channel list, dropping empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
