package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/amryshahrul0/auto-youtube-clipper/internal/config"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/logging"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/pipeline"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports/adapters/youtubeapi"
)

func run(cmd *cobra.Command) error {
	env, err := config.New()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Flags override environment where set.
	if v, _ := cmd.Flags().GetStringSlice("channels"); len(v) > 0 {
		env.Channels = v
	}
	for _, opt := range []struct {
		flag string
		dst  *int
	}{
		{"max-per-channel", &env.MaxPerChannel},
		{"clips-per-day", &env.ClipsPerDay},
		{"min-clip", &env.MinClipSeconds},
		{"max-clip", &env.MaxClipSeconds},
		{"clip-workers", &env.ClipWorkers},
	} {
		if v, _ := cmd.Flags().GetInt(opt.flag); v > 0 {
			*opt.dst = v
		}
	}
	if v, _ := cmd.Flags().GetString("visibility"); v != "" {
		env.Visibility = v
	}
	if v, _ := cmd.Flags().GetString("ledger"); v != "" {
		env.LedgerPath = v
	}

	cfg := pipeline.Config{
		Channels:      env.Channels,
		MaxPerChannel: env.MaxPerChannel,
		MinClip:       env.MinClip(),
		MaxClip:       env.MaxClip(),
		ClipsPerDay:   env.ClipsPerDay,
		Visibility:    env.Visibility,
		FallbackTitle: env.FallbackTitle,

		WorkDir:       env.WorkDir,
		LedgerBackend: env.LedgerBackend,
		LedgerPath:    env.LedgerPath,
		ClipWorkers:   env.ClipWorkers,

		YtdlpPath:    env.YtdlpPath,
		FFmpegPath:   env.FFmpegPath,
		WhisperBin:   env.WhisperBin,
		WhisperModel: env.WhisperModel,

		YouTubeAPIKey: env.YouTubeAPIKey,
		OAuth: youtubeapi.OAuthCredentials{
			ClientID:     env.OAuthClientID,
			ClientSecret: env.OAuthClientSecret,
			RefreshToken: env.OAuthRefreshToken,
		},

		OpenRouterAPIKey:       env.OpenRouterAPIKey,
		OpenRouterModel:        env.OpenRouterModel,
		OpenRouterBaseURL:      env.OpenRouterBaseURL,
		OpenRouterAllowedHosts: env.OpenRouterAllowedHosts,

		UploadDescription: env.UploadDescription,

		Log: logging.New(env.LogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Hour)
	defer cancel()

	return pipeline.Run(ctx, cfg)
}
