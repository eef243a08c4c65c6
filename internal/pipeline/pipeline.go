// Package pipeline wires the external collaborators together and runs
// one full clipping pass over the configured channels.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/amryshahrul0/auto-youtube-clipper/internal/ledger"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports/adapters/ffmpeg"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports/adapters/openrouter"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports/adapters/whispercpp"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports/adapters/youtubeapi"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports/adapters/ytdlp"
)

// Config is the full, immutable configuration for one run.
type Config struct {
	Channels      []string
	MaxPerChannel int
	MinClip       time.Duration
	MaxClip       time.Duration
	ClipsPerDay   int
	Visibility    string
	FallbackTitle string

	WorkDir       string
	LedgerBackend string
	LedgerPath    string
	ClipWorkers   int

	YtdlpPath    string
	FFmpegPath   string
	WhisperBin   string
	WhisperModel string

	YouTubeAPIKey string
	OAuth         youtubeapi.OAuthCredentials

	OpenRouterAPIKey       string
	OpenRouterModel        string
	OpenRouterBaseURL      string
	OpenRouterAllowedHosts []string

	UploadDescription string

	Log  *slog.Logger
	Rand *rand.Rand
}

var validVisibilities = map[string]struct{}{
	"public":   {},
	"unlisted": {},
	"private":  {},
}

// Validate rejects configurations the run cannot start with. Anything
// caught here is fatal; nothing has been downloaded or uploaded yet.
func (c Config) Validate() error {
	if len(c.Channels) == 0 {
		return errors.New("at least one source channel is required")
	}
	if c.MaxPerChannel <= 0 {
		return errors.New("max results per channel must be > 0")
	}
	if c.MinClip <= 0 {
		return errors.New("min clip duration must be > 0")
	}
	if c.MaxClip < c.MinClip {
		return errors.New("max clip duration must be >= min clip duration")
	}
	if c.ClipsPerDay <= 0 {
		return errors.New("daily clip quota must be > 0")
	}
	if _, ok := validVisibilities[c.Visibility]; !ok {
		return fmt.Errorf("invalid upload visibility %q", c.Visibility)
	}
	if c.WhisperBin == "" || c.WhisperModel == "" {
		return errors.New("whisper binary and model paths are required")
	}
	if c.YouTubeAPIKey == "" {
		return errors.New("YOUTUBE_API_KEY is required")
	}
	if c.OpenRouterAPIKey == "" {
		return errors.New("OPENROUTER_API_KEY is required")
	}
	if c.OAuth.ClientID == "" || c.OAuth.ClientSecret == "" || c.OAuth.RefreshToken == "" {
		return errors.New("YouTube OAuth client id, secret and refresh token are required")
	}
	return openrouter.ValidateBaseURL(c.OpenRouterBaseURL, c.OpenRouterAllowedHosts)
}

// Run builds the adapters and the ledger, then performs one pass. Run
// returns nil even when individual channels, videos or clips failed;
// only startup failures surface as errors.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	lookup, err := youtubeapi.NewLookup(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		return err
	}
	uploader, err := youtubeapi.NewUploader(ctx, cfg.OAuth, cfg.UploadDescription)
	if err != nil {
		return err
	}

	store, err := ledger.Open(cfg.LedgerBackend, cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer store.Close()

	deps := Deps{
		Lookup:     lookup,
		Downloader: ytdlp.New(cfg.YtdlpPath, cfg.WorkDir),
		Transcribe: whispercpp.New(cfg.WhisperBin, cfg.WhisperModel, cfg.FFmpegPath),
		Titles:     openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.OpenRouterBaseURL),
		Cutter:     ffmpeg.New(cfg.FFmpegPath),
		Uploader:   uploader,
		Ledger:     store,
	}

	orch := NewOrchestrator(deps, Options{
		Channels:      cfg.Channels,
		MaxPerChannel: cfg.MaxPerChannel,
		MinClip:       cfg.MinClip,
		MaxClip:       cfg.MaxClip,
		ClipsPerDay:   cfg.ClipsPerDay,
		Visibility:    cfg.Visibility,
		FallbackTitle: cfg.FallbackTitle,
		WorkDir:       cfg.WorkDir,
		ClipWorkers:   cfg.ClipWorkers,
		Rand:          cfg.Rand,
		Log:           log,
	})
	return orch.Run(ctx)
}

// ensure adapters implement ports
var (
	_ ports.Downloader     = (*ytdlp.Adapter)(nil)
	_ ports.Transcriber    = (*whispercpp.Adapter)(nil)
	_ ports.TitleGenerator = (*openrouter.Adapter)(nil)
	_ ports.ClipCutter     = (*ffmpeg.Adapter)(nil)
	_ ports.Uploader       = (*youtubeapi.Uploader)(nil)
	_ ports.ChannelLookup  = (*youtubeapi.Lookup)(nil)
)
