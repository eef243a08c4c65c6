package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/amryshahrul0/auto-youtube-clipper/internal/channels"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/clips"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/ledger"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/logging"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/quota"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/types"
)

// Deps are the collaborators the orchestrator drives. All of them are
// opaque: the orchestrator only cares about the contract, not the tool
// behind it.
type Deps struct {
	Lookup     ports.ChannelLookup
	Downloader ports.Downloader
	Transcribe ports.Transcriber
	Titles     ports.TitleGenerator
	Cutter     ports.ClipCutter
	Uploader   ports.Uploader
	Ledger     ledger.Store
}

// Options is the run-scoped policy for one invocation.
type Options struct {
	Channels      []string
	MaxPerChannel int
	MinClip       time.Duration
	MaxClip       time.Duration
	ClipsPerDay   int
	Visibility    string
	FallbackTitle string
	WorkDir       string
	// ClipWorkers bounds concurrent clip emission within one video.
	// 1 means fully sequential.
	ClipWorkers int
	// Rand drives candidate shuffling; tests inject a seeded source.
	Rand *rand.Rand
	Log  *slog.Logger
}

// Orchestrator performs one full run: resolve channels, drop videos the
// ledger already holds, and drive each remaining video through
// download, transcription, selection, clip emission and finalization.
// Failures stay contained to their unit of work: a bad channel, video
// or clip never aborts the run.
type Orchestrator struct {
	d        Deps
	o        Options
	quota    *quota.Allocator
	selector clips.Selector
	resolver *channels.Resolver
	log      *slog.Logger
}

// NewOrchestrator wires the run policy onto the collaborators.
func NewOrchestrator(d Deps, o Options) *Orchestrator {
	log := o.Log
	if log == nil {
		log = slog.Default()
	}
	if o.ClipWorkers < 1 {
		o.ClipWorkers = 1
	}
	return &Orchestrator{
		d:        d,
		o:        o,
		quota:    quota.New(o.ClipsPerDay),
		selector: clips.New(o.MinClip, o.MaxClip, o.Rand),
		resolver: channels.New(d.Lookup, logging.WithComponent(log, "channels")),
		log:      log,
	}
}

// Run executes one pass over the configured channels. It returns an
// error only for failures that invalidate the whole run, such as a
// ledger that cannot be loaded; per-channel, per-video and per-clip
// failures are logged and skipped.
func (or *Orchestrator) Run(ctx context.Context) error {
	if err := or.d.Ledger.Load(ctx); err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	refs := or.resolver.ResolveAndList(ctx, or.o.Channels, or.o.MaxPerChannel)
	or.log.Info("run started",
		"channels", len(or.o.Channels),
		"candidate_videos", len(refs),
		"clip_quota", or.o.ClipsPerDay,
	)

	processed := 0
	for _, ref := range refs {
		if or.quota.Remaining() == 0 {
			// Videos not reached stay out of the ledger and remain
			// eligible next run.
			or.log.Info("quota exhausted, stopping video intake")
			break
		}
		if or.d.Ledger.Contains(ref.VideoID) {
			or.log.Debug("video already processed, skipping", "video_id", ref.VideoID)
			continue
		}
		if or.processVideo(ctx, ref) {
			processed++
		}
	}

	or.log.Info("run finished",
		"videos_processed", processed,
		"clips_remaining_quota", or.quota.Remaining(),
	)
	return nil
}

// processVideo drives one video through the pipeline. It reports
// whether the video completed its pass (and was committed to the
// ledger). A download failure leaves the video unledgered so a future
// run retries it; every later failure still ends in a ledger commit,
// because the contract is "attempted this video", not "produced output
// from it".
func (or *Orchestrator) processVideo(ctx context.Context, ref types.VideoRef) bool {
	log := logging.WithVideo(or.log, ref.VideoID)

	log.Info("downloading", "url", ref.URL)
	media, err := or.d.Downloader.Fetch(ctx, ref.URL)
	if err != nil {
		log.Warn("download failed, video stays eligible for next run",
			"error", &DownloadError{VideoID: ref.VideoID, Err: err})
		return false
	}

	scratch := filepath.Join(or.o.WorkDir, ref.VideoID)
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		log.Warn("scratch dir unavailable, video stays eligible for next run", "error", err)
		if err := os.Remove(media); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove downloaded media", "error", err)
		}
		return false
	}

	log.Info("transcribing")
	segs, err := or.d.Transcribe.Transcribe(ctx, media, scratch)
	if err != nil {
		// Transcription trouble demotes to "no segments"; the video
		// still finalizes so it is not retried forever.
		log.Warn("transcription failed, treating as empty transcript", "error", err)
		segs = nil
	}

	cands := or.selector.Select(ref.VideoID, segs)
	log.Info("selected clip candidates", "segments", len(segs), "candidates", len(cands))

	uploaded := or.emitClips(ctx, log, media, cands)

	// Finalize: all clip tasks for this video are done by now.
	if err := os.Remove(media); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to remove downloaded media", "error", err)
	}
	if err := os.RemoveAll(scratch); err != nil {
		log.Warn("failed to remove scratch dir", "error", err)
	}
	if err := or.d.Ledger.Append(ctx, ref.VideoID); err != nil && !errors.Is(err, ledger.ErrAlreadyProcessed) {
		log.Error("ledger append failed, video may be reprocessed next run", "error", err)
		return false
	}

	log.Info("video processed", "clips_uploaded", uploaded)
	return true
}

// emitClips cuts, titles and uploads candidates until they run out or
// the quota does. Capacity is reserved before a clip starts and given
// back if its upload fails, so the global cap holds even when clips run
// concurrently. Waits for all in-flight clips before returning.
func (or *Orchestrator) emitClips(ctx context.Context, log *slog.Logger, media string, cands []types.ClipCandidate) int {
	var (
		mu       sync.Mutex
		uploaded int
	)

	g := new(errgroup.Group)
	g.SetLimit(or.o.ClipWorkers)

	for i, cand := range cands {
		if !or.quota.TryConsume(1) {
			log.Info("quota exhausted, dropping remaining candidates", "dropped", len(cands)-i)
			break
		}
		cand := cand
		g.Go(func() error {
			if err := or.emitOne(ctx, log, media, cand); err != nil {
				or.quota.Release(1)
				log.Warn("clip failed, continuing with next candidate",
					"start", cand.Start, "end", cand.End, "error", err)
				return nil
			}
			mu.Lock()
			uploaded++
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return uploaded
}

// emitOne renders a single candidate, titles it and publishes it. A
// title-generation failure downgrades to the fallback title instead of
// dropping the clip.
func (or *Orchestrator) emitOne(ctx context.Context, log *slog.Logger, media string, cand types.ClipCandidate) error {
	clipsDir := filepath.Join(or.o.WorkDir, "clips")
	if err := os.MkdirAll(clipsDir, 0o755); err != nil {
		return fmt.Errorf("create clips dir: %w", err)
	}
	outPath := filepath.Join(clipsDir, uuid.NewString()+".mp4")

	if err := or.d.Cutter.Cut(ctx, media, cand.Start, cand.End, outPath); err != nil {
		// ffmpeg may have written a partial file before failing.
		os.Remove(outPath)
		return fmt.Errorf("cut: %w", err)
	}

	title, err := or.d.Titles.Generate(ctx, cand.Text)
	if err != nil {
		log.Warn("title generation failed, using fallback title", "error", err)
		title = or.o.FallbackTitle
	}

	remoteID, err := or.d.Uploader.Publish(ctx, outPath, title, or.o.Visibility)
	if err != nil {
		os.Remove(outPath)
		return &UploadError{VideoID: cand.SourceVideoID, Err: err}
	}

	log.Info("clip uploaded",
		"remote_id", remoteID,
		"title", title,
		"start", cand.Start,
		"end", cand.End,
	)
	return nil
}
