// Package channels maps configured source channels to candidate videos.
package channels

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amryshahrul0/auto-youtube-clipper/internal/ports"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/types"
)

// ResolveError wraps a per-channel resolution or listing failure with
// the channel that caused it. Recover it with errors.As to learn which
// configured channel was skipped.
type ResolveError struct {
	Channel string
	Err     error
}

func (e *ResolveError) Error() string {
	return "channels: " + e.Channel + ": " + e.Err.Error()
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Resolver turns a configured channel list into an ordered list of
// recent candidate videos. A channel that cannot be resolved or listed
// is skipped with a warning; it never fails the run.
type Resolver struct {
	lookup ports.ChannelLookup
	log    *slog.Logger
}

// New returns a resolver backed by the given lookup.
func New(lookup ports.ChannelLookup, log *slog.Logger) *Resolver {
	return &Resolver{lookup: lookup, log: log}
}

// ResolveAndList fetches up to maxPerChannel recent videos per channel,
// newest first within a channel. Output across channels is concatenated
// in input order: when quota is scarce, first-listed channels win.
func (r *Resolver) ResolveAndList(ctx context.Context, identifiers []string, maxPerChannel int) []types.VideoRef {
	var out []types.VideoRef
	for _, ident := range identifiers {
		refs, err := r.ListChannel(ctx, ident, maxPerChannel)
		if err != nil {
			r.log.Warn("channel skipped", "channel", ident, "error", err)
			continue
		}
		if len(refs) == 0 {
			r.log.Info("channel has no recent videos", "channel", ident)
			continue
		}
		out = append(out, refs...)
	}
	return out
}

// ListChannel resolves a single identifier and fetches its recent
// videos. Failures come back as a *ResolveError naming the channel.
func (r *Resolver) ListChannel(ctx context.Context, ident string, maxPerChannel int) ([]types.VideoRef, error) {
	id, err := r.resolve(ctx, ident)
	if err != nil {
		return nil, &ResolveError{Channel: ident, Err: err}
	}
	refs, err := r.lookup.ListRecent(ctx, id, maxPerChannel)
	if err != nil {
		return nil, &ResolveError{Channel: ident, Err: err}
	}
	return refs, nil
}

// resolve maps a handle-form identifier to a channel id; identifiers
// that already look like channel ids pass through untouched.
func (r *Resolver) resolve(ctx context.Context, ident string) (string, error) {
	if !IsHandle(ident) {
		return ident, nil
	}
	return r.lookup.ResolveHandle(ctx, ident)
}

// IsHandle reports whether the identifier is a human handle (@name)
// rather than a platform channel id.
func IsHandle(ident string) bool {
	return strings.HasPrefix(ident, "@")
}
