// Package clips turns transcript segments into clip candidates.
package clips

import (
	"math/rand"
	"strings"
	"time"

	"github.com/amryshahrul0/auto-youtube-clipper/internal/types"
)

// Selector filters transcript segments by duration window and shuffles
// the survivors so different moments get picked run over run.
type Selector struct {
	min time.Duration
	max time.Duration
	rng *rand.Rand
}

// New returns a selector for the [min, max] duration window. rng drives
// the candidate shuffle; pass a seeded source in tests, or nil for a
// time-seeded one.
func New(min, max time.Duration, rng *rand.Rand) Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return Selector{min: min, max: max, rng: rng}
}

// Select keeps segments whose duration falls inside the window and whose
// trimmed text is non-empty, preserving each segment's start, end and
// text exactly. The returned order is randomized. Empty input yields an
// empty result, which is not an error.
func (s Selector) Select(videoID string, segs []types.Segment) []types.ClipCandidate {
	var out []types.ClipCandidate
	for _, seg := range segs {
		d := dur(seg.End) - dur(seg.Start)
		if d < s.min || d > s.max {
			continue
		}
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		out = append(out, types.ClipCandidate{
			Start:         dur(seg.Start),
			End:           dur(seg.End),
			Text:          seg.Text,
			SourceVideoID: videoID,
		})
	}
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
