package types

import "time"

// VideoRef points at a single candidate video discovered on a channel.
// It lives only for the duration of one run.
type VideoRef struct {
	VideoID   string
	URL       string
	ChannelID string
}

// Segment is a timed transcript span as produced by the transcriber.
// Start and End are in seconds; End > Start for valid segments.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// ClipCandidate is a segment that passed the duration window and has
// non-empty text. Candidates for one video are independent and may be
// reordered before consumption.
type ClipCandidate struct {
	Start         time.Duration
	End           time.Duration
	Text          string
	SourceVideoID string
}

// Duration returns the clip length.
func (c ClipCandidate) Duration() time.Duration { return c.End - c.Start }
