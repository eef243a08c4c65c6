package ports

import (
	"context"
	"time"

	"github.com/amryshahrul0/auto-youtube-clipper/internal/types"
)

// Downloader fetches a remote video to local storage and returns the
// path of the downloaded media file.
type Downloader interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Transcriber produces timed transcript segments for a local media file.
// workDir is a scratch directory the adapter may use for intermediates.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath, workDir string) ([]types.Segment, error)
}

// TitleGenerator turns a clip's transcript text into a short title.
type TitleGenerator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// ClipCutter renders the [start, end) excerpt of a local media file to outPath.
type ClipCutter interface {
	Cut(ctx context.Context, mediaPath string, start, end time.Duration, outPath string) error
}

// Uploader publishes a local clip and returns the remote video id.
// On success the uploader reclaims the local clip file.
type Uploader interface {
	Publish(ctx context.Context, clipPath, title, visibility string) (string, error)
}

// ChannelLookup resolves channel handles and lists recent uploads.
type ChannelLookup interface {
	// ResolveHandle maps a handle such as "@somecast" to a channel id.
	ResolveHandle(ctx context.Context, handle string) (string, error)
	// ListRecent returns up to n most recent videos for a channel,
	// newest first.
	ListRecent(ctx context.Context, channelID string, n int) ([]types.VideoRef, error)
}
