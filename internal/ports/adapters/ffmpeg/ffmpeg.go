// Package ffmpeg cuts clips out of local media via the ffmpeg executable.
package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Adapter renders vertical (1080x1920) clips with ffmpeg.
type Adapter struct {
	ffmpeg string
}

// New returns an adapter; ffmpegPath defaults to "ffmpeg" on PATH.
func New(ffmpegPath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{ffmpeg: ffmpegPath}
}

// Cut re-encodes the [start, end) excerpt of mediaPath into a vertical
// short at outPath.
func (a *Adapter) Cut(ctx context.Context, mediaPath string, start, end time.Duration, outPath string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-ss", fmtSeconds(start),
		"-to", fmtSeconds(end),
		"-i", mediaPath,
		"-vf", "scale=1080:1920:force_original_aspect_ratio=decrease,pad=1080:1920:(ow-iw)/2:(oh-ih)/2",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		outPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg cut clip: %w\n%s", err, string(b))
	}
	return nil
}

func fmtSeconds(d time.Duration) string {
	sec := float64(d) / float64(time.Second)
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
