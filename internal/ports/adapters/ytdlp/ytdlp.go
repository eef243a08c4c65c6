// Package ytdlp downloads source videos via the yt-dlp executable.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Adapter shells out to yt-dlp to fetch a video as mp4.
type Adapter struct {
	bin     string
	workDir string
}

// New returns an adapter downloading into workDir. binPath defaults to
// "yt-dlp" on PATH.
func New(binPath, workDir string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath, workDir: workDir}
}

// Fetch downloads url and returns the local media path. yt-dlp prints
// the final path after any post-processing move, which avoids guessing
// the extension.
func (a *Adapter) Fetch(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(a.workDir, 0o755); err != nil {
		return "", fmt.Errorf("yt-dlp: create work dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, a.bin,
		"-f", "mp4",
		"-o", filepath.Join(a.workDir, "%(id)s.%(ext)s"),
		"--no-warnings",
		"--no-playlist",
		"--print", "after_move:filepath",
		"--no-simulate",
		url,
	)
	b, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("yt-dlp failed: %w\n%s", err, string(ee.Stderr))
		}
		return "", fmt.Errorf("yt-dlp failed: %w", err)
	}

	path := lastLine(string(b))
	if path == "" {
		return "", fmt.Errorf("yt-dlp: no output path for %s", url)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("yt-dlp: stat downloaded file: %w", err)
	}
	return path, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
