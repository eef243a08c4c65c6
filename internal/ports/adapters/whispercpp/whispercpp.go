// Package whispercpp transcribes local media via the whisper.cpp CLI.
package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/amryshahrul0/auto-youtube-clipper/internal/types"
)

// Adapter extracts mono 16k audio with ffmpeg, then runs whisper.cpp on
// the result and parses its JSON output.
type Adapter struct {
	bin    string
	model  string
	ffmpeg string
}

// New returns an adapter using the given whisper.cpp binary and model.
// ffmpegPath defaults to "ffmpeg" on PATH.
func New(binPath, modelPath, ffmpegPath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{bin: binPath, model: modelPath, ffmpeg: ffmpegPath}
}

type transcriptJSON struct {
	Segments []types.Segment `json:"segments"`
}

// Transcribe produces timed segments for mediaPath, using workDir for
// the intermediate wav and whisper output files.
func (a *Adapter) Transcribe(ctx context.Context, mediaPath, workDir string) ([]types.Segment, error) {
	wav := filepath.Join(workDir, "audio.wav")
	if err := a.extractAudio(ctx, mediaPath, wav); err != nil {
		return nil, err
	}
	defer os.Remove(wav)

	outPrefix := filepath.Join(workDir, "whisper")
	cmd := exec.CommandContext(ctx, a.bin,
		"-m", a.model,
		"-f", wav,
		"-oj",
		"-of", outPrefix,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return nil, err
	}
	var tr transcriptJSON
	if err := json.Unmarshal(jb, &tr); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}
	for i := range tr.Segments {
		tr.Segments[i].Text = strings.TrimSpace(tr.Segments[i].Text)
	}
	return tr.Segments, nil
}

func (a *Adapter) extractAudio(ctx context.Context, inMP4, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inMP4,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}
