package media

import (
	"context"
	"fmt"
	"os/exec"
)

const thumbnailOffset = "00:00:01"

// FFmpeg extracts a single frame one second into a video. The tool runs
// as a blocking subprocess with its output discarded; a non-zero exit is
// terminal for the calling pipeline.
type FFmpeg struct {
	bin string
}

func NewFFmpeg() *FFmpeg {
	return &FFmpeg{bin: "ffmpeg"}
}

func (f *FFmpeg) Capture(ctx context.Context, videoPath, thumbPath string) error {
	cmd := exec.CommandContext(ctx, f.bin, thumbnailArgs(videoPath, thumbPath)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg thumbnail: %w", err)
	}
	return nil
}

func thumbnailArgs(videoPath, thumbPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-ss", thumbnailOffset,
		"-vframes", "1",
		thumbPath,
	}
}
