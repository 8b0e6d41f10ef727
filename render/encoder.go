package render

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
)

// FrameWriter receives one encoded frame per access event and is closed once
// the sequence ends.
type FrameWriter interface {
	WriteFrame(frame []byte) error
	Close() error
}

// VideoEncoder pipes PNG frames into an external ffmpeg process that encodes
// an h264 MP4. ffmpeg is a collaborator, not part of the simulator contract;
// its failures surface here.
type VideoEncoder struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// NewVideoEncoder starts ffmpeg reading PNG frames from stdin.
func NewVideoEncoder(output string, fps int) (*VideoEncoder, error) {
	rate := strconv.Itoa(fps)
	cmd := exec.Command("ffmpeg",
		"-y", "-f", "png_pipe", "-r", rate, "-i", "-",
		"-vcodec", "h264", "-r", rate, "-f", "mp4", output)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening ffmpeg stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting ffmpeg: %w", err)
	}
	logrus.Infof("Encoding %s at %d fps via ffmpeg", output, fps)
	return &VideoEncoder{cmd: cmd, stdin: stdin}, nil
}

// WriteFrame feeds one PNG-encoded frame to the encoder.
func (e *VideoEncoder) WriteFrame(frame []byte) error {
	_, err := e.stdin.Write(frame)
	return err
}

// Close ends the frame stream and waits for ffmpeg to finish the container.
func (e *VideoEncoder) Close() error {
	if err := e.stdin.Close(); err != nil {
		return err
	}
	return e.cmd.Wait()
}

// FrameDir writes each frame to a numbered file (frame_00000.ext, ...) inside
// a directory, for inspection or external assembly.
type FrameDir struct {
	dir  string
	ext  string
	next int
}

// NewFrameDir creates the directory if needed and returns a writer for it.
func NewFrameDir(dir, ext string) (*FrameDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating frame directory: %w", err)
	}
	return &FrameDir{dir: dir, ext: ext}, nil
}

// WriteFrame stores the next numbered frame file.
func (d *FrameDir) WriteFrame(frame []byte) error {
	path := filepath.Join(d.dir, fmt.Sprintf("frame_%05d.%s", d.next, d.ext))
	d.next++
	return os.WriteFile(path, frame, 0o644)
}

// Close is a no-op; each frame file is closed as written.
func (d *FrameDir) Close() error { return nil }

// FrameCount returns how many frames have been written.
func (d *FrameDir) FrameCount() int { return d.next }
