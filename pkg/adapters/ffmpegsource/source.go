// Package ffmpegsource implements ports.VideoSource by running ffmpeg for
// each decoded frame. Metadata comes from the MP4 container when possible
// and from ffprobe otherwise.
package ffmpegsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/user/framemark/pkg/adapters/logger"
	"github.com/user/framemark/pkg/adapters/mp4probe"
	"github.com/user/framemark/pkg/ports"
)

// Options configures Open.
type Options struct {
	// FFmpegPath and FFprobePath override binary discovery when set.
	FFmpegPath  string
	FFprobePath string
	Logger      ports.Logger
}

// Source decodes frames from a video file. ReadNext and Seek share a cursor
// and must be used from one goroutine; Grab is safe for concurrent use.
type Source struct {
	path   string
	ffmpeg string
	info   ports.VideoInfo
	logger ports.Logger

	mu       sync.Mutex
	position int
	closed   bool
}

// Open probes path and returns a source positioned at frame 0.
func Open(ctx context.Context, path string, opts Options) (*Source, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	log = log.WithComponent("ffmpeg")

	if _, err := os.Stat(path); err != nil {
		return nil, newProcessError(OpOpen, path, err, "")
	}

	ffmpegPath, err := FindFFmpeg(opts.FFmpegPath)
	if err != nil {
		return nil, err
	}

	info, err := probe(ctx, path, opts.FFprobePath, log)
	if err != nil {
		return nil, err
	}
	log.Debug("Opened %s: %s", path, describe(info))

	return &Source{
		path:   path,
		ffmpeg: ffmpegPath,
		info:   info,
		logger: log,
	}, nil
}

// probe reads container metadata for MP4 family files and falls back to
// ffprobe when that fails or leaves the frame count or rate unknown.
func probe(ctx context.Context, path, ffprobePath string, log ports.Logger) (ports.VideoInfo, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		info, err := mp4probe.ProbeFile(path)
		if err == nil && info.FrameCount > 0 && info.FrameRate > 0 {
			return info, nil
		}
		if err != nil {
			log.Debug("Container probe failed, trying ffprobe: %s", err.Error())
		}
	}

	bin, err := FindFFprobe(ffprobePath)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	return ffprobe(ctx, bin, path)
}

// Info returns the probed stream metadata.
func (s *Source) Info() ports.VideoInfo {
	return s.info
}

func (s *Source) FrameRate() float64 {
	return s.info.FrameRate
}

func (s *Source) FrameCount() int {
	return s.info.FrameCount
}

func (s *Source) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// ReadNext decodes the frame at the cursor and advances it by one.
func (s *Source) ReadNext(ctx context.Context) (ports.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ports.Frame{}, ErrClosed
	}
	if s.position >= s.info.FrameCount {
		return ports.Frame{}, ports.ErrEndOfStream
	}

	img, err := s.decode(ctx, s.position)
	if err != nil {
		return ports.Frame{}, err
	}
	frame := ports.Frame{Image: img, Index: s.position}
	s.position++
	return frame, nil
}

// Seek moves the cursor. index may equal FrameCount, which positions the
// source at end of stream.
func (s *Source) Seek(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if index < 0 || index > s.info.FrameCount {
		return fmt.Errorf("seek %d out of range [0, %d]", index, s.info.FrameCount)
	}
	s.position = index
	return nil
}

// Grab decodes frame index without moving the cursor.
func (s *Source) Grab(ctx context.Context, index int) (image.Image, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return nil, ErrClosed
	}
	if index < 0 || index >= s.info.FrameCount {
		return nil, fmt.Errorf("grab %d out of range [0, %d)", index, s.info.FrameCount)
	}
	return s.decode(ctx, index)
}

// Close releases the source. Calling it again is a no-op.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// decode runs ffmpeg to extract a single frame as PNG. The seek target is
// half a frame before the frame's timestamp so rounding never lands on the
// previous frame.
func (s *Source) decode(ctx context.Context, index int) (image.Image, error) {
	if !(s.info.FrameRate > 0) {
		return nil, newProcessError(OpDecode, s.path, errUnknownFrameRate, "")
	}
	ts := (float64(index) - 0.5) / s.info.FrameRate
	if ts < 0 {
		ts = 0
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.ffmpeg,
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(ts, 'f', 6, 64),
		"-i", s.path,
		"-frames:v", "1",
		"-an",
		"-f", "image2pipe",
		"-c:v", "png",
		"-",
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Debug("Decoding frame %d at %.3fs", index, ts)
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, newProcessError(OpDecode, s.path, err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, ports.ErrEndOfStream
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, newProcessError(OpDecode, s.path, fmt.Errorf("decode png: %w", err), "")
	}
	return img, nil
}

var (
	_ ports.VideoSource  = (*Source)(nil)
	_ ports.FrameGrabber = (*Source)(nil)
)

// IsNotFound reports whether err means a required binary is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFFmpegNotFound) || errors.Is(err, ErrFFprobeNotFound)
}
