// Package framesink implements ports.Display by writing the current frame,
// with its overlay, to an image file that any image viewer can watch.
package framesink

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/user/framemark/pkg/ports"
)

// Composer draws overlay lines onto a frame.
type Composer interface {
	Compose(ctx context.Context, frame image.Image, lines []string) (image.Image, error)
}

// Options configures a Sink.
type Options struct {
	Path string
	// MaxWidth scales wider frames down, keeping the aspect ratio. Zero
	// keeps the original size.
	MaxWidth int
}

// Sink writes each shown frame to Options.Path as PNG.
type Sink struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	composer Composer
	opts     Options

	mu    sync.Mutex
	last  image.Image
	shown int
}

// New creates a Sink.
func New(fs ports.FileSystem, renderer ports.Renderer, composer Composer, opts Options) *Sink {
	return &Sink{
		fs:       fs,
		renderer: renderer,
		composer: composer,
		opts:     opts,
	}
}

// Path returns the preview file path.
func (s *Sink) Path() string {
	return s.opts.Path
}

func (s *Sink) Show(ctx context.Context, frame ports.Frame, overlays []string) error {
	img, err := s.composer.Compose(ctx, frame.Image, overlays)
	if err != nil {
		return fmt.Errorf("compose frame %d: %w", frame.Index, err)
	}
	img = s.fit(img)

	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", frame.Index, err)
	}
	if err := s.fs.WriteFile(s.opts.Path, data); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}

	s.mu.Lock()
	s.last = img
	s.shown++
	s.mu.Unlock()
	return nil
}

// Last returns the most recently written image.
func (s *Sink) Last() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Shown returns the number of frames written.
func (s *Sink) Shown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}

func (s *Sink) fit(img image.Image) image.Image {
	b := img.Bounds()
	if s.opts.MaxWidth <= 0 || b.Dx() <= s.opts.MaxWidth {
		return img
	}
	h := b.Dy() * s.opts.MaxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	return s.renderer.ResizeImage(img, s.opts.MaxWidth, h)
}

var _ ports.Display = (*Sink)(nil)
