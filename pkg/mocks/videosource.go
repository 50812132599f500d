package mocks

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/user/framemark/pkg/ports"
)

// ErrSourceClosed is returned by VideoSource after Close.
var ErrSourceClosed = errors.New("mock video source closed")

// VideoSource is an in-memory ports.VideoSource and ports.FrameGrabber.
// Frame images are 4x4 and filled with a gray level derived from the index.
type VideoSource struct {
	mu sync.Mutex

	Rate     float64
	Count    int
	position int
	closed   bool

	ReadNextFunc func(ctx context.Context) (ports.Frame, error)
	SeekFunc     func(index int) error
	GrabFunc     func(ctx context.Context, index int) (image.Image, error)
	CloseFunc    func() error

	// Recorded calls for assertions.
	Seeks      []int
	Reads      int
	CloseCalls int
}

// NewVideoSource creates a source with count frames at rate fps.
func NewVideoSource(count int, rate float64) *VideoSource {
	return &VideoSource{Rate: rate, Count: count}
}

func (m *VideoSource) FrameRate() float64 { return m.Rate }

func (m *VideoSource) FrameCount() int { return m.Count }

func (m *VideoSource) Position() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *VideoSource) ReadNext(ctx context.Context) (ports.Frame, error) {
	if m.ReadNextFunc != nil {
		return m.ReadNextFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ports.Frame{}, ErrSourceClosed
	}
	m.Reads++
	if m.position >= m.Count {
		return ports.Frame{}, ports.ErrEndOfStream
	}
	frame := ports.Frame{Image: FrameImage(m.position), Index: m.position}
	m.position++
	return frame, nil
}

func (m *VideoSource) Seek(index int) error {
	if m.SeekFunc != nil {
		return m.SeekFunc(index)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrSourceClosed
	}
	if index < 0 || index > m.Count {
		return fmt.Errorf("seek %d out of range [0, %d]", index, m.Count)
	}
	m.Seeks = append(m.Seeks, index)
	m.position = index
	return nil
}

func (m *VideoSource) Grab(ctx context.Context, index int) (image.Image, error) {
	if m.GrabFunc != nil {
		return m.GrabFunc(ctx, index)
	}
	if index < 0 || index >= m.Count {
		return nil, fmt.Errorf("grab %d out of range [0, %d)", index, m.Count)
	}
	return FrameImage(index), nil
}

func (m *VideoSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	m.closed = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Closed reports whether Close was called.
func (m *VideoSource) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// FrameImage returns the synthetic image the mock produces for index.
func FrameImage(index int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	c := color.RGBA{R: uint8(index), G: uint8(index), B: uint8(index), A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var (
	_ ports.VideoSource  = (*VideoSource)(nil)
	_ ports.FrameGrabber = (*VideoSource)(nil)
)
