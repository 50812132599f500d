package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/user/framemark/pkg/ports"
)

// CaptureCall records one CaptureHTMLWithViewport call.
type CaptureCall struct {
	HTML   string
	Width  int
	Height int
}

// HTMLCapturer is a mock implementation of ports.HTMLCapturer.
type HTMLCapturer struct {
	mu sync.Mutex

	CaptureHTMLWithViewportFunc func(ctx context.Context, html string, width, height int) (image.Image, error)

	Calls []CaptureCall
}

// NewHTMLCapturer creates a mock that returns a transparent image of the
// requested width and a fixed 40px height.
func NewHTMLCapturer() *HTMLCapturer {
	return &HTMLCapturer{}
}

// CaptureHTMLWithViewport implements ports.HTMLCapturer.
func (m *HTMLCapturer) CaptureHTMLWithViewport(ctx context.Context, html string, width, height int) (image.Image, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, CaptureCall{HTML: html, Width: width, Height: height})
	m.mu.Unlock()
	if m.CaptureHTMLWithViewportFunc != nil {
		return m.CaptureHTMLWithViewportFunc(ctx, html, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, 40)), nil
}

// CallCount returns the number of captures performed.
func (m *HTMLCapturer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ ports.HTMLCapturer = (*HTMLCapturer)(nil)
