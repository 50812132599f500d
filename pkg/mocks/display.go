package mocks

import (
	"context"
	"sync"

	"github.com/user/framemark/pkg/ports"
)

// ShownFrame records one Display.Show call.
type ShownFrame struct {
	Frame    ports.Frame
	Overlays []string
}

// Display is a mock implementation of ports.Display.
type Display struct {
	mu sync.Mutex

	ShowFunc func(ctx context.Context, frame ports.Frame, overlays []string) error

	Shown []ShownFrame
}

// NewDisplay creates a recording Display.
func NewDisplay() *Display {
	return &Display{}
}

func (m *Display) Show(ctx context.Context, frame ports.Frame, overlays []string) error {
	m.mu.Lock()
	m.Shown = append(m.Shown, ShownFrame{Frame: frame, Overlays: append([]string(nil), overlays...)})
	m.mu.Unlock()
	if m.ShowFunc != nil {
		return m.ShowFunc(ctx, frame, overlays)
	}
	return nil
}

// Last returns the most recent Show call.
func (m *Display) Last() (ShownFrame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Shown) == 0 {
		return ShownFrame{}, false
	}
	return m.Shown[len(m.Shown)-1], true
}

var _ ports.Display = (*Display)(nil)
