// Package nulldisplay provides a ports.Display that discards frames.
package nulldisplay

import (
	"context"
	"sync/atomic"

	"github.com/user/framemark/pkg/ports"
)

// Display discards frames and counts them.
type Display struct {
	shown atomic.Int64
}

// New creates a Display.
func New() *Display {
	return &Display{}
}

func (d *Display) Show(ctx context.Context, frame ports.Frame, overlays []string) error {
	d.shown.Add(1)
	return nil
}

// Shown returns the number of frames passed to Show.
func (d *Display) Shown() int {
	return int(d.shown.Load())
}

var _ ports.Display = (*Display)(nil)
