// Package playback tracks the current frame and play/pause state of a
// session and advances the video on each clock tick.
package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/framemark/pkg/annotation"
	"github.com/user/framemark/pkg/ports"
)

// Mode is the play state.
type Mode int

const (
	Paused Mode = iota
	Playing
)

func (m Mode) String() string {
	if m == Playing {
		return "playing"
	}
	return "paused"
}

// State is the mutable session state owned by a Controller.
//
// Current follows the decoder's read position: after frame N has been
// decoded and shown, Current is N+1. Annotations created at Current are
// therefore drawn when frame Current-1 is on screen.
type State struct {
	Current int
	Mode    Mode
}

// TickResult says what a Tick did.
type TickResult int

const (
	// Idle means playback is paused and nothing was decoded.
	Idle TickResult = iota
	// Advanced means one frame was decoded and shown.
	Advanced
	// Rewound means the stream ended; playback paused and rewound to frame 0.
	Rewound
)

// AnnotationIndex looks up annotations by frame position.
type AnnotationIndex interface {
	At(frame int) []annotation.Annotation
}

// Controller drives a ports.VideoSource. It is not safe for concurrent use;
// a single event loop owns it.
type Controller struct {
	source  ports.VideoSource
	display ports.Display
	index   AnnotationIndex
	logger  ports.Logger

	state State
}

// New creates a paused controller positioned at the source's current read
// position.
func New(source ports.VideoSource, display ports.Display, index AnnotationIndex, logger ports.Logger) *Controller {
	return &Controller{
		source:  source,
		display: display,
		index:   index,
		logger:  logger.WithComponent("playback"),
		state:   State{Current: source.Position(), Mode: Paused},
	}
}

// State returns a copy of the session state.
func (c *Controller) State() State {
	return c.state
}

// FrameRate returns the source frame rate.
func (c *Controller) FrameRate() float64 {
	return c.source.FrameRate()
}

// FrameCount returns the source frame count.
func (c *Controller) FrameCount() int {
	return c.source.FrameCount()
}

// TogglePlayback flips between Paused and Playing.
func (c *Controller) TogglePlayback() Mode {
	if c.state.Mode == Playing {
		c.state.Mode = Paused
	} else {
		c.state.Mode = Playing
	}
	c.logger.Debug("Playback %s at frame %d", c.state.Mode, c.state.Current)
	return c.state.Mode
}

// Tick performs one bounded unit of work: while playing it decodes and shows
// the next frame. At end of stream it pauses and rewinds to frame 0.
// A decode failure pauses playback and is returned.
func (c *Controller) Tick(ctx context.Context) (TickResult, error) {
	if c.state.Mode != Playing {
		return Idle, nil
	}

	frame, err := c.source.ReadNext(ctx)
	if errors.Is(err, ports.ErrEndOfStream) {
		c.state.Mode = Paused
		if err := c.source.Seek(0); err != nil {
			return Rewound, fmt.Errorf("rewind: %w", err)
		}
		c.state.Current = c.source.Position()
		c.logger.Debug("End of stream, rewound to frame %d", c.state.Current)
		return Rewound, nil
	}
	if err != nil {
		c.state.Mode = Paused
		return Idle, fmt.Errorf("read frame %d: %w", c.state.Current, err)
	}

	c.state.Current = c.source.Position()
	if err := c.display.Show(ctx, frame, c.Overlays()); err != nil {
		return Advanced, fmt.Errorf("show frame %d: %w", frame.Index, err)
	}
	return Advanced, nil
}

// SeekForward moves n frames ahead. Targets outside [0, FrameCount) are
// ignored and leave the position unchanged; moved reports whether the
// position changed.
func (c *Controller) SeekForward(n int) (moved bool, err error) {
	return c.SeekTo(c.state.Current + n)
}

// SeekBackward moves n frames back with the same bounds rule as SeekForward.
func (c *Controller) SeekBackward(n int) (moved bool, err error) {
	return c.SeekTo(c.state.Current - n)
}

// SeekTo moves to index when it lies in [0, FrameCount).
func (c *Controller) SeekTo(index int) (moved bool, err error) {
	if index < 0 || index >= c.source.FrameCount() {
		c.logger.Debug("Seek to %d ignored, outside [0, %d)", index, c.source.FrameCount())
		return false, nil
	}
	if err := c.source.Seek(index); err != nil {
		return false, fmt.Errorf("seek to %d: %w", index, err)
	}
	c.state.Current = index
	return true, nil
}

// Refresh shows the frame on screen for the current position (frame
// Current-1, or frame 0 at the start) without moving the position. Used after
// a seek while paused.
func (c *Controller) Refresh(ctx context.Context) error {
	target := c.state.Current - 1
	if target < 0 {
		target = 0
	}
	if target >= c.source.FrameCount() {
		return nil
	}

	if err := c.source.Seek(target); err != nil {
		return fmt.Errorf("seek to %d: %w", target, err)
	}
	frame, readErr := c.source.ReadNext(ctx)
	if err := c.source.Seek(c.state.Current); err != nil {
		return fmt.Errorf("seek to %d: %w", c.state.Current, err)
	}
	if errors.Is(readErr, ports.ErrEndOfStream) {
		return nil
	}
	if readErr != nil {
		return fmt.Errorf("read frame %d: %w", target, readErr)
	}

	return c.display.Show(ctx, frame, c.Overlays())
}

// Overlays returns the overlay lines for the current position.
func (c *Controller) Overlays() []string {
	if c.index == nil {
		return nil
	}
	var lines []string
	for _, a := range c.index.At(c.state.Current) {
		lines = append(lines, a.Text())
	}
	return lines
}
