package ports

import (
	"context"
	"errors"
	"image"
)

// ErrEndOfStream is returned by VideoSource.ReadNext when no frame is left.
// It is a normal signal, not a failure.
var ErrEndOfStream = errors.New("end of stream")

// Frame is a decoded video frame.
type Frame struct {
	Image image.Image
	// Index is the zero-based index of the decoded frame.
	Index int
}

// VideoSource abstracts a seekable, frame-accurate video decoder.
type VideoSource interface {
	// FrameRate returns the frames per second of the video stream.
	FrameRate() float64

	// FrameCount returns the total number of frames in the stream.
	FrameCount() int

	// Position returns the index of the frame the next ReadNext will decode.
	// After reading frame N the position is N+1.
	Position() int

	// ReadNext decodes the frame at Position and advances by one.
	// Returns ErrEndOfStream when Position has reached FrameCount.
	ReadNext(ctx context.Context) (Frame, error)

	// Seek moves the read position to the given frame index.
	Seek(index int) error

	// Close releases the underlying video handle.
	Close() error
}

// FrameGrabber decodes single frames by index without touching any read
// position. Implementations must be safe for concurrent use.
type FrameGrabber interface {
	Grab(ctx context.Context, index int) (image.Image, error)
}

// VideoInfo describes a video stream.
type VideoInfo struct {
	Codec      string
	Width      int
	Height     int
	FrameRate  float64
	FrameCount int
}
