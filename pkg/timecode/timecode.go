// Package timecode converts between frame indexes and HH:MM:SS game times.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFrameRate is returned for a frame rate that is zero, negative, NaN or infinite.
	ErrInvalidFrameRate = errors.New("timecode: invalid frame rate")

	// ErrNegativeFrame is returned for a frame index below zero.
	ErrNegativeFrame = errors.New("timecode: negative frame index")

	// ErrInvalidTimeCode is returned by Parse for malformed input.
	ErrInvalidTimeCode = errors.New("timecode: invalid time code")
)

// ValidFrameRate reports whether fps can be used for conversions.
func ValidFrameRate(fps float64) bool {
	return fps > 0 && !math.IsInf(fps, 0) && !math.IsNaN(fps)
}

// FromFrame returns the elapsed time of frame as a zero-padded HH:MM:SS string.
// Seconds are truncated, never rounded. Hours are not wrapped at 24.
func FromFrame(frame int, fps float64) (string, error) {
	if !ValidFrameRate(fps) {
		return "", fmt.Errorf("%w: %v", ErrInvalidFrameRate, fps)
	}
	if frame < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeFrame, frame)
	}

	return Format(int(math.Floor(float64(frame) / fps))), nil
}

// Format renders a number of seconds as HH:MM:SS.
func Format(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Parse reads a time code of the form HH:MM:SS, MM:SS or SS and returns the
// number of seconds. Minutes and seconds must be below 60 when a larger unit
// is present.
func Parse(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeCode, s)
	}

	total := 0
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeCode, s)
		}
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeCode, s)
		}
		total = total*60 + v
	}
	return total, nil
}

// ToFrame returns the first frame index whose time code equals the given
// number of seconds.
func ToFrame(seconds int, fps float64) (int, error) {
	if !ValidFrameRate(fps) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFrameRate, fps)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeFrame, seconds)
	}
	return int(math.Ceil(float64(seconds) * fps)), nil
}
