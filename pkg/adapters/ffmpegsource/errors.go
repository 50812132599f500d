package ffmpegsource

import (
	"errors"
	"fmt"
)

var (
	ErrFFmpegNotFound  = errors.New("ffmpeg binary not found")
	ErrFFprobeNotFound = errors.New("ffprobe binary not found")
	ErrClosed          = errors.New("video source closed")
	ErrNoVideoStream   = errors.New("no video stream found")

	errUnknownFrameRate = errors.New("unknown frame rate")
)

// Process operations reported in ProcessError.
const (
	OpOpen       = "open"
	OpProbe      = "probe"
	OpProbeParse = "probe_parse"
	OpDecode     = "decode"
)

// ProcessError reports a failed ffmpeg or ffprobe invocation.
type ProcessError struct {
	Operation string
	File      string
	Err       error
	Stderr    string
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ffmpeg %s failed for %s: %v (stderr: %s)", e.Operation, e.File, e.Err, e.Stderr)
	}
	return fmt.Sprintf("ffmpeg %s failed for %s: %v", e.Operation, e.File, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func newProcessError(operation, file string, err error, stderr string) *ProcessError {
	return &ProcessError{
		Operation: operation,
		File:      file,
		Err:       err,
		Stderr:    stderr,
	}
}
