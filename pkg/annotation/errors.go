package annotation

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError with errors.Is.
	ErrValidation = errors.New("annotation: validation failed")

	// ErrMissingAnnotations is wrapped in a parse FileError when a sidecar has
	// no "annotations" array.
	ErrMissingAnnotations = errors.New("annotation: sidecar has no annotations array")
)

// ValidationError reports an empty label or team. Nothing is recorded.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("annotation: %s must not be empty", e.Field)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// File operations reported in FileError.Op.
const (
	OpRead  = "read"
	OpParse = "parse"
	OpWrite = "write"
)

// FileError reports a sidecar that could not be read, parsed or written.
// The pending batch is kept in memory when a save fails with a FileError.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("annotation: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
