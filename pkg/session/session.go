// Package session ties the playback controller, the annotation store and the
// video source together for one annotation session.
package session

import (
	"errors"
	"fmt"

	"github.com/user/framemark/pkg/annotation"
	"github.com/user/framemark/pkg/playback"
	"github.com/user/framemark/pkg/ports"
)

// SaveMode selects when pending annotations are flushed to the sidecar.
type SaveMode string

const (
	// SaveImmediate saves after every successful annotate.
	SaveImmediate SaveMode = "immediate"
	// SaveBatch saves on explicit Save and on Close.
	SaveBatch SaveMode = "batch"
)

// ParseSaveMode returns SaveBatch for "batch" and SaveImmediate otherwise.
func ParseSaveMode(s string) SaveMode {
	if s == string(SaveBatch) {
		return SaveBatch
	}
	return SaveImmediate
}

// Options configures a Session.
type Options struct {
	SaveMode SaveMode
	SeekStep int
}

// DefaultOptions returns immediate saving and a 10 frame seek step.
func DefaultOptions() Options {
	return Options{
		SaveMode: SaveImmediate,
		SeekStep: 10,
	}
}

// ErrClosed is returned by operations on a closed Session.
var ErrClosed = errors.New("session: closed")

// Session owns the video source for its lifetime. Close must be called on
// every exit path; it flushes pending annotations and releases the source.
type Session struct {
	source     ports.VideoSource
	store      *annotation.Store
	controller *playback.Controller
	logger     ports.Logger
	opts       Options

	closed bool
}

// New creates a session for the video at videoPath. A sidecar that cannot be
// loaded is reported as a warning: playback still works and the error comes
// back from the next save.
func New(
	source ports.VideoSource,
	display ports.Display,
	fs ports.FileSystem,
	logger ports.Logger,
	videoPath string,
	opts Options,
) *Session {
	if opts.SeekStep <= 0 {
		opts.SeekStep = DefaultOptions().SeekStep
	}
	if opts.SaveMode == "" {
		opts.SaveMode = SaveImmediate
	}

	store := annotation.NewStore(fs, logger, videoPath)
	if _, err := store.Load(); err != nil {
		logger.Warn("Cannot load annotations: %s", err.Error())
	}

	return &Session{
		source:     source,
		store:      store,
		controller: playback.New(source, display, store, logger),
		logger:     logger.WithComponent("session"),
		opts:       opts,
	}
}

// Controller returns the playback controller.
func (s *Session) Controller() *playback.Controller {
	return s.controller
}

// Store returns the annotation store.
func (s *Session) Store() *annotation.Store {
	return s.store
}

// Options returns the effective options.
func (s *Session) Options() Options {
	return s.opts
}

// Annotate records an annotation for the current frame. In immediate mode it
// is saved right away; a failed save leaves it pending and returns the
// *annotation.FileError together with the recorded annotation.
func (s *Session) Annotate(label, team string) (annotation.Annotation, error) {
	if s.closed {
		return annotation.Annotation{}, ErrClosed
	}

	a, err := s.store.Add(label, team, s.controller.State().Current, s.controller.FrameRate())
	if err != nil {
		return annotation.Annotation{}, err
	}

	if s.opts.SaveMode == SaveImmediate {
		if _, err := s.store.Save(); err != nil {
			return a, err
		}
	}
	return a, nil
}

// Save flushes pending annotations.
func (s *Session) Save() (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.store.Save()
}

// SeekForward moves one seek step ahead.
func (s *Session) SeekForward() (bool, error) {
	return s.controller.SeekForward(s.opts.SeekStep)
}

// SeekBackward moves one seek step back.
func (s *Session) SeekBackward() (bool, error) {
	return s.controller.SeekBackward(s.opts.SeekStep)
}

// Close saves what is pending and releases the video source. The source is
// released even when the save fails; both errors are returned. Close is
// idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var saveErr error
	if n, err := s.store.Save(); err != nil {
		saveErr = fmt.Errorf("save pending annotations: %w", err)
		s.logger.Error("Failed to save %d pending annotations: %s", len(s.store.Pending()), err.Error())
	} else if n > 0 {
		s.logger.Debug("Flushed %d annotations on close", n)
	}

	var closeErr error
	if err := s.source.Close(); err != nil {
		closeErr = fmt.Errorf("close video: %w", err)
	}
	return errors.Join(saveErr, closeErr)
}
