package annotation

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/framemark/pkg/ports"
)

// SidecarSuffix is appended to the video name to build the sidecar file name.
const SidecarSuffix = "_annotations.json"

// URLLocal returns the video's base file name without its extension.
func URLLocal(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SidecarPath returns <dir>/<urlLocal>_annotations.json.
func SidecarPath(dir, urlLocal string) string {
	return filepath.Join(dir, urlLocal+SidecarSuffix)
}

// Store accumulates annotations for one video and merges them into its
// sidecar on Save. A Store assumes it is the only writer of the sidecar;
// two processes saving the same sidecar race and one batch can be lost.
type Store struct {
	fs       ports.FileSystem
	logger   ports.Logger
	dir      string
	urlLocal string

	pending []Annotation
	saved   []Annotation
}

// NewStore creates a store for the video at videoPath. The sidecar lives in
// the video's directory. Nothing is read until Load or Save.
func NewStore(fs ports.FileSystem, logger ports.Logger, videoPath string) *Store {
	return &Store{
		fs:       fs,
		logger:   logger.WithComponent("store"),
		dir:      filepath.Dir(videoPath),
		urlLocal: URLLocal(videoPath),
	}
}

// URLLocal returns the video name the sidecar is keyed by.
func (s *Store) URLLocal() string {
	return s.urlLocal
}

// Path returns the sidecar path.
func (s *Store) Path() string {
	return SidecarPath(s.dir, s.urlLocal)
}

// FolderPath returns <video_dir>/<urlLocal>, the per-video annotation folder.
func (s *Store) FolderPath() string {
	return filepath.Join(s.dir, s.urlLocal)
}

// Add validates and records a new annotation for frame. On error the pending
// batch is unchanged.
func (s *Store) Add(label, team string, frame int, fps float64) (Annotation, error) {
	a, err := New(label, team, frame, fps)
	if err != nil {
		return Annotation{}, err
	}

	s.pending = append(s.pending, a)
	s.logger.Debug("Annotation added at frame %d: %s (%s)", frame, a.Text(), a.GameTime)
	return a, nil
}

// Pending returns a copy of the unsaved annotations in creation order.
func (s *Store) Pending() []Annotation {
	out := make([]Annotation, len(s.pending))
	copy(out, s.pending)
	return out
}

// Saved returns the annotations read from or written to the sidecar last.
func (s *Store) Saved() []Annotation {
	out := make([]Annotation, len(s.saved))
	copy(out, s.saved)
	return out
}

// Load reads the sidecar. A missing sidecar yields an empty File for this
// video. Any read or parse failure is returned as a *FileError.
func (s *Store) Load() (File, error) {
	path := s.Path()

	exists, err := s.fs.Exists(path)
	if err != nil {
		return File{}, &FileError{Op: OpRead, Path: path, Err: err}
	}
	if !exists {
		return NewFile(s.urlLocal), nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return File{}, &FileError{Op: OpRead, Path: path, Err: err}
	}

	file, err := decodeFile(data)
	if err != nil {
		return File{}, &FileError{Op: OpParse, Path: path, Err: err}
	}

	s.saved = file.Annotations
	return file, nil
}

// Save appends the pending batch to the sidecar and rewrites it in full.
// The batch is cleared only after the write succeeded. With nothing pending
// the sidecar is not touched. Returns the number of annotations written.
func (s *Store) Save() (int, error) {
	if len(s.pending) == 0 {
		return 0, nil
	}

	file, err := s.Load()
	if err != nil {
		return 0, err
	}

	file.URLLocal = s.urlLocal
	file.Annotations = append(file.Annotations, s.pending...)

	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return 0, &FileError{Op: OpWrite, Path: s.Path(), Err: err}
	}
	if err := s.fs.WriteFile(s.Path(), data); err != nil {
		return 0, &FileError{Op: OpWrite, Path: s.Path(), Err: err}
	}

	n := len(s.pending)
	s.saved = file.Annotations
	s.pending = nil
	s.logger.Info("Saved %d annotations to %s", n, s.Path())
	return n, nil
}

// At returns the saved and pending annotations whose position is frame.
func (s *Store) At(frame int) []Annotation {
	key := strconv.Itoa(frame)
	var out []Annotation
	for _, list := range [][]Annotation{s.saved, s.pending} {
		for _, a := range list {
			if strings.TrimSpace(a.Position) == key {
				out = append(out, a)
			}
		}
	}
	return out
}

func decodeFile(data []byte) (File, error) {
	var head struct {
		Annotations json.RawMessage `json:"annotations"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return File{}, err
	}
	if len(head.Annotations) == 0 || string(head.Annotations) == "null" {
		return File{}, ErrMissingAnnotations
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, err
	}
	return file, nil
}
