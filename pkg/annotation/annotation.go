// Package annotation holds the annotation model and the sidecar store that
// merges new annotations into <video_dir>/<name>_annotations.json.
package annotation

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/user/framemark/pkg/timecode"
)

// Visible is the only visibility value framemark produces.
const Visible = "visible"

// Annotation is a single labelled frame. Field order and JSON keys are part
// of the sidecar format consumed downstream.
type Annotation struct {
	GameTime   string `json:"gameTime"`
	Label      string `json:"label"`
	Position   string `json:"position"`
	Team       string `json:"team"`
	Visibility string `json:"visibility"`

	// Extra keeps keys written by other tools so a rewrite does not drop them.
	Extra map[string]json.RawMessage `json:"-"`
}

// File is the on-disk aggregate, one per video.
type File struct {
	URLLocal    string       `json:"UrlLocal"`
	URLYoutube  string       `json:"UrlYoutube"`
	Annotations []Annotation `json:"annotations"`

	// Extra keeps top-level keys written by other tools.
	Extra map[string]json.RawMessage `json:"-"`
}

// NewFile returns an empty sidecar for the given video name.
func NewFile(urlLocal string) File {
	return File{
		URLLocal:    urlLocal,
		URLYoutube:  "",
		Annotations: []Annotation{},
	}
}

// New validates label and team and builds an annotation for frame.
// Surrounding whitespace is trimmed before the emptiness check.
func New(label, team string, frame int, fps float64) (Annotation, error) {
	label = strings.TrimSpace(label)
	team = strings.TrimSpace(team)
	if label == "" {
		return Annotation{}, &ValidationError{Field: "label"}
	}
	if team == "" {
		return Annotation{}, &ValidationError{Field: "team"}
	}

	gameTime, err := timecode.FromFrame(frame, fps)
	if err != nil {
		return Annotation{}, err
	}

	return Annotation{
		GameTime:   gameTime,
		Label:      label,
		Position:   strconv.Itoa(frame),
		Team:       team,
		Visibility: Visible,
	}, nil
}

// Frame parses Position. ok is false when Position is not a decimal index.
func (a Annotation) Frame() (frame int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(a.Position))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Text is the overlay line drawn on the annotated frame.
func (a Annotation) Text() string {
	return a.Label + " - " + a.Team
}

var knownKeys = []string{"gameTime", "label", "position", "team", "visibility"}

// plainAnnotation has Annotation's fields without its methods.
type plainAnnotation Annotation

// UnmarshalJSON decodes the known fields and stashes the rest in Extra.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var p plainAnnotation
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	fields, err := extraFields(data, knownKeys)
	if err != nil {
		return err
	}
	p.Extra = fields

	*a = Annotation(p)
	return nil
}

// MarshalJSON writes the known fields followed by any preserved extras.
// Keys come out in lexical order either way.
func (a Annotation) MarshalJSON() ([]byte, error) {
	if len(a.Extra) == 0 {
		return json.Marshal(plainAnnotation(a))
	}

	m := make(map[string]json.RawMessage, len(knownKeys)+len(a.Extra))
	for k, v := range a.Extra {
		m[k] = v
	}
	for k, v := range map[string]string{
		"gameTime":   a.GameTime,
		"label":      a.Label,
		"position":   a.Position,
		"team":       a.Team,
		"visibility": a.Visibility,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		m[k] = raw
	}
	return json.Marshal(m)
}

var knownFileKeys = []string{"UrlLocal", "UrlYoutube", "annotations"}

type plainFile File

// UnmarshalJSON decodes the known fields and stashes the rest in Extra.
func (f *File) UnmarshalJSON(data []byte) error {
	var p plainFile
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	fields, err := extraFields(data, knownFileKeys)
	if err != nil {
		return err
	}
	p.Extra = fields

	*f = File(p)
	return nil
}

// MarshalJSON writes the known fields followed by any preserved extras.
func (f File) MarshalJSON() ([]byte, error) {
	if len(f.Extra) == 0 {
		return json.Marshal(plainFile(f))
	}

	m := make(map[string]json.RawMessage, len(knownFileKeys)+len(f.Extra))
	for k, v := range f.Extra {
		m[k] = v
	}
	for k, v := range map[string]any{
		"UrlLocal":    f.URLLocal,
		"UrlYoutube":  f.URLYoutube,
		"annotations": f.Annotations,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		m[k] = raw
	}
	return json.Marshal(m)
}

// extraFields returns the object keys of data not listed in known, or nil.
func extraFields(data []byte, known []string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(fields, k)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}
