// Package report summarizes an annotation file for reading: entries in
// frame order plus per-team and per-label counts.
package report

import (
	"sort"
	"time"

	"github.com/user/framemark/pkg/annotation"
)

// Report contains everything a formatter renders.
type Report struct {
	GeneratedAt time.Time

	Video VideoInfo

	Entries []Entry
	ByTeam  []Count
	ByLabel []Count
}

// VideoInfo identifies the annotated video.
type VideoInfo struct {
	Path       string
	URLLocal   string
	URLYoutube string
	FrameRate  float64
	FrameCount int
}

// Entry is one annotation row.
type Entry struct {
	GameTime   string
	Label      string
	Team       string
	Position   string
	Visibility string
}

// Count is a tally for one team or label.
type Count struct {
	Name  string
	Count int
}

// Builder provides a fluent interface for building a Report.
type Builder struct {
	report *Report
}

// NewBuilder creates a new Builder stamped with the current time.
func NewBuilder() *Builder {
	return &Builder{
		report: &Report{GeneratedAt: time.Now()},
	}
}

// WithVideo sets video information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.report.Video = video
	return b
}

// WithFile adds the annotations of file. Empty URLLocal and URLYoutube in
// the video information are filled from the file.
func (b *Builder) WithFile(file annotation.File) *Builder {
	if b.report.Video.URLLocal == "" {
		b.report.Video.URLLocal = file.URLLocal
	}
	if b.report.Video.URLYoutube == "" {
		b.report.Video.URLYoutube = file.URLYoutube
	}
	for _, a := range file.Annotations {
		b.report.Entries = append(b.report.Entries, Entry{
			GameTime:   a.GameTime,
			Label:      a.Label,
			Team:       a.Team,
			Position:   a.Position,
			Visibility: a.Visibility,
		})
	}
	return b
}

// Build sorts the entries by frame and computes the counts.
func (b *Builder) Build() *Report {
	r := b.report
	sort.SliceStable(r.Entries, func(i, j int) bool {
		fi, oki := frameOf(r.Entries[i])
		fj, okj := frameOf(r.Entries[j])
		if oki != okj {
			return oki
		}
		return fi < fj
	})

	teams := make(map[string]int)
	labels := make(map[string]int)
	for _, e := range r.Entries {
		teams[e.Team]++
		labels[e.Label]++
	}
	r.ByTeam = tally(teams)
	r.ByLabel = tally(labels)
	return r
}

func frameOf(e Entry) (int, bool) {
	return annotation.Annotation{Position: e.Position}.Frame()
}

// tally orders counts by descending count, then by name.
func tally(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
