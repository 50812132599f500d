package report

import (
	"strings"
	"testing"
	"time"

	"github.com/user/framemark/pkg/annotation"
	"github.com/user/framemark/pkg/mocks"
)

func fixedReport() *Report {
	r := NewBuilder().
		WithVideo(VideoInfo{Path: "/videos/match1.mp4", FrameRate: 30, FrameCount: 5400}).
		WithFile(sampleFile()).
		Build()
	r.GeneratedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return r
}

func TestMarkdownFormatter_Format(t *testing.T) {
	result := NewMarkdownFormatter().Format(fixedReport())

	checks := []string{
		"# Annotation Report",
		"| Name | match1 |",
		"| Frame Rate | 30.000 fps |",
		"| Frames | 5400 |",
		"| Annotations | 4 |",
		"| 00:00:10 | 300 | goal | home |",
		"| 00:01:05 | 1950 | foul | home |",
		"## By Team",
		"| home | 3 |",
		"## By Label",
		"| goal | 2 |",
		"2024-01-15 10:30:00",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}

	if strings.Index(result, "| 00:00:10 |") > strings.Index(result, "| 00:03:00 |") {
		t.Error("expected rows in frame order")
	}
}

func TestMarkdownFormatter_Empty(t *testing.T) {
	r := NewBuilder().WithFile(annotation.NewFile("match1")).Build()

	result := NewMarkdownFormatter().Format(r)

	if !strings.Contains(result, "_No annotations_") {
		t.Error("expected empty marker")
	}
	if strings.Contains(result, "## By Team") {
		t.Error("empty report must not have count sections")
	}
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	file := annotation.NewFile("match1")
	file.Annotations = append(file.Annotations, annotation.Annotation{Label: "a|b", Team: "home", Position: "1"})

	result := NewMarkdownFormatter().Format(NewBuilder().WithFile(file).Build())

	if !strings.Contains(result, `a\|b`) {
		t.Error("expected pipe to be escaped")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Annotation Report": "アノテーションレポート",
			"By Team":           "チーム別",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(fixedReport())

	if !strings.Contains(result, "# アノテーションレポート") {
		t.Error("expected translated title")
	}
	if !strings.Contains(result, "## チーム別") {
		t.Error("expected translated team heading")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(fixedReport())

	if !strings.Contains(result, "framemark v1.2.0") {
		t.Error("expected output to contain version")
	}
}

func TestTableFormatter_Format(t *testing.T) {
	result := NewTableFormatter().Format(fixedReport())

	for _, check := range []string{"match1", "00:01:05", "1950", "foul", "home", "Count"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
}

func TestTableFormatter_Empty(t *testing.T) {
	result := NewTableFormatter().Format(NewBuilder().WithFile(annotation.NewFile("match1")).Build())

	if !strings.HasPrefix(result, "Video: match1 (0 annotations)") {
		t.Errorf("unexpected output %q", result)
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(r *Report) string { return r.Video.URLLocal })
	if got := f.Format(fixedReport()); got != "match1" {
		t.Errorf("got %q", got)
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(fs, FormatFunc(func(r *Report) string { return "report body" }))

	if err := w.Write("/videos/match1/report.md", fixedReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, ok := fs.GetFile("/videos/match1/report.md")
	if !ok || string(data) != "report body" {
		t.Errorf("unexpected file contents %q", data)
	}
}
