package report

import (
	"testing"

	"github.com/user/framemark/pkg/annotation"
)

func sampleFile() annotation.File {
	return annotation.File{
		URLLocal:   "match1",
		URLYoutube: "https://youtu.be/abc",
		Annotations: []annotation.Annotation{
			{GameTime: "00:03:00", Label: "goal", Team: "away", Position: "5400", Visibility: "visible"},
			{GameTime: "00:00:10", Label: "goal", Team: "home", Position: "300", Visibility: "visible"},
			{GameTime: "00:01:05", Label: "foul", Team: "home", Position: "1950", Visibility: "visible"},
			{GameTime: "", Label: "note", Team: "home", Position: "later", Visibility: "visible"},
		},
	}
}

func TestBuilder_SortsEntriesByFrame(t *testing.T) {
	r := NewBuilder().WithFile(sampleFile()).Build()

	want := []string{"300", "1950", "5400", "later"}
	if len(r.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(r.Entries))
	}
	for i, pos := range want {
		if r.Entries[i].Position != pos {
			t.Errorf("entry %d position = %q, want %q", i, r.Entries[i].Position, pos)
		}
	}
}

func TestBuilder_Counts(t *testing.T) {
	r := NewBuilder().WithFile(sampleFile()).Build()

	wantTeams := []Count{{"home", 3}, {"away", 1}}
	if len(r.ByTeam) != len(wantTeams) {
		t.Fatalf("ByTeam = %v", r.ByTeam)
	}
	for i, c := range wantTeams {
		if r.ByTeam[i] != c {
			t.Errorf("ByTeam[%d] = %v, want %v", i, r.ByTeam[i], c)
		}
	}

	wantLabels := []Count{{"goal", 2}, {"foul", 1}, {"note", 1}}
	for i, c := range wantLabels {
		if r.ByLabel[i] != c {
			t.Errorf("ByLabel[%d] = %v, want %v", i, r.ByLabel[i], c)
		}
	}
}

func TestBuilder_VideoInfo(t *testing.T) {
	r := NewBuilder().
		WithVideo(VideoInfo{Path: "/videos/match1.mp4", FrameRate: 30}).
		WithFile(sampleFile()).
		Build()

	if r.Video.URLLocal != "match1" || r.Video.URLYoutube != "https://youtu.be/abc" {
		t.Errorf("expected names from file, got %+v", r.Video)
	}
	if r.Video.Path != "/videos/match1.mp4" || r.Video.FrameRate != 30 {
		t.Errorf("expected explicit video info to be kept, got %+v", r.Video)
	}
	if r.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
}

func TestBuilder_Empty(t *testing.T) {
	r := NewBuilder().WithFile(annotation.NewFile("match1")).Build()

	if len(r.Entries) != 0 || len(r.ByTeam) != 0 || len(r.ByLabel) != 0 {
		t.Errorf("expected empty report, got %+v", r)
	}
}
