package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/framemark/pkg/overlay"
	"github.com/user/framemark/pkg/session"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "framemark.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.TickInterval() != 30*time.Millisecond {
		t.Errorf("tick interval = %v, want 30ms", cfg.TickInterval())
	}
	if cfg.SeekStep != 10 {
		t.Errorf("seek step = %d, want 10", cfg.SeekStep)
	}
	if cfg.SaveMode != "immediate" {
		t.Errorf("save mode = %q, want immediate", cfg.SaveMode)
	}
	if cfg.Snapshot.Workers < 1 {
		t.Errorf("snapshot workers = %d, want at least 1", cfg.Snapshot.Workers)
	}
}

func TestLoadFromFile_Overrides(t *testing.T) {
	path := writeConfig(t, `
seek_step: 25
save_mode: batch
preview:
  max_width: 0
overlay:
  style: banner
  color: "#ff0000"
snapshot:
  format: jpeg
  quality: 75
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.SeekStep != 25 || cfg.SaveMode != "batch" {
		t.Errorf("unexpected playback settings: %+v", cfg)
	}
	if cfg.Preview.MaxWidth != 0 {
		t.Errorf("max width = %d, want 0", cfg.Preview.MaxWidth)
	}
	if cfg.TickIntervalMs != 30 {
		t.Errorf("unset keys must keep defaults, tick = %d", cfg.TickIntervalMs)
	}
	if cfg.Overlay.FontSize != 24 {
		t.Errorf("unset nested keys must keep defaults, font size = %v", cfg.Overlay.FontSize)
	}

	sopts := cfg.ToSessionOptions()
	if sopts.SaveMode != session.SaveBatch || sopts.SeekStep != 25 {
		t.Errorf("session options = %+v", sopts)
	}
	oopts := cfg.ToOverlayOptions()
	if oopts.Style != overlay.StyleBanner {
		t.Errorf("overlay style = %q", oopts.Style)
	}
	if oopts.Color != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("overlay color = %v", oopts.Color)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "seek_step: [1, 2"},
		{"save mode", "save_mode: sometimes"},
		{"overlay style", "overlay:\n  style: neon"},
		{"seek step", "seek_step: 0"},
		{"tick", "tick_interval_ms: -1"},
		{"format", "snapshot:\n  format: gif"},
		{"quality", "snapshot:\n  quality: 101"},
		{"max width", "preview:\n  max_width: -5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromFile(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "none.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestPreviewPath(t *testing.T) {
	cfg := Defaults()
	want := filepath.Join("/videos", "match1_preview.png")
	if got := cfg.PreviewPath("/videos/match1.mp4"); got != want {
		t.Errorf("PreviewPath() = %q, want %q", got, want)
	}

	cfg.Preview.Path = "/tmp/now.png"
	if got := cfg.PreviewPath("/videos/match1.mp4"); got != "/tmp/now.png" {
		t.Errorf("PreviewPath() = %q, want override", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#00ff00", color.RGBA{G: 255, A: 255}},
		{"1A2b3C", color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
		{"", color.Black},
		{"#fff", color.Black},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
