// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/framemark/pkg/annotation"
	"github.com/user/framemark/pkg/overlay"
	"github.com/user/framemark/pkg/session"
)

// Config represents the full configuration for framemark.
type Config struct {
	// Video decoding
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Playback
	TickIntervalMs int    `yaml:"tick_interval_ms"`
	SeekStep       int    `yaml:"seek_step"`
	SaveMode       string `yaml:"save_mode"`

	Preview  PreviewConfig  `yaml:"preview"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Snapshot SnapshotConfig `yaml:"snapshot"`

	LogLevel string `yaml:"log_level"`
}

// PreviewConfig controls the preview image written while playing.
type PreviewConfig struct {
	// Path defaults to <video_dir>/<url_local>_preview.png when empty.
	Path     string `yaml:"path"`
	MaxWidth int    `yaml:"max_width"`
}

// OverlayConfig controls how annotation text is drawn on frames.
type OverlayConfig struct {
	Style      string  `yaml:"style"`
	Color      string  `yaml:"color"`
	FontPath   string  `yaml:"font_path"`
	FontSize   float64 `yaml:"font_size"`
	X          int     `yaml:"x"`
	Y          int     `yaml:"y"`
	ChromePath string  `yaml:"chrome_path"`
}

// SnapshotConfig controls frame export.
type SnapshotConfig struct {
	Workers int    `yaml:"workers"`
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		TickIntervalMs: 30,
		SeekStep:       10,
		SaveMode:       string(session.SaveImmediate),

		Preview: PreviewConfig{
			MaxWidth: 960,
		},

		Overlay: OverlayConfig{
			Style:    string(overlay.StyleText),
			Color:    "#00ff00",
			FontSize: 24,
			X:        50,
			Y:        50,
		},

		Snapshot: SnapshotConfig{
			Workers: runtime.NumCPU(),
			Format:  "png",
			Quality: 90,
		},

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	if c.TickIntervalMs <= 0 {
		return fmt.Errorf("tick_interval_ms must be positive, got %d", c.TickIntervalMs)
	}
	if c.SeekStep <= 0 {
		return fmt.Errorf("seek_step must be positive, got %d", c.SeekStep)
	}
	switch c.SaveMode {
	case string(session.SaveImmediate), string(session.SaveBatch):
	default:
		return fmt.Errorf("save_mode must be %q or %q, got %q", session.SaveImmediate, session.SaveBatch, c.SaveMode)
	}
	switch c.Overlay.Style {
	case string(overlay.StyleText), string(overlay.StyleBanner):
	default:
		return fmt.Errorf("overlay.style must be %q or %q, got %q", overlay.StyleText, overlay.StyleBanner, c.Overlay.Style)
	}
	switch c.Snapshot.Format {
	case "png", "jpeg", "jpg":
	default:
		return fmt.Errorf("snapshot.format must be png or jpeg, got %q", c.Snapshot.Format)
	}
	if c.Snapshot.Quality < 1 || c.Snapshot.Quality > 100 {
		return fmt.Errorf("snapshot.quality must be in 1..100, got %d", c.Snapshot.Quality)
	}
	if c.Preview.MaxWidth < 0 {
		return fmt.Errorf("preview.max_width must not be negative, got %d", c.Preview.MaxWidth)
	}
	return nil
}

// TickInterval returns the playback tick period.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// PreviewPath returns the preview image path for videoPath.
func (c Config) PreviewPath(videoPath string) string {
	if c.Preview.Path != "" {
		return c.Preview.Path
	}
	return filepath.Join(filepath.Dir(videoPath), annotation.URLLocal(videoPath)+"_preview.png")
}

// ToSessionOptions converts Config to session.Options.
func (c Config) ToSessionOptions() session.Options {
	return session.Options{
		SaveMode: session.ParseSaveMode(c.SaveMode),
		SeekStep: c.SeekStep,
	}
}

// ToOverlayOptions converts Config to overlay.Options.
func (c Config) ToOverlayOptions() overlay.Options {
	return overlay.Options{
		Style:    overlay.ParseStyle(c.Overlay.Style),
		Color:    ParseColor(c.Overlay.Color),
		FontPath: c.Overlay.FontPath,
		FontSize: c.Overlay.FontSize,
		X:        c.Overlay.X,
		Y:        c.Overlay.Y,
	}
}

// ParseColor parses a "#rrggbb" string. Malformed input gives black.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return color.Black
	}

	var rgb [3]uint8
	for i := range rgb {
		rgb[i] = hexValue(hex[2*i])<<4 | hexValue(hex[2*i+1])
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
