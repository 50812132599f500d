package ggrenderer

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/user/framemark/pkg/ports"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 100, color.White)
	bounds := canvas.ToImage().Bounds()

	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("expected 100x100, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_EncodeDecodeJPEG(t *testing.T) {
	r := New()
	img := solid(50, 50, color.RGBA{R: 255, A: 255})

	data, err := r.EncodeImage(img, ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty data")
	}

	decoded, err := r.DecodeImage(data, ports.FormatJPEG)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("expected 50x50, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderer_EncodeDecodePNG(t *testing.T) {
	r := New()

	data, err := r.EncodeImage(image.NewRGBA(image.Rect(0, 0, 30, 30)), ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := r.DecodeImage(data, ports.FormatPNG)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 30 || b.Dy() != 30 {
		t.Errorf("expected 30x30, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderer_EncodeUnsupported(t *testing.T) {
	if _, err := New().EncodeImage(solid(2, 2, color.Black), ports.ImageFormat(99), 0); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	resized := New().ResizeImage(image.NewRGBA(image.Rect(0, 0, 1920, 1080)), 960, 540)

	if b := resized.Bounds(); b.Dx() != 960 || b.Dy() != 540 {
		t.Errorf("expected 960x540, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestCanvas_DrawImage(t *testing.T) {
	canvas := New().CreateCanvas(100, 100, color.White)

	canvas.DrawImage(solid(20, 20, color.RGBA{R: 255, A: 255}), 10, 10)

	r, g, _, _ := canvas.ToImage().At(15, 15).RGBA()
	if r == 0 || g != 0 {
		t.Error("expected red pixel inside drawn image")
	}
}

func TestCanvas_DrawRoundedRect(t *testing.T) {
	canvas := New().CreateCanvas(100, 100, color.Transparent)

	canvas.DrawRoundedRect(10, 10, 60, 30, 8, color.RGBA{G: 255, A: 255})

	img := canvas.ToImage()
	if _, g, _, _ := img.At(40, 25).RGBA(); g == 0 {
		t.Error("expected green pixel inside the rectangle")
	}
	if _, _, _, a := img.At(10, 10).RGBA(); a != 0 {
		t.Error("expected rounded corner to stay transparent")
	}
}

func TestCanvas_DrawText(t *testing.T) {
	canvas := New().CreateCanvas(300, 60, color.Black)
	style := ports.TextStyle{FontSize: 24, Color: color.RGBA{G: 255, A: 255}}

	canvas.DrawText("goal - home", 10, 30, style)

	img := canvas.ToImage()
	found := false
	for y := 0; y < 60 && !found; y++ {
		for x := 0; x < 300; x++ {
			if _, g, _, _ := img.At(x, y).RGBA(); g > 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected text pixels on the canvas")
	}
}

func TestCanvas_MeasureTextScalesWithSize(t *testing.T) {
	canvas := New().CreateCanvas(10, 10, color.Black)

	w1, h1 := canvas.MeasureText("goal - home", ports.TextStyle{FontSize: 12})
	w2, h2 := canvas.MeasureText("goal - home", ports.TextStyle{FontSize: 24})

	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("expected positive size, got %.1fx%.1f", w1, h1)
	}
	if w2 <= w1 || h2 <= h1 {
		t.Errorf("expected 24pt text to be larger than 12pt: %.1fx%.1f vs %.1fx%.1f", w2, h2, w1, h1)
	}
}

func TestCanvas_MissingFontFallsBack(t *testing.T) {
	canvas := New().CreateCanvas(10, 10, color.Black)
	style := ports.TextStyle{FontSize: 16, FontPath: filepath.Join(t.TempDir(), "missing.ttf")}

	w, _ := canvas.MeasureText("goal", style)
	fallback, _ := canvas.MeasureText("goal", ports.TextStyle{FontSize: 16})

	if w != fallback {
		t.Errorf("expected fallback font width %.1f, got %.1f", fallback, w)
	}
}
