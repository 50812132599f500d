// Package overlay draws annotation text on top of video frames.
//
// Two styles are available. The text style draws each line with the 2D
// renderer. The banner style renders the lines as HTML in headless Chrome
// and places the captured strip at the top of the frame; captures are
// cached per distinct set of lines.
package overlay

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/user/framemark/pkg/ports"
)

// Style selects how overlay lines are drawn.
type Style string

const (
	StyleText   Style = "text"
	StyleBanner Style = "banner"
)

// ParseStyle returns StyleBanner for "banner" and StyleText otherwise.
func ParseStyle(s string) Style {
	if s == string(StyleBanner) {
		return StyleBanner
	}
	return StyleText
}

// Options configures a Compositor.
type Options struct {
	Style    Style
	Color    color.Color
	FontPath string
	FontSize float64
	// X and Y place the first text line; its vertical center sits at Y.
	X, Y int
}

// DefaultOptions returns green 24pt text at (50, 50).
func DefaultOptions() Options {
	return Options{
		Style:    StyleText,
		Color:    color.RGBA{G: 255, A: 255},
		FontSize: 24,
		X:        50,
		Y:        50,
	}
}

const (
	lineSpacing     = 1.5
	backdropPadding = 6
	bannerHeight    = 200
)

var backdropColor = color.RGBA{A: 140}

// Compositor draws overlay lines onto frames. It is safe for concurrent use.
type Compositor struct {
	renderer ports.Renderer
	capturer ports.HTMLCapturer
	opts     Options
	logger   ports.Logger

	mu      sync.Mutex
	banners map[string]image.Image
}

// New creates a Compositor. capturer may be nil when the banner style is
// not used; banner captures that fail fall back to the text style.
func New(renderer ports.Renderer, capturer ports.HTMLCapturer, opts Options, logger ports.Logger) *Compositor {
	def := DefaultOptions()
	if opts.Color == nil {
		opts.Color = def.Color
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.Style == "" {
		opts.Style = def.Style
	}
	return &Compositor{
		renderer: renderer,
		capturer: capturer,
		opts:     opts,
		logger:   logger.WithComponent("overlay"),
		banners:  make(map[string]image.Image),
	}
}

// Compose returns frame with lines drawn over it. With no lines the frame
// is returned unchanged.
func (c *Compositor) Compose(ctx context.Context, frame image.Image, lines []string) (image.Image, error) {
	if len(lines) == 0 {
		return frame, nil
	}

	b := frame.Bounds()
	canvas := c.renderer.CreateCanvas(b.Dx(), b.Dy(), color.Black)
	canvas.DrawImage(frame, -b.Min.X, -b.Min.Y)

	if c.opts.Style == StyleBanner && c.capturer != nil {
		banner, err := c.banner(ctx, lines, b.Dx())
		if err == nil {
			canvas.DrawImage(banner, 0, 0)
			return canvas.ToImage(), nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("Banner overlay failed, using text: %s", err.Error())
	}

	c.drawText(canvas, lines)
	return canvas.ToImage(), nil
}

func (c *Compositor) drawText(canvas ports.Canvas, lines []string) {
	style := ports.TextStyle{
		FontSize: c.opts.FontSize,
		FontPath: c.opts.FontPath,
		Color:    c.opts.Color,
		Align:    ports.AlignLeft,
	}
	step := int(c.opts.FontSize * lineSpacing)

	for i, line := range lines {
		y := c.opts.Y + i*step
		w, h := canvas.MeasureText(line, style)
		canvas.DrawRoundedRect(
			c.opts.X-backdropPadding,
			y-int(h/2)-backdropPadding,
			int(w)+2*backdropPadding,
			int(h)+2*backdropPadding,
			backdropPadding,
			backdropColor,
		)
		canvas.DrawText(line, c.opts.X, y, style)
	}
}

func (c *Compositor) banner(ctx context.Context, lines []string, width int) (image.Image, error) {
	key := fmt.Sprintf("%d\x00%s", width, strings.Join(lines, "\x00"))

	c.mu.Lock()
	img, ok := c.banners[key]
	c.mu.Unlock()
	if ok {
		return img, nil
	}

	html, err := renderBannerHTML(bannerVars{
		BodyWidth: width,
		FontSize:  int(c.opts.FontSize),
		Color:     hexColor(c.opts.Color),
		Lines:     lines,
	})
	if err != nil {
		return nil, err
	}

	img, err = c.capturer.CaptureHTMLWithViewport(ctx, html, width, bannerHeight)
	if err != nil {
		return nil, fmt.Errorf("capture banner: %w", err)
	}
	c.logger.Debug("Banner rendered: %dx%d", img.Bounds().Dx(), img.Bounds().Dy())

	c.mu.Lock()
	c.banners[key] = img
	c.mu.Unlock()
	return img, nil
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
