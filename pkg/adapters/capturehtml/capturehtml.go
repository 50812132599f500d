// Package capturehtml renders HTML snippets to images with headless Chrome.
package capturehtml

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"golang.org/x/image/draw"

	"github.com/user/framemark/pkg/ports"
)

// Options configures the browser used for capture.
type Options struct {
	// ExecPath overrides Chrome discovery when set.
	ExecPath string
}

// Capturer captures HTML as images using a headless browser. Each capture
// starts its own browser.
type Capturer struct {
	opts Options
}

// New creates a new HTML capturer.
func New(opts Options) *Capturer {
	return &Capturer{opts: opts}
}

var _ ports.HTMLCapturer = (*Capturer)(nil)

// CaptureHTMLWithViewport renders html in a width x height viewport with a
// transparent page background and returns the body cropped to its size.
func (c *Capturer) CaptureHTMLWithViewport(ctx context.Context, html string, width, height int) (image.Image, error) {
	tmp, err := os.CreateTemp("", "framemark-overlay-*.html")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("hide-scrollbars", true),
	)
	if c.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var bodyWidth, bodyHeight float64
	var buf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}),
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.Evaluate(`document.body.getBoundingClientRect().width`, &bodyWidth),
		chromedp.Evaluate(`document.body.getBoundingClientRect().height`, &bodyHeight),
		chromedp.FullScreenshot(&buf, 100),
	); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}

	return crop(img, int(bodyWidth), int(bodyHeight)), nil
}

// crop returns the top-left w x h region of img, clamped to its bounds.
// Non-positive sizes return img unchanged.
func crop(img image.Image, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return img
	}
	b := img.Bounds()
	if w > b.Dx() {
		w = b.Dx()
	}
	if h > b.Dy() {
		h = b.Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
