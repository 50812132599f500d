package ports

import (
	"context"
	"image"
)

// HTMLCapturer renders HTML snippets into images.
type HTMLCapturer interface {
	// CaptureHTMLWithViewport renders HTML at a specific viewport width and
	// returns the body cropped to its rendered size. Areas the page leaves
	// unpainted are transparent.
	CaptureHTMLWithViewport(ctx context.Context, html string, width, height int) (image.Image, error)
}
