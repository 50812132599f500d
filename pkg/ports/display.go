package ports

import "context"

// Display presents decoded frames to the operator.
// It replaces the on-screen video panel of a desktop player.
type Display interface {
	// Show renders the frame with the given overlay lines drawn on top.
	// overlays may be empty.
	Show(ctx context.Context, frame Frame, overlays []string) error
}
