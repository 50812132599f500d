// Package snapshot exports the annotated frames of a video as still images
// into the video's annotation folder.
package snapshot

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/user/framemark/pkg/annotation"
	"github.com/user/framemark/pkg/ports"
)

// Composer draws overlay lines onto a frame.
type Composer interface {
	Compose(ctx context.Context, frame image.Image, lines []string) (image.Image, error)
}

// Options configures an Exporter.
type Options struct {
	Workers int
	Format  ports.ImageFormat
	Quality int
	// Overlay burns the annotation text into each exported frame.
	Overlay bool
}

// Result describes one exported frame.
type Result struct {
	Frame int
	Path  string
	Lines []string
}

// Exporter decodes annotated frames in parallel and writes them to disk.
type Exporter struct {
	grabber  ports.FrameGrabber
	renderer ports.Renderer
	fs       ports.FileSystem
	composer Composer
	logger   ports.Logger
	opts     Options
}

// New creates an Exporter. composer is only used when opts.Overlay is set.
func New(grabber ports.FrameGrabber, renderer ports.Renderer, fs ports.FileSystem, composer Composer, logger ports.Logger, opts Options) *Exporter {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Exporter{
		grabber:  grabber,
		renderer: renderer,
		fs:       fs,
		composer: composer,
		logger:   logger.WithComponent("snapshot"),
		opts:     opts,
	}
}

// FileName returns the file name used for frame in the given format.
func FileName(frame int, format ports.ImageFormat) string {
	return fmt.Sprintf("frame-%d%s", frame, format.Ext())
}

// DisplayedFrame maps an annotation position to the frame that was on screen
// when it was taken. The position is the read cursor, one past the frame
// last shown, so position N names frame N-1. Position 0 stays on frame 0.
func DisplayedFrame(position int) int {
	return max(position-1, 0)
}

// Export writes one image per distinct displayed frame into dir. Results
// are ordered by frame. Annotations whose position is not a frame number
// are skipped. The first failure cancels the remaining work.
func (e *Exporter) Export(ctx context.Context, dir string, annotations []annotation.Annotation) ([]Result, error) {
	jobs := e.plan(annotations)
	if len(jobs) == 0 {
		return nil, nil
	}
	if err := e.fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	e.logger.Info("Exporting %d frames with %d workers", len(jobs), e.opts.Workers)

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			path := filepath.Join(dir, FileName(job.Frame, e.opts.Format))
			if err := e.export(gctx, job, path); err != nil {
				return fmt.Errorf("export frame %d: %w", job.Frame, err)
			}
			results[i] = Result{Frame: job.Frame, Path: path, Lines: job.Lines}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info("Exported %d frames to %s", len(results), dir)
	return results, nil
}

func (e *Exporter) export(ctx context.Context, job Result, path string) error {
	img, err := e.grabber.Grab(ctx, job.Frame)
	if err != nil {
		return err
	}
	if e.opts.Overlay && e.composer != nil {
		if img, err = e.composer.Compose(ctx, img, job.Lines); err != nil {
			return err
		}
	}

	data, err := e.renderer.EncodeImage(img, e.opts.Format, e.opts.Quality)
	if err != nil {
		return err
	}
	e.logger.Debug("Writing %s", path)
	return e.fs.WriteFile(path, data)
}

// plan groups annotation texts by displayed frame, ascending.
func (e *Exporter) plan(annotations []annotation.Annotation) []Result {
	byFrame := make(map[int][]string)
	for _, a := range annotations {
		position, ok := a.Frame()
		if !ok {
			e.logger.Warn("Skipping annotation with position %q", a.Position)
			continue
		}
		frame := DisplayedFrame(position)
		byFrame[frame] = append(byFrame[frame], a.Text())
	}

	jobs := make([]Result, 0, len(byFrame))
	for frame, lines := range byFrame {
		jobs = append(jobs, Result{Frame: frame, Lines: lines})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Frame < jobs[j].Frame })
	return jobs
}
