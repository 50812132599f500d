package main

import (
	"fmt"
	"strconv"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framemark/pkg/adapters/capturehtml"
	"github.com/user/framemark/pkg/adapters/ffmpegsource"
	"github.com/user/framemark/pkg/adapters/framesink"
	"github.com/user/framemark/pkg/adapters/ggrenderer"
	"github.com/user/framemark/pkg/adapters/logger"
	"github.com/user/framemark/pkg/adapters/nulldisplay"
	"github.com/user/framemark/pkg/adapters/osfilesystem"
	"github.com/user/framemark/pkg/annotation"
	"github.com/user/framemark/pkg/config"
	"github.com/user/framemark/pkg/overlay"
	"github.com/user/framemark/pkg/ports"
	"github.com/user/framemark/pkg/report"
	"github.com/user/framemark/pkg/session"
	"github.com/user/framemark/pkg/shell"
	"github.com/user/framemark/pkg/snapshot"
	"github.com/user/framemark/pkg/timecode"
)

func openCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     l10n.T("Play a video and annotate frames interactively"),
		ArgsUsage: "<video>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "save-mode", Usage: l10n.T("When to write the sidecar (immediate, batch)")},
			&cli.IntFlag{Name: "seek-step", Usage: l10n.T("Frames to skip per seek")},
			&cli.StringFlag{Name: "style", Usage: l10n.T("Overlay style (text, banner)")},
			&cli.StringFlag{Name: "preview", Usage: l10n.T("Preview image path")},
			&cli.BoolFlag{Name: "no-preview", Usage: l10n.T("Do not write preview images")},
		},
		Action: runOpen,
	}
}

func runOpen(c *cli.Context) error {
	videoPath, err := videoArg(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("save-mode") {
		cfg.SaveMode = c.String("save-mode")
	}
	if c.IsSet("seek-step") {
		cfg.SeekStep = c.Int("seek-step")
	}
	if c.IsSet("style") {
		cfg.Overlay.Style = c.String("style")
	}
	if c.IsSet("preview") {
		cfg.Preview.Path = c.String("preview")
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(l10n.F("Invalid configuration: %s", err.Error()), 2)
	}

	// Console output would corrupt the terminal UI, so log lines are kept
	// in memory and the newest one is shown in the status area.
	logs := logger.NewBuffer(ports.ParseLogLevel(cfg.LogLevel), 100)

	src, err := ffmpegsource.Open(c.Context, videoPath, ffmpegsource.Options{
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
		Logger:      logs,
	})
	if err != nil {
		return cli.Exit(l10n.F("Cannot open video %s: %s", videoPath, err.Error()), 1)
	}

	fs := osfilesystem.New()
	var display ports.Display = nulldisplay.New()
	previewPath := ""
	if !c.Bool("no-preview") {
		renderer := ggrenderer.New()
		previewPath = cfg.PreviewPath(videoPath)
		display = framesink.New(osfilesystem.NewPreview(), renderer, newCompositor(cfg, renderer, logs), framesink.Options{
			Path:     previewPath,
			MaxWidth: cfg.Preview.MaxWidth,
		})
	}

	sess := session.New(src, display, fs, logs, videoPath, cfg.ToSessionOptions())
	sidecar := sess.Store().Path()

	if err := shell.Run(c.Context, sess, shell.Options{
		TickInterval: cfg.TickInterval(),
		PreviewPath:  previewPath,
		Logs:         logs,
	}); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintln(c.App.Writer, l10n.F("Annotations are in %s", sidecar))
	return nil
}

func newCompositor(cfg config.Config, renderer ports.Renderer, log ports.Logger) *overlay.Compositor {
	capturer := capturehtml.New(capturehtml.Options{ExecPath: cfg.Overlay.ChromePath})
	return overlay.New(renderer, capturer, cfg.ToOverlayOptions(), log)
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     l10n.T("Add one annotation without opening the player"),
		ArgsUsage: "<video>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Required: true, Usage: l10n.T("Annotation label")},
			&cli.StringFlag{Name: "team", Required: true, Usage: l10n.T("Team name")},
			&cli.IntFlag{Name: "frame", Usage: l10n.T("Frame index")},
			&cli.StringFlag{Name: "at", Usage: l10n.T("Time code HH:MM:SS, converted to a frame")},
			&cli.Float64Flag{Name: "fps", Usage: l10n.T("Frame rate; read from the video when omitted")},
		},
		Action: runAdd,
	}
}

func runAdd(c *cli.Context) error {
	videoPath, err := videoArg(c)
	if err != nil {
		return err
	}
	if c.IsSet("frame") == c.IsSet("at") {
		return cli.Exit(l10n.T("Specify exactly one of --frame or --at"), 2)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	fps := c.Float64("fps")
	frameCount := -1
	if !c.IsSet("fps") {
		src, err := ffmpegsource.Open(c.Context, videoPath, ffmpegsource.Options{
			FFmpegPath:  cfg.FFmpegPath,
			FFprobePath: cfg.FFprobePath,
			Logger:      log,
		})
		if err != nil {
			return cli.Exit(l10n.F("Cannot open video %s: %s", videoPath, err.Error()), 1)
		}
		fps, frameCount = videoTiming(src, log, videoPath)
	}

	frame := c.Int("frame")
	if c.IsSet("at") {
		seconds, err := timecode.Parse(c.String("at"))
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		if frame, err = timecode.ToFrame(seconds, fps); err != nil {
			return cli.Exit(err.Error(), 2)
		}
	}
	if frameCount >= 0 && frame >= frameCount {
		return cli.Exit(l10n.F("Frame %d is past the end of the video (%d frames)", frame, frameCount), 2)
	}

	store := annotation.NewStore(osfilesystem.New(), log, videoPath)
	if _, err := store.Load(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	a, err := store.Add(c.String("label"), c.String("team"), frame, fps)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if _, err := store.Save(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintln(c.App.Writer, l10n.F("Annotated frame %s at %s: %s", a.Position, a.GameTime, a.Text()))
	return nil
}

// videoTiming reads the frame rate and frame count of src and releases it.
func videoTiming(src ports.VideoSource, log ports.Logger, videoPath string) (float64, int) {
	defer func() {
		if err := src.Close(); err != nil {
			log.Warn("Cannot close video %s: %s", videoPath, err.Error())
		}
	}()
	return src.FrameRate(), src.FrameCount()
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     l10n.T("Show the annotations of a video"),
		ArgsUsage: "<video>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "markdown", Aliases: []string{"m"}, Usage: l10n.T("Write a Markdown report")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Write to a file instead of stdout")},
		},
		Action: runList,
	}
}

func runList(c *cli.Context) error {
	videoPath, err := videoArg(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	fs := osfilesystem.New()
	store := annotation.NewStore(fs, newLogger(c, cfg), videoPath)
	file, err := store.Load()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	r := report.NewBuilder().
		WithVideo(report.VideoInfo{Path: videoPath}).
		WithFile(file).
		Build()

	opts := []report.Option{report.WithTranslator(l10n.T), report.WithVersion(version)}
	var formatter report.Formatter = report.NewTableFormatter(opts...)
	if c.Bool("markdown") {
		formatter = report.NewMarkdownFormatter(opts...)
	}

	if out := c.String("output"); out != "" {
		if err := report.NewWriter(fs, formatter).Write(out, r); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Fprintln(c.App.Writer, l10n.F("Report written to %s", out))
		return nil
	}
	fmt.Fprint(c.App.Writer, formatter.Format(r))
	return nil
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     l10n.T("Export every annotated frame as an image"),
		ArgsUsage: "<video>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "overlay", Usage: l10n.T("Draw the annotation text on the images")},
			&cli.StringFlag{Name: "dir", Aliases: []string{"o"}, Usage: l10n.T("Output directory (default: the annotation folder)")},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: l10n.T("Image format (png, jpeg)")},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: l10n.T("Parallel decoders")},
		},
		Action: runSnapshot,
	}
}

func runSnapshot(c *cli.Context) error {
	videoPath, err := videoArg(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("format") {
		cfg.Snapshot.Format = c.String("format")
	}
	if c.IsSet("workers") {
		cfg.Snapshot.Workers = c.Int("workers")
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(l10n.F("Invalid configuration: %s", err.Error()), 2)
	}
	log := newLogger(c, cfg)

	fs := osfilesystem.New()
	store := annotation.NewStore(fs, log, videoPath)
	file, err := store.Load()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(file.Annotations) == 0 {
		fmt.Fprintln(c.App.Writer, l10n.F("No annotations in %s", store.Path()))
		return nil
	}

	src, err := ffmpegsource.Open(c.Context, videoPath, ffmpegsource.Options{
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
		Logger:      log,
	})
	if err != nil {
		return cli.Exit(l10n.F("Cannot open video %s: %s", videoPath, err.Error()), 1)
	}
	defer src.Close()

	renderer := ggrenderer.New()
	exporter := snapshot.New(src, renderer, fs, newCompositor(cfg, renderer, log), log, snapshot.Options{
		Workers: cfg.Snapshot.Workers,
		Format:  ports.ParseImageFormat(cfg.Snapshot.Format),
		Quality: cfg.Snapshot.Quality,
		Overlay: c.Bool("overlay"),
	})

	dir := c.String("dir")
	if dir == "" {
		dir = store.FolderPath()
	}
	results, err := exporter.Export(c.Context, dir, file.Annotations)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	for _, r := range results {
		fmt.Fprintln(c.App.Writer, r.Path)
	}
	return nil
}

func timecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "timecode",
		Usage:     l10n.T("Convert a frame index to HH:MM:SS"),
		ArgsUsage: "<frame>",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "fps", Required: true, Usage: l10n.T("Frame rate")},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit(l10n.T("Missing frame index"), 2)
			}
			frame, err := strconv.Atoi(c.Args().First())
			if err != nil {
				return cli.Exit(l10n.F("Invalid frame index %q", c.Args().First()), 2)
			}
			tc, err := timecode.FromFrame(frame, c.Float64("fps"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			fmt.Fprintln(c.App.Writer, tc)
			return nil
		},
	}
}
