// Package main provides the CLI entry point for framemark.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framemark/pkg/adapters/logger"
	"github.com/user/framemark/pkg/config"
	"github.com/user/framemark/pkg/ports"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "framemark",
		Usage:           l10n.T("Annotate video frames with labels and teams"),
		Version:         version,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("YAML configuration file"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   l10n.T("Suppress all log output"),
			},
			&cli.StringFlag{
				Name:  "ffmpeg",
				Usage: l10n.T("Path to the ffmpeg executable"),
			},
			&cli.StringFlag{
				Name:  "ffprobe",
				Usage: l10n.T("Path to the ffprobe executable"),
			},
		},
		Commands: []*cli.Command{
			openCommand(),
			addCommand(),
			listCommand(),
			snapshotCommand(),
			timecodeCommand(),
		},
	}
}

// loadConfig reads --config when given and applies the global flag
// overrides on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, cli.Exit(l10n.F("Cannot load config: %s", err.Error()), 2)
		}
		cfg = loaded
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("quiet") {
		cfg.LogLevel = ports.LevelQuiet.String()
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("ffprobe") {
		cfg.FFprobePath = c.String("ffprobe")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, cli.Exit(l10n.F("Invalid configuration: %s", err.Error()), 2)
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	level := ports.ParseLogLevel(cfg.LogLevel)
	if level == ports.LevelQuiet {
		return logger.NewNoop()
	}
	if c.App.Writer == os.Stdout {
		return logger.NewConsole(level)
	}
	return logger.NewConsoleWriter(level, c.App.Writer, c.App.ErrWriter)
}

func videoArg(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", cli.Exit(l10n.T("Missing video path"), 2)
	}
	return c.Args().First(), nil
}
