package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/todoadd/internal/commands"
	"github.com/hay-kot/todoadd/internal/core/config"
	"github.com/hay-kot/todoadd/internal/core/logging"
	"github.com/hay-kot/todoadd/internal/core/styles"
	"github.com/hay-kot/todoadd/internal/printer"
	"github.com/hay-kot/todoadd/pkg/logutils"
	"github.com/hay-kot/todoadd/pkg/randid"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// ldflags aren't set by `go install module@version`, so fall back to the
	// module version and VCS metadata Go records in the binary.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "todoadd",
		Usage:     "Interactively add a task to a todo.txt file",
		UsageText: "todoadd [global options] [FILE]",
		ArgsUsage: "[FILE]",
		Description: `todoadd asks a few questions and appends one task to a todo.txt file.

It prompts for a description, one or more +project tags (with suggestions
from the todo and done files), a priority, and an optional deadline written
in plain language ("tomorrow at 10am", "next friday").

Without FILE the first existing file of $XDG_CONFIG_HOME/todo/todo.txt and
~/.todo/todo.txt is used. A copy of the file is saved next to it as
<FILE>.bak before anything is asked.`,
		Version:               build(),
		EnableShellCompletion: true,
		ShellComplete:         commands.TodoFileCompleter(flags),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TODOADD_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logging is off when empty)",
				Sources:     cli.EnvVars("TODOADD_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TODOADD_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			ctx = logging.WithRunID(ctx, randid.Generate(6))
			ctx = printer.NewContext(ctx, printer.New(os.Stdout, os.Stderr))

			log.Debug().Ctx(ctx).Str("config", flags.ConfigPath).Msg("config loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	addCmd := commands.NewAddCmd(flags)

	app = commands.NewTagsCmd(flags).Register(app)

	// Adding a task is the default action; the optional argument is the file.
	app.Flags = append(app.Flags, addCmd.Flags()...)
	app.Action = addCmd.Run

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
