package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/todoadd/internal/core/config"
	"github.com/hay-kot/todoadd/internal/core/deadline"
	"github.com/hay-kot/todoadd/internal/core/locate"
	"github.com/hay-kot/todoadd/internal/core/logging"
	"github.com/hay-kot/todoadd/internal/core/styles"
	"github.com/hay-kot/todoadd/internal/core/tags"
	"github.com/hay-kot/todoadd/internal/core/todotxt"
	"github.com/hay-kot/todoadd/internal/printer"
	"github.com/hay-kot/todoadd/internal/prompt"
	"github.com/hay-kot/todoadd/internal/todofile"
)

// AddCmd asks for a new task and appends it to the todo file. It is the
// root command's default action.
type AddCmd struct {
	flags *Flags

	due            bool
	deadlineFormat string
	accessible     bool

	newPrompter func() prompt.Prompter
	dates       deadline.Parser
}

// NewAddCmd creates the add command.
func NewAddCmd(flags *Flags) *AddCmd {
	cmd := &AddCmd{
		flags: flags,
		dates: deadline.NewNaturalParser(),
	}
	cmd.newPrompter = cmd.huhPrompter
	return cmd
}

// Flags returns the add flags for registration on the root command.
func (cmd *AddCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "due",
			Aliases:     []string{"d"},
			Usage:       "also attach due:YYYY-MM-DD when a deadline is set",
			Sources:     cli.EnvVars("TODOADD_DUE"),
			Destination: &cmd.due,
		},
		&cli.StringFlag{
			Name:        "deadline-format",
			Aliases:     []string{"f"},
			Usage:       "strftime format of the deadline metadata value",
			Sources:     cli.EnvVars("TODOADD_DEADLINE_FORMAT"),
			Value:       deadline.DefaultFormat,
			Destination: &cmd.deadlineFormat,
		},
		&cli.BoolFlag{
			Name:        "accessible",
			Usage:       "use plain line-based prompts (automatic when stdin is not a terminal)",
			Sources:     cli.EnvVars("TODOADD_ACCESSIBLE"),
			Destination: &cmd.accessible,
		},
	}
}

// Run executes the add flow. Exported for use as default command.
func (cmd *AddCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	cfg := cmd.flags.config()

	if c.NArg() > 1 {
		_ = cli.ShowSubcommandHelp(c)
		return fmt.Errorf("expected at most one todo file, got %d arguments", c.NArg())
	}

	opts, err := cmd.options(c, cfg)
	if err != nil {
		return err
	}

	target, err := resolveTarget(c, cfg)
	if err != nil {
		return err
	}
	ctx = logging.WithTodoFile(ctx, target.Path)
	if target.Discovered {
		p.Infof("Using %s", target.Path)
	}

	list, universe, err := loadLists(ctx, p, target.Path, cfg)
	if err != nil {
		return err
	}

	backupPath, err := todofile.Backup(target.Path, cfg.BackupSuffix)
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	log.Debug().Ctx(ctx).Str("backup", backupPath).Msg("backup written")

	seq := prompt.NewSequence(cmd.newPrompter(), universe, cmd.dates, opts, logging.Component("prompt"))
	ans, err := seq.Run(ctx)
	if errors.Is(err, prompt.ErrBlankDescription) {
		p.Errorf("Description cannot be empty, nothing was added")
		return nil
	}
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}

	task, ok := ans.Get()
	if !ok {
		p.Infof("Cancelled, nothing was added")
		return nil
	}

	list.Append(task)
	p.Success("Adding task", printer.RenderTask(task))

	if err := todofile.Save(target.Path, list); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	log.Info().Ctx(ctx).Str("task", task.String()).Int("tasks", len(list)).Msg("task added")
	return nil
}

// options merges flags over config values.
func (cmd *AddCmd) options(c *cli.Command, cfg *config.Config) (prompt.Options, error) {
	format := cfg.DeadlineFormat
	if c.IsSet("deadline-format") {
		format = cmd.deadlineFormat
	}
	if err := deadline.ValidateFormat(format); err != nil {
		return prompt.Options{}, fmt.Errorf("deadline-format: %w", err)
	}

	addDue := cfg.AddDue
	if c.IsSet("due") {
		addDue = cmd.due
	}

	return prompt.Options{
		DeadlineFormat:  format,
		AddDue:          addDue,
		SuggestionLimit: cfg.Suggestions,
		DefaultTags:     cfg.DefaultTags,
	}, nil
}

func (cmd *AddCmd) huhPrompter() prompt.Prompter {
	return &prompt.HuhPrompter{
		Theme:      styles.FormTheme(),
		Accessible: cmd.accessible || !term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// resolveTarget finds the todo file from the first argument or the default
// locations. On failure the command help is shown.
func resolveTarget(c *cli.Command, cfg *config.Config) (locate.Result, error) {
	candidates := append(locate.DefaultCandidates(), cfg.SearchPaths...)

	target, err := locate.Resolve(c.Args().First(), candidates)
	if err != nil {
		_ = cli.ShowSubcommandHelp(c)
		return locate.Result{}, err
	}
	return target, nil
}

// loadLists reads the todo file and its done file and collects the tag
// universe from both. A missing or malformed done file only produces a
// warning; a malformed todo file is an error.
func loadLists(ctx context.Context, p *printer.Printer, path string, cfg *config.Config) (todotxt.List, tags.Universe, error) {
	list, err := todofile.Load(path)
	if err != nil {
		return nil, nil, err
	}

	donePath := todofile.DonePath(path, cfg.DoneFile)
	done, found, err := todofile.LoadDone(donePath)
	var lineErr *todotxt.LineError
	switch {
	case errors.As(err, &lineErr):
		p.Warnf("Ignoring done file %s: %v", donePath, err)
		log.Warn().Ctx(ctx).Err(err).Str("done_file", donePath).Msg("done file not parsed")
		done = nil
	case err != nil:
		return nil, nil, err
	case !found:
		p.Warnf("No done file at %s, tag suggestions use open tasks only", donePath)
		log.Warn().Ctx(ctx).Str("done_file", donePath).Msg("done file not found")
	}

	return list, tags.Collect(list, done), nil
}
