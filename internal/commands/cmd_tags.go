package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/todoadd/internal/printer"
)

// TagsCmd implements the todoadd tags command.
type TagsCmd struct {
	flags *Flags
}

// NewTagsCmd creates a new tags command.
func NewTagsCmd(flags *Flags) *TagsCmd {
	return &TagsCmd{flags: flags}
}

// Register adds the tags command to the application.
func (cmd *TagsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tags",
		Usage:     "List project tags used in the todo and done files",
		UsageText: "todoadd tags [FILE]",
		Description: `Prints every distinct project tag found in the todo file and its done
file, one per line with the + marker, sorted. Useful for shell completion.

Examples:
  todoadd tags
  todoadd tags ~/Dropbox/todo/todo.txt`,
		ShellComplete: TodoFileCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *TagsCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.config()

	target, err := resolveTarget(c, cfg)
	if err != nil {
		return err
	}

	_, universe, err := loadLists(ctx, printer.Ctx(ctx), target.Path, cfg)
	if err != nil {
		return err
	}

	for _, tag := range universe {
		if _, err := fmt.Fprintln(c.Root().Writer, "+"+tag); err != nil {
			return err
		}
	}
	return nil
}
