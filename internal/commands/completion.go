package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/todoadd/internal/core/locate"
)

// TodoFileCompleter returns a ShellCompleteFunc that suggests the todo files
// found in the default and configured locations as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TodoFileCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		w := cmd.Root().Writer
		for _, path := range existingTodoFiles(flags) {
			_, _ = fmt.Fprintln(w, path)
		}
	}
}

// existingTodoFiles lists every candidate location that holds a file, in
// search order and without duplicates.
func existingTodoFiles(flags *Flags) []string {
	candidates := append(locate.DefaultCandidates(), flags.config().SearchPaths...)

	seen := make(map[string]struct{}, len(candidates))
	var found []string
	for _, c := range candidates {
		res, err := locate.Resolve(c, nil)
		if err != nil {
			continue
		}
		if _, dup := seen[res.Path]; dup {
			continue
		}
		seen[res.Path] = struct{}{}
		found = append(found, res.Path)
	}
	return found
}
