package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/todoadd/internal/core/config"
	"github.com/hay-kot/todoadd/internal/core/deadline"
	"github.com/hay-kot/todoadd/internal/core/locate"
	"github.com/hay-kot/todoadd/internal/printer"
	"github.com/hay-kot/todoadd/internal/prompt"
	"github.com/hay-kot/todoadd/internal/prompt/prompttest"
)

var fakeDates = deadline.ParserFunc(func(expr string) (time.Time, error) {
	if expr == "tomorrow at 10am" {
		return time.Date(2026, time.October, 20, 10, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("could not understand %q", expr)
})

type harness struct {
	t        *testing.T
	home     string
	flags    *Flags
	prompter *prompttest.Prompter
	out      bytes.Buffer
	msgs     bytes.Buffer
	errMsgs  bytes.Buffer
}

func newHarness(t *testing.T, steps ...prompttest.Step) *harness {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	cfg := config.DefaultConfig()
	return &harness{
		t:        t,
		home:     home,
		flags:    &Flags{Config: &cfg},
		prompter: prompttest.New(steps...),
	}
}

func (h *harness) run(args ...string) error {
	add := NewAddCmd(h.flags)
	add.newPrompter = func() prompt.Prompter { return h.prompter }
	add.dates = fakeDates

	app := &cli.Command{
		Name:      "todoadd",
		ArgsUsage: "[FILE]",
		Writer:    &h.out,
		ErrWriter: &h.out,
		Flags:     add.Flags(),
		Action:    add.Run,
	}
	NewTagsCmd(h.flags).Register(app)

	ctx := printer.NewContext(context.Background(), printer.New(&h.msgs, &h.errMsgs))
	return app.Run(ctx, append([]string{"todoadd"}, args...))
}

func (h *harness) write(rel, content string) string {
	h.t.Helper()
	path := filepath.Join(h.home, rel)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (h *harness) read(path string) string {
	h.t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(h.t, err)
	return string(data)
}

func buyMilk() []prompttest.Step {
	return []prompttest.Step{
		prompttest.Reply("Buy milk"),
		prompttest.Reply("+home +shopping"),
		prompttest.Reply("A"),
		prompttest.Reply("no"),
	}
}

func TestAdd_AppendsTask(t *testing.T) {
	h := newHarness(t, buyMilk()...)
	original := "(B) existing task +work\n"
	path := h.write("lists/todo.txt", original)
	h.write("lists/done.txt", "x 2026-10-01 weed beds +garden\n")

	require.NoError(t, h.run(path))

	assert.Equal(t, original+"(A) Buy milk +home +shopping\n", h.read(path))
	assert.Equal(t, original, h.read(path+".bak"))
	assert.Contains(t, h.msgs.String(), "Adding task")
	assert.Contains(t, h.msgs.String(), "Buy milk")
	assert.NotContains(t, h.read(path), "deadline:")
	assert.NotContains(t, h.read(path), "due:")
	assert.Empty(t, h.errMsgs.String())
}

func TestAdd_FileWithoutTrailingNewline(t *testing.T) {
	h := newHarness(t, buyMilk()...)
	path := h.write("todo.txt", "(B) existing task +work")
	h.write("done.txt", "")

	require.NoError(t, h.run(path))

	assert.Equal(t, "(B) existing task +work\n(A) Buy milk +home +shopping\n", h.read(path))
}

func TestAdd_SuggestsTagsFromBothFiles(t *testing.T) {
	h := newHarness(t,
		prompttest.Reply("Buy milk"),
		prompttest.Reply("+gar"),
		prompttest.Reply("A"),
		prompttest.Reply("no"),
	)
	path := h.write("todo.txt", "(B) existing task +work\n")
	h.write("done.txt", "x 2026-10-01 weed beds +garden\n")

	require.NoError(t, h.run(path))

	assert.Equal(t, []string{"+garden"}, h.prompter.Suggestions["Projects"])
	assert.Equal(t, "Known tags: +garden", h.prompter.Hints["Projects"])
}

func TestAdd_DeadlineWithDueFlag(t *testing.T) {
	h := newHarness(t,
		prompttest.Reply("Call mom"),
		prompttest.Reply("+family"),
		prompttest.Reply("B"),
		prompttest.Reply("yes"),
		prompttest.Reply("tomorrow at 10am"),
	)
	path := h.write("todo.txt", "")
	h.write("done.txt", "")

	require.NoError(t, h.run("--due", path))

	assert.Equal(t, "(B) Call mom +family deadline:2026-10-20-10-00 due:2026-10-20\n", h.read(path))
}

func TestAdd_DueFlagOverridesConfig(t *testing.T) {
	tests := []struct {
		name      string
		configDue bool
		args      []string
		want      string
	}{
		{"config on", true, nil, " due:2026-10-20"},
		{"flag off overrides config on", true, []string{"--due=false"}, ""},
		{"flag on overrides config off", false, []string{"--due"}, " due:2026-10-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t,
				prompttest.Reply("Call mom"),
				prompttest.Reply("+family"),
				prompttest.Reply("B"),
				prompttest.Reply("yes"),
				prompttest.Reply("tomorrow at 10am"),
			)
			h.flags.Config.AddDue = tt.configDue
			path := h.write("todo.txt", "")
			h.write("done.txt", "")

			require.NoError(t, h.run(append(tt.args, path)...))

			assert.Equal(t, "(B) Call mom +family deadline:2026-10-20-10-00"+tt.want+"\n", h.read(path))
		})
	}
}

func TestAdd_DeadlineFormatFlagOverridesConfig(t *testing.T) {
	h := newHarness(t,
		prompttest.Reply("Call mom"),
		prompttest.Reply("+family"),
		prompttest.Reply("B"),
		prompttest.Reply("yes"),
		prompttest.Reply("tomorrow at 10am"),
	)
	h.flags.Config.DeadlineFormat = "%Y%m%d"
	h.flags.Config.AddDue = true
	path := h.write("todo.txt", "")
	h.write("done.txt", "")

	require.NoError(t, h.run("--deadline-format", "%Y-%m-%dT%H%M", path))

	assert.Equal(t, "(B) Call mom +family deadline:2026-10-20T1000 due:2026-10-20\n", h.read(path))
}

func TestAdd_DeadlineFormatFromConfig(t *testing.T) {
	h := newHarness(t,
		prompttest.Reply("Call mom"),
		prompttest.Reply("+family"),
		prompttest.Reply("B"),
		prompttest.Reply("yes"),
		prompttest.Reply("tomorrow at 10am"),
	)
	h.flags.Config.DeadlineFormat = "%Y%m%d"
	path := h.write("todo.txt", "")
	h.write("done.txt", "")

	require.NoError(t, h.run(path))

	assert.Equal(t, "(B) Call mom +family deadline:20261020\n", h.read(path))
}

func TestAdd_InvalidDeadlineFormat(t *testing.T) {
	h := newHarness(t)
	path := h.write("todo.txt", "task\n")

	err := h.run("--deadline-format", "%H:%M", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadline-format")
	assert.NoFileExists(t, path+".bak")
}

func TestAdd_NoFileFound(t *testing.T) {
	h := newHarness(t)

	err := h.run()
	require.ErrorIs(t, err, locate.ErrNotFound)
	assert.Contains(t, h.out.String(), "todoadd", "help is shown")

	entries, err := os.ReadDir(h.home)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file is created")
}

func TestAdd_ExplicitMissingFileDoesNotFallBack(t *testing.T) {
	h := newHarness(t, buyMilk()...)
	conventional := h.write(".todo/todo.txt", "keep me\n")

	err := h.run(filepath.Join(h.home, "missing.txt"))
	require.ErrorIs(t, err, locate.ErrNotFound)
	assert.Equal(t, "keep me\n", h.read(conventional))
	assert.Equal(t, 4, h.prompter.Remaining())
}

func TestAdd_DiscoversConventionalFile(t *testing.T) {
	h := newHarness(t, buyMilk()...)
	path := h.write(".todo/todo.txt", "")
	h.write(".todo/done.txt", "")

	require.NoError(t, h.run())

	assert.Contains(t, h.msgs.String(), "Using "+path)
	assert.Equal(t, "(A) Buy milk +home +shopping\n", h.read(path))
}

func TestAdd_XDGLocationWinsOverHomeDotTodo(t *testing.T) {
	h := newHarness(t, buyMilk()...)
	xdg := h.write(".config/todo/todo.txt", "")
	dot := h.write(".todo/todo.txt", "")

	require.NoError(t, h.run())

	assert.Contains(t, h.read(xdg), "Buy milk")
	assert.Empty(t, h.read(dot))
}

func TestAdd_ConfiguredSearchPath(t *testing.T) {
	h := newHarness(t, buyMilk()...)
	h.flags.Config.SearchPaths = []string{"~/Dropbox/todo.txt"}
	path := h.write("Dropbox/todo.txt", "")

	require.NoError(t, h.run())

	assert.Contains(t, h.read(path), "Buy milk")
}

func TestAdd_MissingDoneFileWarns(t *testing.T) {
	h := newHarness(t, buyMilk()...)
	path := h.write("todo.txt", "")

	require.NoError(t, h.run(path))

	assert.Contains(t, h.errMsgs.String(), "No done file")
	assert.Contains(t, h.read(path), "Buy milk")
}

func TestAdd_MalformedDoneFileWarns(t *testing.T) {
	h := newHarness(t,
		prompttest.Reply("Buy milk"),
		prompttest.Reply("+gar"),
		prompttest.Reply("A"),
		prompttest.Reply("no"),
	)
	path := h.write("todo.txt", "(B) existing task +work\n")
	h.write("done.txt", "x 2026-10-01 weed beds +garden\nx 2026-10-02\n")

	require.NoError(t, h.run(path))

	assert.Contains(t, h.errMsgs.String(), "Ignoring done file")
	assert.Contains(t, h.errMsgs.String(), "line 2")
	assert.Equal(t, "(B) existing task +work\n(A) Buy milk +gar\n", h.read(path))
	assert.Empty(t, h.prompter.Suggestions["Projects"], "done file tags are not used")
}

func TestAdd_CancelledWritesNothing(t *testing.T) {
	h := newHarness(t, prompttest.Cancel())
	original := "(B) existing task +work\n"
	path := h.write("todo.txt", original)
	h.write("done.txt", "")

	require.NoError(t, h.run(path))

	assert.Equal(t, original, h.read(path))
	assert.Contains(t, h.msgs.String(), "nothing was added")
}

func TestAdd_BlankDescription(t *testing.T) {
	h := newHarness(t, prompttest.Reply("  "))
	original := "(B) existing task +work\n"
	path := h.write("todo.txt", original)
	h.write("done.txt", "")

	require.NoError(t, h.run(path))

	assert.Equal(t, original, h.read(path))
	assert.Contains(t, h.errMsgs.String(), "Description cannot be empty")
}

func TestAdd_MalformedFileAbortsBeforeBackup(t *testing.T) {
	h := newHarness(t, buyMilk()...)
	path := h.write("todo.txt", "ok\n(A)\n")

	err := h.run(path)
	require.Error(t, err)
	assert.NoFileExists(t, path+".bak")
	assert.Equal(t, "ok\n(A)\n", h.read(path))
}

func TestAdd_TooManyArguments(t *testing.T) {
	h := newHarness(t)
	a := h.write("a.txt", "")
	b := h.write("b.txt", "")

	err := h.run(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most one")
}

func TestTags_ListsUniverse(t *testing.T) {
	h := newHarness(t)
	path := h.write("todo.txt", "(A) one +work +home\ntwo +work\n")
	h.write("done.txt", "x 2026-10-01 three +garden\n")

	require.NoError(t, h.run("tags", path))

	assert.Equal(t, "+garden\n+home\n+work\n", h.out.String())
}

func TestTags_NoFile(t *testing.T) {
	h := newHarness(t)

	err := h.run("tags")
	assert.ErrorIs(t, err, locate.ErrNotFound)
}
