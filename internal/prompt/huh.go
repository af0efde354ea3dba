package prompt

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// HuhPrompter asks questions with one-field huh forms.
type HuhPrompter struct {
	Theme *huh.Theme
	// Accessible switches huh to plain line-based prompts, for screen
	// readers and non-terminal input.
	Accessible bool
	In         io.Reader
	Out        io.Writer
}

var _ Prompter = (*HuhPrompter)(nil)

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) (bool, error) {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.Accessible).
		WithShowHelp(true)
	if p.Theme != nil {
		form = form.WithTheme(p.Theme)
	}
	if p.In != nil {
		form = form.WithInput(p.In)
	}
	if p.Out != nil {
		form = form.WithOutput(p.Out)
	}

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Input implements Prompter.
func (p *HuhPrompter) Input(ctx context.Context, field InputField) (Answer[string], error) {
	value := field.Value

	in := huh.NewInput().
		Title(field.Title).
		Placeholder(field.Placeholder).
		Value(&value)
	if field.Hint != nil {
		in = in.DescriptionFunc(func() string { return describe(field, value) }, &value)
	} else {
		in = in.Description(field.Description)
	}
	if field.Validate != nil {
		in = in.Validate(field.Validate)
	}
	if field.Suggest != nil {
		in = in.SuggestionsFunc(func() []string { return completions(field, value) }, &value)
	}

	ok, err := p.run(ctx, in)
	if err != nil || !ok {
		return Cancelled[string](), err
	}
	return Some(value), nil
}

// Select implements Prompter.
func (p *HuhPrompter) Select(ctx context.Context, title string, options []Option) (Answer[string], error) {
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}

	var value string
	sel := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&value)

	ok, err := p.run(ctx, sel)
	if err != nil || !ok {
		return Cancelled[string](), err
	}
	return Some(value), nil
}

// Confirm implements Prompter.
func (p *HuhPrompter) Confirm(ctx context.Context, title string) (Answer[bool], error) {
	var value bool
	confirm := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	ok, err := p.run(ctx, confirm)
	if err != nil || !ok {
		return Cancelled[bool](), err
	}
	return Some(value), nil
}

// describe renders the field description followed by its hint for value.
func describe(field InputField, value string) string {
	if field.Hint == nil {
		return field.Description
	}
	hint := field.Hint(value)
	switch {
	case hint == "":
		return field.Description
	case field.Description == "":
		return hint
	default:
		return field.Description + "\n" + hint
	}
}

// completions returns the suggestions for value that the text input can
// offer: the input only shows suggestions that start with the typed value.
func completions(field InputField, value string) []string {
	var out []string
	for _, s := range field.Suggest(value) {
		if strings.HasPrefix(s, value) {
			out = append(out, s)
		}
	}
	return out
}
