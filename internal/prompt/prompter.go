// Package prompt walks the operator through the questions needed to build a
// new todo.txt task.
package prompt

import "context"

// InputField describes a single-line text question.
type InputField struct {
	Title       string
	Description string
	Placeholder string
	Value       string

	// Validate rejects an answer; the prompt is shown again with the error.
	Validate func(string) error
	// Suggest returns completions for the value typed so far. A completion
	// must extend the typed value to be offered.
	Suggest func(string) []string
	// Hint returns extra text shown under the description for the value
	// typed so far, or "" for none.
	Hint func(string) string
}

// Option is one choice of a select question.
type Option struct {
	Label string
	Value string
}

// Prompter asks the operator questions. Each method blocks until the
// operator answers or cancels; cancellation is a Cancelled answer, not an
// error.
type Prompter interface {
	Input(ctx context.Context, field InputField) (Answer[string], error)
	Select(ctx context.Context, title string, options []Option) (Answer[string], error)
	Confirm(ctx context.Context, title string) (Answer[bool], error)
}
