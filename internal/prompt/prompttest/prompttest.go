// Package prompttest provides a scripted prompt.Prompter for tests.
package prompttest

import (
	"context"
	"fmt"
	"strings"

	"github.com/hay-kot/todoadd/internal/prompt"
)

// Step is one scripted operator reply.
type Step struct {
	Value  string
	Cancel bool
}

// Reply answers a question with v. For confirms use "yes" or "no".
func Reply(v string) Step { return Step{Value: v} }

// Cancel dismisses a question.
func Cancel() Step { return Step{Cancel: true} }

// Prompter replays scripted steps in order. Inputs run the field's
// validator like a real form: a rejected reply is recorded and the next
// step is used as the retry.
type Prompter struct {
	steps []Step

	// Asked lists question titles in the order they were shown, including
	// re-asks after a rejected reply.
	Asked []string
	// Rejections holds validation errors shown to the operator.
	Rejections []error
	// Suggestions holds the suggestions computed for each input title from
	// the reply typed there.
	Suggestions map[string][]string
	// Hints holds the hint computed for each input title from the reply
	// typed there.
	Hints map[string]string
}

var _ prompt.Prompter = (*Prompter)(nil)

// New returns a prompter that replays steps.
func New(steps ...Step) *Prompter {
	return &Prompter{
		steps:       steps,
		Suggestions: make(map[string][]string),
		Hints:       make(map[string]string),
	}
}

// Remaining returns the number of unused steps.
func (p *Prompter) Remaining() int {
	return len(p.steps)
}

func (p *Prompter) next(title string) (Step, error) {
	p.Asked = append(p.Asked, title)
	if len(p.steps) == 0 {
		return Step{}, fmt.Errorf("prompttest: no scripted reply for %q", title)
	}
	s := p.steps[0]
	p.steps = p.steps[1:]
	return s, nil
}

// Input implements prompt.Prompter.
func (p *Prompter) Input(ctx context.Context, field prompt.InputField) (prompt.Answer[string], error) {
	for {
		if err := ctx.Err(); err != nil {
			return prompt.Cancelled[string](), err
		}

		step, err := p.next(field.Title)
		if err != nil {
			return prompt.Cancelled[string](), err
		}
		if step.Cancel {
			return prompt.Cancelled[string](), nil
		}

		if field.Suggest != nil {
			p.Suggestions[field.Title] = field.Suggest(step.Value)
		}
		if field.Hint != nil {
			p.Hints[field.Title] = field.Hint(step.Value)
		}

		if field.Validate != nil {
			if err := field.Validate(step.Value); err != nil {
				p.Rejections = append(p.Rejections, err)
				continue
			}
		}

		return prompt.Some(step.Value), nil
	}
}

// Select implements prompt.Prompter.
func (p *Prompter) Select(_ context.Context, title string, options []prompt.Option) (prompt.Answer[string], error) {
	step, err := p.next(title)
	if err != nil {
		return prompt.Cancelled[string](), err
	}
	if step.Cancel {
		return prompt.Cancelled[string](), nil
	}

	for _, o := range options {
		if o.Value == step.Value {
			return prompt.Some(step.Value), nil
		}
	}
	return prompt.Cancelled[string](), fmt.Errorf("prompttest: %q is not an option of %q", step.Value, title)
}

// Confirm implements prompt.Prompter.
func (p *Prompter) Confirm(_ context.Context, title string) (prompt.Answer[bool], error) {
	step, err := p.next(title)
	if err != nil {
		return prompt.Cancelled[bool](), err
	}
	if step.Cancel {
		return prompt.Cancelled[bool](), nil
	}

	switch strings.ToLower(step.Value) {
	case "y", "yes", "true":
		return prompt.Some(true), nil
	default:
		return prompt.Some(false), nil
	}
}
