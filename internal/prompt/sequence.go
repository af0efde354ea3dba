package prompt

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/todoadd/internal/core/deadline"
	"github.com/hay-kot/todoadd/internal/core/tags"
	"github.com/hay-kot/todoadd/internal/core/todotxt"
	"github.com/hay-kot/todoadd/internal/core/validate"
)

// ErrBlankDescription is returned when the operator submits an empty
// description. No task is produced.
var ErrBlankDescription = errors.New("description cannot be empty")

// Priorities offered by the priority question, highest first.
var Priorities = []Option{
	{Label: "A (highest)", Value: "A"},
	{Label: "B (medium)", Value: "B"},
	{Label: "C (lowest)", Value: "C"},
}

// LowestPriority is used when the priority question is dismissed.
const LowestPriority = "C"

// Options tunes how answers become a task.
type Options struct {
	// DeadlineFormat is the strftime pattern of the deadline metadata value.
	DeadlineFormat string
	// AddDue also writes a due:YYYY-MM-DD pair for the deadline.
	AddDue bool
	// SuggestionLimit caps tag suggestions; 0 means unlimited.
	SuggestionLimit int
	// DefaultTags pre-fills the project tags question.
	DefaultTags string
}

// Sequence asks description, project tags, priority and an optional
// deadline, in that order, and assembles the answers into a task.
type Sequence struct {
	prompter Prompter
	tags     tags.Universe
	dates    deadline.Parser
	opts     Options
	log      zerolog.Logger
}

// NewSequence creates a sequence. The tag universe seeds tag suggestions.
func NewSequence(p Prompter, universe tags.Universe, dates deadline.Parser, opts Options, log zerolog.Logger) *Sequence {
	if opts.DeadlineFormat == "" {
		opts.DeadlineFormat = deadline.DefaultFormat
	}
	return &Sequence{
		prompter: p,
		tags:     universe,
		dates:    dates,
		opts:     opts,
		log:      log,
	}
}

// Run asks every question and returns the new task. A cancelled
// description or tag question cancels the whole sequence; a blank
// description cancels it with ErrBlankDescription. Priority and deadline
// questions never cancel the sequence.
func (s *Sequence) Run(ctx context.Context) (Answer[todotxt.Task], error) {
	desc, err := s.description(ctx)
	if err != nil {
		return Cancelled[todotxt.Task](), err
	}
	description, ok := desc.Get()
	if !ok {
		s.log.Debug().Msg("description cancelled")
		return Cancelled[todotxt.Task](), nil
	}

	projectsAnswer, err := s.projects(ctx)
	if err != nil {
		return Cancelled[todotxt.Task](), err
	}
	projects, ok := projectsAnswer.Get()
	if !ok {
		s.log.Debug().Msg("project tags cancelled")
		return Cancelled[todotxt.Task](), nil
	}

	priority, err := s.priority(ctx)
	if err != nil {
		return Cancelled[todotxt.Task](), err
	}

	due, err := s.deadline(ctx)
	if err != nil {
		return Cancelled[todotxt.Task](), err
	}

	task := todotxt.Task{
		Description: description,
		Priority:    priority,
		Projects:    projects,
	}

	if at, ok := due.Get(); ok {
		task.Metadata.Set(deadline.DeadlineKey, deadline.Format(at, s.opts.DeadlineFormat))
		if s.opts.AddDue {
			task.Metadata.Set(deadline.DueKey, deadline.Date(at))
		}
	}

	if err := task.Validate(); err != nil {
		return Cancelled[todotxt.Task](), err
	}

	return Some(task), nil
}

func (s *Sequence) description(ctx context.Context) (Answer[string], error) {
	ans, err := s.prompter.Input(ctx, InputField{
		Title:       "What needs doing?",
		Description: "Task description",
		Placeholder: "Buy milk",
	})
	if err != nil {
		return Cancelled[string](), err
	}

	v, ok := ans.Get()
	if !ok {
		return ans, nil
	}
	if validate.Description(v) != nil {
		return Cancelled[string](), ErrBlankDescription
	}
	return Some(strings.TrimSpace(v)), nil
}

func (s *Sequence) projects(ctx context.Context) (Answer[[]string], error) {
	for {
		ans, err := s.prompter.Input(ctx, InputField{
			Title:       "Projects",
			Description: "One or more tags, e.g. +home +shopping",
			Placeholder: "+project",
			Value:       s.opts.DefaultTags,
			Validate:    validate.ProjectTags,
			Suggest: func(v string) []string {
				return s.tags.Complete(v, s.opts.SuggestionLimit)
			},
			Hint: s.tagHint,
		})
		if err != nil {
			return Cancelled[[]string](), err
		}

		v, ok := ans.Get()
		if !ok {
			return Cancelled[[]string](), nil
		}
		if err := validate.ProjectTags(v); err != nil {
			s.log.Debug().Err(err).Msg("project tags rejected")
			continue
		}
		return Some(validate.SplitProjectTags(v)), nil
	}
}

// tagHint lists the known tags that fuzzy-match the token being typed.
func (s *Sequence) tagHint(v string) string {
	matches := s.tags.Match(v, s.opts.SuggestionLimit)
	if len(matches) == 0 {
		return ""
	}
	return "Known tags: " + strings.Join(matches, " ")
}

func (s *Sequence) priority(ctx context.Context) (string, error) {
	ans, err := s.prompter.Select(ctx, "Priority", Priorities)
	if err != nil {
		return "", err
	}
	v := ans.Or(LowestPriority)
	if v == "" {
		v = LowestPriority
	}
	return v, nil
}

func (s *Sequence) deadline(ctx context.Context) (Answer[time.Time], error) {
	want, err := s.prompter.Confirm(ctx, "Set a deadline?")
	if err != nil {
		return Cancelled[time.Time](), err
	}
	if !want.Or(false) {
		return Cancelled[time.Time](), nil
	}

	for {
		ans, err := s.prompter.Input(ctx, InputField{
			Title:       "When is it due?",
			Description: `e.g. "9AM", "friday", "tomorrow at 10PM"`,
			Placeholder: "tomorrow at 10PM",
			Validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return nil
				}
				_, err := s.dates.Parse(v)
				return err
			},
		})
		if err != nil {
			return Cancelled[time.Time](), err
		}

		expr, ok := ans.Get()
		if !ok {
			s.log.Debug().Msg("deadline cancelled")
			return Cancelled[time.Time](), nil
		}
		if strings.TrimSpace(expr) == "" {
			continue
		}

		at, err := s.dates.Parse(expr)
		if err != nil {
			s.log.Debug().Err(err).Str("expr", expr).Msg("deadline not understood")
			continue
		}

		s.log.Debug().Time("deadline", at).Str("expr", expr).Msg("deadline parsed")
		return Some(at), nil
	}
}
