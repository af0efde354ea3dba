// Package todotxt reads and writes task lists in the todo.txt line format.
//
// A line is an optional completion marker ("x" plus completion date), an
// optional priority "(A)", an optional creation date and the task body. The
// body is kept verbatim; project tags (+name), contexts (@name) and key:value
// metadata found in it are exposed as parsed views.
package todotxt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the todo.txt calendar date format.
const DateLayout = "2006-01-02"

// ErrEmptyTask is returned when a line has no description after its prefix.
var ErrEmptyTask = errors.New("task has no description")

var (
	priorityPattern = regexp.MustCompile(`^\(([A-Z])\)$`)
	metadataPattern = regexp.MustCompile(`^([^:\s]+):([^:\s]+)$`)
)

// Tag is a single key:value metadata pair.
type Tag struct {
	Key   string
	Value string
}

// Metadata is an ordered list of key:value pairs.
type Metadata []Tag

// Get returns the value of the first pair with the given key.
func (m Metadata) Get(key string) (string, bool) {
	for _, t := range m {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key, or appends a new pair.
func (m *Metadata) Set(key, value string) {
	for i, t := range *m {
		if t.Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Tag{Key: key, Value: value})
}

// Task is a single todo.txt record.
type Task struct {
	Completed     bool
	CompletedDate time.Time
	Priority      string
	CreatedDate   time.Time

	// Description is the task body. Tags written inline are preserved in
	// place; Projects, Contexts and Metadata not already present in the
	// body are appended when the task is serialized.
	Description string
	Projects    []string
	Contexts    []string
	Metadata    Metadata
}

// ParseTask parses one todo.txt line.
func ParseTask(line string) (Task, error) {
	var task Task

	rest := strings.TrimSpace(strings.TrimRight(line, "\r\n"))

	tok, after := nextToken(rest)
	switch {
	case tok == "x":
		task.Completed = true
		rest = after
		if d, ok := parseDate(rest); ok {
			task.CompletedDate = d
			_, rest = nextToken(rest)
			if d, ok := parseDate(rest); ok {
				task.CreatedDate = d
				_, rest = nextToken(rest)
			}
		}
	case priorityPattern.MatchString(tok):
		task.Priority = priorityPattern.FindStringSubmatch(tok)[1]
		rest = after
		if d, ok := parseDate(rest); ok {
			task.CreatedDate = d
			_, rest = nextToken(rest)
		}
	default:
		if d, ok := parseDate(rest); ok {
			task.CreatedDate = d
			_, rest = nextToken(rest)
		}
	}

	if rest == "" {
		return Task{}, ErrEmptyTask
	}

	task.Description = rest
	for _, field := range strings.Fields(rest) {
		switch {
		case len(field) > 1 && field[0] == '+':
			task.Projects = appendUnique(task.Projects, field[1:])
		case len(field) > 1 && field[0] == '@':
			task.Contexts = appendUnique(task.Contexts, field[1:])
		default:
			m := metadataPattern.FindStringSubmatch(field)
			if m == nil || strings.HasPrefix(m[2], "//") {
				continue
			}
			if _, exists := task.Metadata.Get(m[1]); !exists {
				task.Metadata = append(task.Metadata, Tag{Key: m[1], Value: m[2]})
			}
		}
	}

	return task, nil
}

// String renders the task as a single todo.txt line.
func (t Task) String() string {
	var b strings.Builder

	if t.Completed {
		b.WriteString("x ")
		if !t.CompletedDate.IsZero() {
			b.WriteString(t.CompletedDate.Format(DateLayout))
			b.WriteByte(' ')
		}
	} else if t.Priority != "" {
		b.WriteString("(" + t.Priority + ") ")
	}

	if !t.CreatedDate.IsZero() {
		b.WriteString(t.CreatedDate.Format(DateLayout))
		b.WriteByte(' ')
	}

	b.WriteString(t.Description)

	present := make(map[string]struct{})
	for _, field := range strings.Fields(t.Description) {
		present[field] = struct{}{}
	}

	appendField := func(field string) {
		if _, ok := present[field]; ok {
			return
		}
		present[field] = struct{}{}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(field)
	}

	for _, p := range t.Projects {
		appendField("+" + p)
	}
	for _, c := range t.Contexts {
		appendField("@" + c)
	}
	for _, m := range t.Metadata {
		appendField(m.Key + ":" + m.Value)
	}

	return b.String()
}

// nextToken splits off the first whitespace-delimited token of s. The
// remainder has its leading whitespace trimmed.
func nextToken(s string) (string, string) {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimLeft(s[idx:], " \t")
}

func parseDate(s string) (time.Time, bool) {
	tok, _ := nextToken(s)
	if len(tok) != len(DateLayout) {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, tok)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// Validate reports whether the task can be written as a single well-formed
// line.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyTask
	}
	if strings.ContainsAny(t.Description, "\r\n") {
		return fmt.Errorf("description contains a line break")
	}
	if t.Priority != "" && !priorityPattern.MatchString("("+t.Priority+")") {
		return fmt.Errorf("invalid priority %q", t.Priority)
	}
	for _, m := range t.Metadata {
		if !metadataPattern.MatchString(m.Key + ":" + m.Value) {
			return fmt.Errorf("invalid metadata %s:%s", m.Key, m.Value)
		}
	}
	return nil
}
