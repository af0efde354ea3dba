package todotxt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// List is an ordered sequence of tasks, one per line on disk.
type List []Task

// Append adds a task to the end of the list.
func (l *List) Append(t Task) {
	*l = append(*l, t)
}

// LineError reports a line that could not be parsed.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Parse reads every non-blank line of r as a task. Parsing is all or
// nothing: the first malformed line fails the whole read.
func Parse(r io.Reader) (List, error) {
	var list List

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		task, err := ParseTask(line)
		if err != nil {
			return nil, &LineError{Line: lineNo, Err: err}
		}
		list = append(list, task)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	return list, nil
}

// Write serializes the list with one task per line. Lines are separated by
// "\n" and the output is not terminated by a newline; callers that need one
// write it themselves.
func Write(w io.Writer, list List) error {
	bw := bufio.NewWriter(w)
	for i, task := range list {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(task.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
