// Package printer writes styled, human-facing messages to the terminal.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/todoadd/internal/core/styles"
	"github.com/hay-kot/todoadd/internal/core/todotxt"
)

type ctxKey struct{}

// Printer writes operator messages. Informational output goes to out;
// warnings and errors go to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a printer.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stdout/stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, styles.InfoStyle.Render("•")+" "+fmt.Sprintf(format, args...))
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, styles.SuccessStyle.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// Success writes a success title followed by an indented detail line.
func (p *Printer) Success(title, detail string) {
	p.Successf("%s", title)
	if detail != "" {
		_, _ = fmt.Fprintln(p.out, "  "+detail)
	}
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	_, _ = fmt.Fprintln(p.errOut, styles.WarnStyle.Render("!")+" "+fmt.Sprintf(format, args...))
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintln(p.errOut, styles.ErrorStyle.Render("✗")+" "+fmt.Sprintf(format, args...))
}

// RenderTask highlights the tokens of a task line.
func RenderTask(t todotxt.Task) string {
	fields := strings.Fields(t.String())
	for i, f := range fields {
		switch {
		case i == 0 && !t.Completed && t.Priority != "" && f == "("+t.Priority+")":
			fields[i] = styles.PriorityStyle.Render(f)
		case len(f) > 1 && f[0] == '+':
			fields[i] = styles.ProjectStyle.Render(f)
		case len(f) > 1 && f[0] == '@':
			fields[i] = styles.ContextStyle.Render(f)
		case isMetadata(t.Metadata, f):
			fields[i] = styles.MetadataStyle.Render(f)
		}
	}
	return strings.Join(fields, " ")
}

func isMetadata(m todotxt.Metadata, field string) bool {
	key, value, ok := strings.Cut(field, ":")
	if !ok {
		return false
	}
	v, found := m.Get(key)
	return found && v == value
}
