// Package deadline turns natural-language time expressions into timestamps
// and formats them as todo.txt metadata values.
package deadline

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/ncruces/go-strftime"
	naturaldate "github.com/tj/go-naturaldate"
)

const (
	// DefaultFormat is the strftime pattern for the "deadline" metadata value.
	DefaultFormat = "%Y-%m-%d-%H-%M"

	// DeadlineKey and DueKey are the metadata keys written for a deadline.
	DeadlineKey = "deadline"
	DueKey      = "due"
)

// Parser converts an expression such as "tomorrow at 10pm" into a time.
type Parser interface {
	Parse(expr string) (time.Time, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(expr string) (time.Time, error)

func (f ParserFunc) Parse(expr string) (time.Time, error) { return f(expr) }

// NaturalParser parses English time expressions relative to Now. Ambiguous
// expressions resolve to the future, so "friday" is the next Friday.
type NaturalParser struct {
	Now func() time.Time
}

// NewNaturalParser returns a parser anchored at the wall clock.
func NewNaturalParser() *NaturalParser {
	return &NaturalParser{Now: time.Now}
}

// Parse implements Parser.
func (p *NaturalParser) Parse(expr string) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}
	if word, ok := unknownWord(expr); ok {
		return time.Time{}, fmt.Errorf("could not understand %q: unknown word %q", expr, word)
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	ref := now()

	t, err := naturaldate.Parse(expr, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, fmt.Errorf("could not understand %q: %w", expr, err)
	}

	// The parser falls back to the reference time for input it does not
	// recognise instead of failing.
	if t.Equal(ref) && !strings.EqualFold(expr, "now") && !strings.EqualFold(expr, "today") {
		return time.Time{}, fmt.Errorf("could not understand %q", expr)
	}

	// A bare weekday naming today means the same day next week.
	if day, ok := weekdays[strings.ToLower(expr)]; ok && day == ref.Weekday() && Date(t) == Date(ref) {
		t = t.AddDate(0, 0, 7)
	}

	return t, nil
}

// Format renders t with a strftime pattern. Whitespace in the result is
// replaced by "-" so the value stays a single metadata token.
func Format(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultFormat
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, strftime.Format(pattern, t))
}

// Date renders the calendar date of t as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

// ValidateFormat checks that pattern is usable as a deadline format: it
// must render something and must not render ':' which would break the
// key:value metadata token.
func ValidateFormat(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("format cannot be empty")
	}
	sample := Format(time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC), pattern)
	if strings.Contains(sample, ":") {
		return fmt.Errorf("format %q renders %q which contains ':'", pattern, sample)
	}
	return nil
}

// numericToken matches numbers, clock times, ordinals and numeric dates
// such as "10", "10am", "10:30pm", "3rd", "2026-10-20" and "10/20".
var numericToken = regexp.MustCompile(`^\d[\d:/.-]*(am|pm|a|p|st|nd|rd|th|h|m|d|w|y)?$`)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// timeWords are the words a time expression may contain besides weekdays
// and numeric tokens.
var timeWords = wordSet(`
	now today tonight tomorrow yesterday
	next last this past in at on by of the a an ago from after before and
	morning afternoon evening night noon midday midnight am pm
	second seconds sec secs minute minutes min mins hour hours hr hrs
	day days week weeks weekend month months year years fortnight
	one two three four five six seven eight nine ten eleven twelve
	fifteen twenty thirty forty fifty half quarter couple few
	january february march april may june july august september october november december
	jan feb mar apr jun jul aug sep sept oct nov dec
`)

func wordSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// unknownWord returns the first word of expr that is not part of the time
// vocabulary. The natural date grammar skips words it does not know, so
// "blah tomorrow" would otherwise be read as "tomorrow".
func unknownWord(expr string) (string, bool) {
	fields := strings.FieldsFunc(strings.ToLower(expr), func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	for _, f := range fields {
		if _, ok := timeWords[f]; ok {
			continue
		}
		if _, ok := weekdays[f]; ok {
			continue
		}
		if numericToken.MatchString(f) {
			continue
		}
		return f, true
	}
	return "", false
}
