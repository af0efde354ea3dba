// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hay-kot/criterio"
)

// ProjectMarker prefixes a project tag token in todo.txt.
const ProjectMarker = "+"

// projectTagPattern matches a marker followed by one or more word characters.
// Word characters include letters and digits of any script.
var projectTagPattern = regexp.MustCompile(`^\+[\p{L}\p{N}_]+$`)

// ErrNoProjectTags is returned when the tag input has no tokens.
var ErrNoProjectTags = errors.New("at least one project tag is required")

// Description validates a task description is non-empty after trimming whitespace.
func Description(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("description is required")
	}
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("description must be a single line")
	}
	return nil
}

// ProjectTags validates whitespace separated project tags such as
// "+home +shopping". The error names the first offending token.
func ProjectTags(input string) error {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return ErrNoProjectTags
	}
	for _, tok := range tokens {
		if !projectTagPattern.MatchString(tok) {
			return fmt.Errorf("%q does not look like a project tag (expected %sname)", tok, ProjectMarker)
		}
	}
	return nil
}

// SplitProjectTags turns accepted tag input into bare tag names: the marker
// is stripped, duplicates dropped and input order kept.
func SplitProjectTags(input string) []string {
	var (
		tags []string
		seen = make(map[string]struct{})
	)
	for _, tok := range strings.Fields(input) {
		name := strings.TrimPrefix(tok, ProjectMarker)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}

// ProjectTagsField returns a criterio validator for project tag input.
func ProjectTagsField(field, input string) error {
	return criterio.Run(field, input, ProjectTags)
}
