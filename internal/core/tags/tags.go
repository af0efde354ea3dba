// Package tags aggregates the project tags already used across task lists
// and turns them into completion suggestions.
package tags

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hay-kot/todoadd/internal/core/todotxt"
	"github.com/hay-kot/todoadd/internal/core/validate"
)

// Universe is the sorted set of distinct project tags seen in task lists.
type Universe []string

// Collect returns the distinct project tags across all lists.
func Collect(lists ...todotxt.List) Universe {
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, task := range list {
			for _, p := range task.Projects {
				seen[p] = struct{}{}
			}
		}
	}

	u := make(Universe, 0, len(seen))
	for tag := range seen {
		u = append(u, tag)
	}
	slices.Sort(u)
	return u
}

// Complete returns completions of the last token of input that the
// operator can accept as the new input value. Each completion is the whole
// input with its last token replaced by a marked tag, so the typed input is
// always a prefix of it. Only tags starting with the typed text are
// offered; an input that ends in whitespace starts a new token and is
// offered every unused tag. At most limit completions are returned; limit
// <= 0 means no limit.
func (u Universe) Complete(input string, limit int) []string {
	if len(u) == 0 {
		return nil
	}

	prefix, last := splitLast(input)
	if last != "" && !strings.HasPrefix(last, validate.ProjectMarker) {
		return []string{}
	}
	typed := strings.TrimPrefix(last, validate.ProjectMarker)

	out := []string{}
	for _, tag := range u.unused(prefix) {
		if !strings.HasPrefix(tag, typed) {
			continue
		}
		out = append(out, prefix+validate.ProjectMarker+tag)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Match ranks the unused tags against the last token of input with fuzzy
// matching and returns them marked, best match first. Tags already present
// earlier in the input are skipped. An empty last token matches every
// unused tag in sorted order. At most limit tags are returned; limit <= 0
// means no limit.
func (u Universe) Match(input string, limit int) []string {
	if len(u) == 0 {
		return nil
	}

	prefix, last := splitLast(input)
	candidates := u.unused(prefix)

	var ranked []string
	pattern := strings.TrimPrefix(last, validate.ProjectMarker)
	if pattern == "" {
		ranked = candidates
	} else {
		for _, m := range fuzzy.Find(pattern, candidates) {
			ranked = append(ranked, m.Str)
		}
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, tag := range ranked {
		out = append(out, validate.ProjectMarker+tag)
	}
	return out
}

// unused returns the tags of the universe not already typed in prefix.
func (u Universe) unused(prefix string) []string {
	used := make(map[string]struct{})
	for _, tok := range strings.Fields(prefix) {
		used[strings.TrimPrefix(tok, validate.ProjectMarker)] = struct{}{}
	}

	candidates := make([]string, 0, len(u))
	for _, tag := range u {
		if _, ok := used[tag]; !ok {
			candidates = append(candidates, tag)
		}
	}
	return candidates
}

// splitLast separates input into everything up to and including the last
// whitespace, and the trailing token being typed.
func splitLast(input string) (string, string) {
	idx := strings.LastIndexAny(input, " \t")
	if idx < 0 {
		return "", input
	}
	return input[:idx+1], input[idx+1:]
}
