// Package snippets expands configured shorthand phrases into their full
// text, e.g. "my email" -> "jane@example.com".
package snippets

import (
	"regexp"
	"sort"
	"strings"
)

// Expander performs whole-word, case-insensitive snippet expansion.
// Longer shorthands win over shorter ones so "my work email" is never
// shadowed by "my email".
type Expander struct {
	entries []entry
}

type entry struct {
	re       *regexp.Regexp
	expanded string
}

// New compiles an expander from the shorthand map. Invalid or empty
// shorthands are skipped; snippet expansion is never a reason to fail
// startup.
func New(mapping map[string]string) *Expander {
	shorthands := make([]string, 0, len(mapping))
	for k := range mapping {
		if strings.TrimSpace(k) != "" {
			shorthands = append(shorthands, k)
		}
	}
	sort.Slice(shorthands, func(i, j int) bool {
		if len(shorthands[i]) != len(shorthands[j]) {
			return len(shorthands[i]) > len(shorthands[j])
		}
		return shorthands[i] < shorthands[j]
	})

	e := &Expander{entries: make([]entry, 0, len(shorthands))}
	for _, s := range shorthands {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(s)) + `\b`)
		if err != nil {
			continue
		}
		e.entries = append(e.entries, entry{re: re, expanded: mapping[s]})
	}
	return e
}

// Len reports the number of usable snippets.
func (e *Expander) Len() int { return len(e.entries) }

// Expand replaces every shorthand occurrence.
func (e *Expander) Expand(text string) string {
	result := text
	for _, ent := range e.entries {
		result = ent.re.ReplaceAllString(result, ent.expanded)
	}
	return result
}
