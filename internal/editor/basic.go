// Package editor rewrites transcribed speech: deterministic rule-based
// cleanup plus optional AI providers with explicit fallback composition.
package editor

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"voxkey/internal/ports"
)

// Leading fillers are stripped repeatedly from the start of the
// utterance; "so" and "like" are only fillers in that position.
var leadingFiller = regexp.MustCompile(`(?i)^(?:um+|uh+|er+|ah+|so|well|okay|like|anyway)[,\s]+`)

// Inner fillers are removed anywhere.
var innerFillers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bum+\b`),
	regexp.MustCompile(`(?i)\buh+\b`),
	regexp.MustCompile(`(?i)\byou know\b`),
	regexp.MustCompile(`(?i)\bi mean\b`),
	regexp.MustCompile(`(?i)\bkind of\b`),
	regexp.MustCompile(`(?i)\bsort of\b`),
	regexp.MustCompile(`(?i)\bbasically\b`),
	regexp.MustCompile(`(?i)\bliterally\b`),
	regexp.MustCompile(`(?i)\bhonestly\b`),
}

// "like," is filler; "I like cats" is not.
var likeBeforeComma = regexp.MustCompile(`(?i)\blike\b\s*,`)

var (
	multiSpace       = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
	punctNoSpace     = regexp.MustCompile(`([.,!?;:])([^\s.,!?;:])`)
	leadingPunct     = regexp.MustCompile(`^[,;:\s]+`)
)

// Basic is the deterministic local cleanup editor. Applying it to
// already-clean text is a fixed point.
type Basic struct{}

// NewBasic creates the rule-based editor.
func NewBasic() *Basic { return &Basic{} }

// Edit applies filler removal, whitespace and punctuation
// normalization, capitalization, and terminal punctuation. It never
// fails.
func (b *Basic) Edit(_ context.Context, text string, _ ports.EditRequest) (string, error) {
	result := strings.TrimSpace(text)

	for {
		stripped := leadingFiller.ReplaceAllString(result, "")
		stripped = strings.TrimSpace(stripped)
		if stripped == result {
			break
		}
		result = stripped
	}

	for _, re := range innerFillers {
		result = re.ReplaceAllString(result, "")
	}
	result = likeBeforeComma.ReplaceAllString(result, "")

	result = multiSpace.ReplaceAllString(result, " ")
	result = spaceBeforePunct.ReplaceAllString(result, "$1")
	result = punctNoSpace.ReplaceAllString(result, "$1 $2")
	result = leadingPunct.ReplaceAllString(result, "")
	result = strings.TrimSpace(result)

	if result == "" {
		return "", nil
	}

	r, size := utf8.DecodeRuneInString(result)
	result = string(unicode.ToUpper(r)) + result[size:]

	last, _ := utf8.DecodeLastRuneInString(result)
	if !strings.ContainsRune(".!?", last) {
		result += "."
	}
	return result, nil
}
