// Package commands detects spoken editing commands at the edges of a
// transcript and executes them through synthetic keyboard input.
package commands

import (
	"strings"

	"voxkey/internal/domain"
)

// phrase maps a normalized spoken phrase to its command. Longer phrases
// are matched before shorter ones.
type phrase struct {
	tokens []string
	cmd    domain.CommandID
}

var vocabulary = []phrase{
	{tokens: []string{"new", "paragraph"}, cmd: domain.CommandNewParagraph},
	{tokens: []string{"new", "line"}, cmd: domain.CommandNewLine},
	{tokens: []string{"delete", "that"}, cmd: domain.CommandDeleteThat},
	{tokens: []string{"press", "enter"}, cmd: domain.CommandPressEnter},
	{tokens: []string{"press", "tab"}, cmd: domain.CommandPressTab},
	{tokens: []string{"scratch", "that"}, cmd: domain.CommandDeleteThat},
}

// Detector matches the leading or trailing portion of text against the
// command vocabulary.
type Detector struct {
	enabledOnly map[domain.CommandID]struct{}
}

// NewDetector creates a detector. With no arguments the full vocabulary
// is active; otherwise only the listed commands are recognized.
func NewDetector(enabled ...domain.CommandID) *Detector {
	d := &Detector{}
	if len(enabled) > 0 {
		d.enabledOnly = make(map[domain.CommandID]struct{}, len(enabled))
		for _, cmd := range enabled {
			d.enabledOnly[cmd] = struct{}{}
		}
	}
	return d
}

// Detect reports the first command found at the leading edge, then the
// trailing edge. remaining is the text with the matched span removed;
// when the command consumes the whole utterance remaining is empty.
func (d *Detector) Detect(text string) (domain.CommandID, string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", text, false
	}

	norm := make([]string, len(fields))
	for i, f := range fields {
		norm[i] = normalizeToken(f)
	}

	for _, p := range vocabulary {
		if !d.enabled(p.cmd) || len(p.tokens) > len(norm) {
			continue
		}
		if matchAt(norm, p.tokens, 0) {
			remaining := strings.Join(fields[len(p.tokens):], " ")
			return p.cmd, remaining, true
		}
		if matchAt(norm, p.tokens, len(norm)-len(p.tokens)) {
			remaining := strings.Join(fields[:len(norm)-len(p.tokens)], " ")
			return p.cmd, remaining, true
		}
	}
	return "", text, false
}

func (d *Detector) enabled(cmd domain.CommandID) bool {
	if d.enabledOnly == nil {
		return true
	}
	_, ok := d.enabledOnly[cmd]
	return ok
}

func matchAt(norm, tokens []string, start int) bool {
	for i, tok := range tokens {
		if norm[start+i] != tok {
			return false
		}
	}
	return true
}

func normalizeToken(s string) string {
	return strings.Trim(strings.ToLower(s), ".,!?;:")
}
