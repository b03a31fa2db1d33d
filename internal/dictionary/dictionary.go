// Package dictionary applies user-maintained transcript corrections:
// literal "from => to" substitutions and s/pattern/replacement/flags
// regex rules, loaded from a plain text file.
package dictionary

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

const defaultIterationLimit = 30

type rule interface {
	apply(input string) (output string, changed bool)
}

// Dictionary applies corrections until a fixed point or the iteration
// limit, whichever comes first. A missing or empty rules file yields an
// identity dictionary.
type Dictionary struct {
	rules          []rule
	iterationLimit int
}

// Load reads and compiles the rules file at path. A path that does not
// exist is not an error.
func Load(path string, iterationLimit int) (*Dictionary, error) {
	if iterationLimit <= 0 {
		iterationLimit = defaultIterationLimit
	}
	if strings.TrimSpace(path) == "" {
		return &Dictionary{iterationLimit: iterationLimit}, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Dictionary{iterationLimit: iterationLimit}, nil
		}
		return nil, fmt.Errorf("read dictionary file %q: %w", path, err)
	}

	rules, err := parse(string(contents))
	if err != nil {
		return nil, fmt.Errorf("parse dictionary file %q: %w", path, err)
	}
	return &Dictionary{rules: rules, iterationLimit: iterationLimit}, nil
}

// Parse compiles rules from in-memory contents, for callers that manage
// their own storage.
func Parse(contents string, iterationLimit int) (*Dictionary, error) {
	if iterationLimit <= 0 {
		iterationLimit = defaultIterationLimit
	}
	rules, err := parse(contents)
	if err != nil {
		return nil, err
	}
	return &Dictionary{rules: rules, iterationLimit: iterationLimit}, nil
}

// Len reports the number of compiled rules.
func (d *Dictionary) Len() int { return len(d.rules) }

// Apply transforms text deterministically.
func (d *Dictionary) Apply(text string) (string, error) {
	if len(d.rules) == 0 {
		return text, nil
	}

	result := text
	for i := 0; i < d.iterationLimit; i++ {
		changed := false
		for _, r := range d.rules {
			next, ruleChanged := r.apply(result)
			if ruleChanged {
				result = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return result, nil
}

func parse(contents string) ([]rule, error) {
	lines := strings.Split(contents, "\n")
	rules := make([]rule, 0, len(lines))

	for index, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var (
			r   rule
			err error
		)
		switch {
		case looksLikeRegexRule(line):
			r, err = parseRegexRule(line)
		case strings.Contains(line, "=>"):
			r, err = parseLiteralRule(line)
		default:
			err = errors.New("unsupported rule format")
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", index+1, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

type literalRule struct {
	re          *regexp.Regexp
	replacement string
}

func parseLiteralRule(line string) (rule, error) {
	parts := strings.SplitN(line, "=>", 2)
	from := strings.TrimSpace(parts[0])
	to := strings.TrimSpace(parts[1])
	if from == "" {
		return nil, errors.New("literal rule source cannot be empty")
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(from) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("invalid literal source: %w", err)
	}
	return literalRule{re: re, replacement: to}, nil
}

func (r literalRule) apply(input string) (string, bool) {
	output := r.re.ReplaceAllString(input, r.replacement)
	return output, output != input
}

type regexRule struct {
	re          *regexp.Regexp
	replacement string
	global      bool
}

func looksLikeRegexRule(line string) bool {
	return len(line) > 1 && line[0] == 's' && !isWordByte(line[1])
}

func parseRegexRule(line string) (rule, error) {
	delim := line[1]

	pattern, pos, err := parseDelimited(line, 2, delim)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	replacement, pos, err := parseDelimited(line, pos, delim)
	if err != nil {
		return nil, fmt.Errorf("invalid regex replacement: %w", err)
	}

	ignoreCase := true
	global := false
	var inlineFlags string
	for _, flag := range strings.TrimSpace(line[pos:]) {
		switch flag {
		case 'i':
			ignoreCase = true
		case 'g':
			global = true
		case 'm', 's':
			inlineFlags += string(flag)
		case ' ':
		default:
			return nil, fmt.Errorf("unsupported regex flag %q", flag)
		}
	}
	if ignoreCase {
		inlineFlags = "i" + inlineFlags
	}
	if inlineFlags != "" {
		pattern = "(?" + inlineFlags + ")" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex: %w", err)
	}
	return regexRule{re: re, replacement: replacement, global: global}, nil
}

func (r regexRule) apply(input string) (string, bool) {
	if r.global {
		output := r.re.ReplaceAllString(input, r.replacement)
		return output, output != input
	}

	loc := r.re.FindStringIndex(input)
	if loc == nil {
		return input, false
	}
	segment := input[loc[0]:loc[1]]
	output := input[:loc[0]] + r.re.ReplaceAllString(segment, r.replacement) + input[loc[1]:]
	return output, output != input
}

func parseDelimited(line string, start int, delim byte) (string, int, error) {
	if start >= len(line) {
		return "", 0, errors.New("unexpected end of expression")
	}

	var b strings.Builder
	escaped := false
	for i := start; i < len(line); i++ {
		c := line[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			b.WriteByte(c)
			continue
		}
		if c == delim {
			return b.String(), i + 1, nil
		}
		b.WriteByte(c)
	}
	return "", 0, errors.New("unterminated expression")
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == ' ' || c == '\t'
}
