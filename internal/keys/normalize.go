// Package keys maps raw platform key names to the canonical token
// vocabulary used by the hotkey state machine.
package keys

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"voxkey/internal/domain"
)

// modifier families: every left/right/platform variant collapses to one token.
var modifierAliases = map[string]domain.KeyToken{
	"cmd":           "cmd",
	"left cmd":      "cmd",
	"right cmd":     "cmd",
	"command":       "cmd",
	"left command":  "cmd",
	"right command": "cmd",
	"meta":          "cmd",
	"super":         "cmd",
	"win":           "cmd",
	"ctrl":          "ctrl",
	"left ctrl":     "ctrl",
	"right ctrl":    "ctrl",
	"control":       "ctrl",
	"left control":  "ctrl",
	"right control": "ctrl",
	"shift":         "shift",
	"left shift":    "shift",
	"right shift":   "shift",
	"alt":           "alt",
	"left alt":      "alt",
	"right alt":     "alt",
	"option":        "alt",
	"left option":   "alt",
	"right option":  "alt",
}

var namedKeys = map[string]domain.KeyToken{
	"space":     "space",
	"spacebar":  "space",
	"enter":     "enter",
	"return":    "enter",
	"tab":       "tab",
	"escape":    "esc",
	"esc":       "esc",
	"backspace": "backspace",
	"delete":    "delete",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"home":      "home",
	"end":       "end",
	"page up":   "pageup",
	"pageup":    "pageup",
	"page down": "pagedown",
	"pagedown":  "pagedown",
	"caps lock": "capslock",
	"capslock":  "capslock",
}

// Normalize maps a raw key name to its canonical token. ok is false for
// keys that cannot be classified; callers must ignore those events and
// leave the pressed-key set untouched.
func Normalize(raw string) (domain.KeyToken, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", false
	}

	if tok, found := modifierAliases[name]; found {
		return tok, true
	}
	if tok, found := namedKeys[name]; found {
		return tok, true
	}

	// Function keys f1..f24.
	if len(name) >= 2 && name[0] == 'f' {
		digits := name[1:]
		if isDigits(digits) && len(digits) <= 2 {
			return domain.KeyToken(name), true
		}
	}

	// Single printable character.
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return domain.KeyToken(string(unicode.ToLower(r))), true
		}
	}

	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
