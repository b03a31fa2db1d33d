package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxkey/internal/domain"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want domain.KeyToken
		ok   bool
	}{
		{"left ctrl", "ctrl", true},
		{"right ctrl", "ctrl", true},
		{"Control", "ctrl", true},
		{"left shift", "shift", true},
		{"right shift", "shift", true},
		{"left cmd", "cmd", true},
		{"command", "cmd", true},
		{"super", "cmd", true},
		{"option", "alt", true},
		{"right alt", "alt", true},
		{"Space", "space", true},
		{"return", "enter", true},
		{"enter", "enter", true},
		{"tab", "tab", true},
		{"escape", "esc", true},
		{"A", "a", true},
		{"z", "z", true},
		{"7", "7", true},
		{"F1", "f1", true},
		{"f12", "f12", true},
		{"f24", "f24", true},
		{"", "", false},
		{"   ", "", false},
		{"unknown gibberish", "", false},
		{"fx", "", false},
		{"f123", "", false},
	}

	for _, tc := range cases {
		tok, ok := Normalize(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		if tc.ok {
			assert.Equal(t, tc.want, tok, "raw=%q", tc.raw)
		}
	}
}

func TestNormalizeModifierFamiliesCollapse(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"ctrl", "left ctrl", "right ctrl", "control"} {
		tok, ok := Normalize(raw)
		assert.True(t, ok)
		assert.Equal(t, domain.KeyToken("ctrl"), tok)
	}
}
