package snippets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandReplacesShorthands(t *testing.T) {
	t.Parallel()

	e := New(map[string]string{
		"my email": "jane@example.com",
		"sig":      "Best regards,\nJane",
	})

	out := e.Expand("send it to my email and add sig")
	assert.Equal(t, "send it to jane@example.com and add Best regards,\nJane", out)
}

func TestExpandIsCaseInsensitiveAndWholeWord(t *testing.T) {
	t.Parallel()

	e := New(map[string]string{"brb": "be right back"})

	assert.Equal(t, "be right back soon", e.Expand("BRB soon"))
	// "brbx" is not the shorthand.
	assert.Equal(t, "brbx soon", e.Expand("brbx soon"))
}

func TestLongerShorthandWins(t *testing.T) {
	t.Parallel()

	e := New(map[string]string{
		"my email":      "personal@example.com",
		"my work email": "work@example.com",
	})

	assert.Equal(t, "work@example.com", e.Expand("my work email"))
}

func TestExpandNoSnippetsIsIdentity(t *testing.T) {
	t.Parallel()

	e := New(nil)
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, "unchanged text", e.Expand("unchanged text"))
}
