package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralRules(t *testing.T) {
	t.Parallel()

	d, err := Parse("jason => JSON\nget hub => GitHub", 0)
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())

	out, err := d.Apply("push it to get hub as jason")
	require.NoError(t, err)
	assert.Equal(t, "push it to GitHub as JSON", out)
}

func TestLiteralRulesMatchWholeWordsOnly(t *testing.T) {
	t.Parallel()

	d, err := Parse("cat => dog", 0)
	require.NoError(t, err)

	out, err := d.Apply("the catalog lists a cat")
	require.NoError(t, err)
	assert.Equal(t, "the catalog lists a dog", out)
}

func TestRegexRules(t *testing.T) {
	t.Parallel()

	d, err := Parse(`s/colou?r/color/g`, 0)
	require.NoError(t, err)

	out, err := d.Apply("Colour schemes and colour wheels")
	require.NoError(t, err)
	assert.Equal(t, "color schemes and color wheels", out)
}

func TestRegexRuleFirstMatchOnlyWithoutGlobalFlag(t *testing.T) {
	t.Parallel()

	d, err := Parse(`s/foo/bar/`, 0)
	require.NoError(t, err)

	out, err := d.Apply("foo foo")
	require.NoError(t, err)
	assert.Equal(t, "bar foo", out)
}

func TestCommentsAndBlankLinesSkipped(t *testing.T) {
	t.Parallel()

	d, err := Parse("# comment\n\n   \nalpha => beta\n", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
}

func TestUnsupportedLineFails(t *testing.T) {
	t.Parallel()

	_, err := Parse("this line has no arrow", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestIterationLimitStopsOscillation(t *testing.T) {
	t.Parallel()

	// a => b and b => a would loop forever without the limit.
	d, err := Parse("aa => bb\nbb => aa", 3)
	require.NoError(t, err)

	_, err = d.Apply("aa")
	require.NoError(t, err)
}

func TestLoadMissingFileIsIdentity(t *testing.T) {
	t.Parallel()

	d, err := Load(filepath.Join(t.TempDir(), "nope.rules"), 0)
	require.NoError(t, err)

	out, err := d.Apply("unchanged")
	require.NoError(t, err)
	assert.Equal(t, "unchanged", out)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "subs.rules")
	require.NoError(t, os.WriteFile(path, []byte("tele scope => telescope"), 0o644))

	d, err := Load(path, 0)
	require.NoError(t, err)

	out, err := d.Apply("point the tele scope up")
	require.NoError(t, err)
	assert.Equal(t, "point the telescope up", out)
}

func TestEmptyPathIsIdentity(t *testing.T) {
	t.Parallel()

	d, err := Load("", 0)
	require.NoError(t, err)

	out, err := d.Apply("text")
	require.NoError(t, err)
	assert.Equal(t, "text", out)
}
