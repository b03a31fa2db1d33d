package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxkey/internal/domain"
)

type sinkRecorder struct {
	codes []domain.ErrorCode
}

func (s *sinkRecorder) SessionStateChanged(domain.SessionState, domain.SessionStateReason) {}

func (s *sinkRecorder) DictationFinished(domain.DictationResult) {}

func (s *sinkRecorder) SessionError(code domain.ErrorCode, _ string) {
	s.codes = append(s.codes, code)
}

func TestLoadDictionaryDegradesOnMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dictionary.txt")
	require.NoError(t, os.WriteFile(path, []byte("this line is not a rule\n"), 0o644))

	sink := &sinkRecorder{}
	dict := loadDictionary(path, sink, zerolog.Nop())
	require.NotNil(t, dict)

	out, err := dict.Apply("hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", out, "broken rules file leaves text untouched")
	assert.Contains(t, sink.codes, domain.ErrorCodeDictionary)
}

func TestLoadDictionaryAppliesValidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dictionary.txt")
	require.NoError(t, os.WriteFile(path, []byte("teh => the\n"), 0o644))

	sink := &sinkRecorder{}
	dict := loadDictionary(path, sink, zerolog.Nop())

	out, err := dict.Apply("teh plan")
	require.NoError(t, err)
	assert.Equal(t, "the plan", out)
	assert.Empty(t, sink.codes)
}
