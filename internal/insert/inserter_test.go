package insert

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeyboard struct {
	typed      []rune
	typeErr    error
	failOn     rune
	pasted     int
	pasteErr   error
	pressed    []string
	undoCalled int
}

func (f *fakeKeyboard) TypeChar(r rune) error {
	if f.typeErr != nil {
		return f.typeErr
	}
	if f.failOn != 0 && r == f.failOn {
		return errors.New("no mapping for rune")
	}
	f.typed = append(f.typed, r)
	return nil
}

func (f *fakeKeyboard) PressKey(name string) error {
	f.pressed = append(f.pressed, name)
	return nil
}

func (f *fakeKeyboard) PasteShortcut() error {
	if f.pasteErr != nil {
		return f.pasteErr
	}
	f.pasted++
	return nil
}

func (f *fakeKeyboard) UndoShortcut() error {
	f.undoCalled++
	return nil
}

type fakeClipboard struct {
	contents string
	getErr   error
	setErr   error
	history  []string
}

func (f *fakeClipboard) Get() (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.contents, nil
}

func (f *fakeClipboard) Set(text string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.contents = text
	f.history = append(f.history, text)
	return nil
}

func newTestInserter(kb *fakeKeyboard, clip *fakeClipboard) *Inserter {
	return New(kb, clip, zerolog.Nop(), withSleep(func(time.Duration) {}))
}

func TestInsertTypesShortText(t *testing.T) {
	t.Parallel()

	kb := &fakeKeyboard{}
	clip := &fakeClipboard{contents: "before"}
	ins := newTestInserter(kb, clip)

	require.NoError(t, ins.Insert("Hello there."))

	assert.Equal(t, "Hello there.", string(kb.typed))
	assert.Zero(t, kb.pasted)
	assert.Empty(t, clip.history, "clipboard untouched on typing path")
}

func TestInsertPastesLongText(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 51)
	kb := &fakeKeyboard{}
	clip := &fakeClipboard{contents: "before"}
	ins := newTestInserter(kb, clip)

	require.NoError(t, ins.Insert(long))

	assert.Empty(t, kb.typed)
	assert.Equal(t, 1, kb.pasted)
	require.Len(t, clip.history, 2)
	assert.Equal(t, long, clip.history[0])
	assert.Equal(t, "before", clip.history[1], "original contents restored")
	assert.Equal(t, "before", clip.contents)
}

func TestInsertThresholdCountsRunes(t *testing.T) {
	t.Parallel()

	// 50 multi-byte runes should still take the typing path.
	text := strings.Repeat("é", 50)
	kb := &fakeKeyboard{}
	clip := &fakeClipboard{}
	ins := newTestInserter(kb, clip)

	require.NoError(t, ins.Insert(text))
	assert.Len(t, kb.typed, 50)
	assert.Zero(t, kb.pasted)
}

func TestInsertFallsBackToPasteWhenTypingFails(t *testing.T) {
	t.Parallel()

	kb := &fakeKeyboard{typeErr: errors.New("no mapping")}
	clip := &fakeClipboard{contents: "before"}
	ins := newTestInserter(kb, clip)

	require.NoError(t, ins.Insert("short text"))

	assert.Equal(t, 1, kb.pasted)
	assert.Equal(t, "before", clip.contents)
	require.NotEmpty(t, clip.history)
	assert.Equal(t, "short text", clip.history[0], "nothing typed, whole text pasted")
}

func TestInsertMidTextFailurePastesOnlyRemainder(t *testing.T) {
	t.Parallel()

	kb := &fakeKeyboard{failOn: 'x'}
	clip := &fakeClipboard{contents: "before"}
	ins := newTestInserter(kb, clip)

	require.NoError(t, ins.Insert("hello x world"))

	assert.Equal(t, "hello ", string(kb.typed))
	assert.Equal(t, 1, kb.pasted)
	require.Len(t, clip.history, 2)
	assert.Equal(t, "x world", clip.history[0], "only the untyped tail is staged")
	assert.Equal(t, "before", clip.history[1], "original contents restored")
	assert.Equal(t, "hello x world", string(kb.typed)+clip.history[0],
		"target receives the text exactly once")
}

func TestInsertRestoresClipboardEvenWhenPasteFails(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("b", 80)
	kb := &fakeKeyboard{pasteErr: errors.New("chord rejected")}
	clip := &fakeClipboard{contents: "keep me"}
	ins := newTestInserter(kb, clip)

	err := ins.Insert(long)
	require.Error(t, err)
	assert.Equal(t, "keep me", clip.contents)
}

func TestInsertSkipsRestoreWhenCaptureFails(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("c", 80)
	kb := &fakeKeyboard{}
	clip := &fakeClipboard{getErr: errors.New("clipboard busy")}
	ins := newTestInserter(kb, clip)

	require.NoError(t, ins.Insert(long))
	assert.Equal(t, long, clip.contents, "staged text left in place when capture failed")
}

func TestInsertEmptyTextIsNoOp(t *testing.T) {
	t.Parallel()

	kb := &fakeKeyboard{}
	clip := &fakeClipboard{}
	ins := newTestInserter(kb, clip)

	require.NoError(t, ins.Insert(""))
	assert.Empty(t, kb.typed)
	assert.Zero(t, kb.pasted)
}

func TestInsertCustomThreshold(t *testing.T) {
	t.Parallel()

	kb := &fakeKeyboard{}
	clip := &fakeClipboard{contents: "x"}
	ins := New(kb, clip, zerolog.Nop(), WithTypeThreshold(3), withSleep(func(time.Duration) {}))

	require.NoError(t, ins.Insert("abcd"))
	assert.Equal(t, 1, kb.pasted)
	assert.Empty(t, kb.typed)
}
