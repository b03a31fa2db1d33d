package ports

import (
	"context"
	"time"

	"voxkey/internal/domain"
)

// AudioCapture records microphone input between Start and Stop.
// Stop drains everything captured before the stop signal and returns
// WAV-encoded bytes; empty bytes mean nothing was captured. A capture
// must be re-startable after Stop.
type AudioCapture interface {
	Start() error
	Stop() (wav []byte, duration time.Duration, err error)
}

// Transcriber converts captured audio to text. An empty string means
// no speech was detected. May block for model-load plus inference time.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

// EditRequest carries per-call editing options.
type EditRequest struct {
	Preset       string
	CustomPrompt string
}

// TextEditor rewrites transcribed text. Implementations backed by a
// remote model return errors; callers compose them with a deterministic
// fallback so edited text is always produced.
type TextEditor interface {
	Edit(ctx context.Context, text string, req EditRequest) (string, error)
}

// Dictionary applies user-maintained token and phrase substitutions.
type Dictionary interface {
	Apply(text string) (string, error)
}

// VoiceCommandDetector matches the leading or trailing portion of text
// against the command vocabulary. remaining is the text with the
// matched span removed; ok is false when nothing matched.
type VoiceCommandDetector interface {
	Detect(text string) (cmd domain.CommandID, remaining string, ok bool)
}

// CommandExecutor carries out a detected voice command.
type CommandExecutor interface {
	Execute(cmd domain.CommandID) error
}

// SnippetExpander expands shorthand tokens to their configured full text.
type SnippetExpander interface {
	Expand(text string) string
}

// Inserter delivers final text to the system input stream.
type Inserter interface {
	Insert(text string) error
}

// Keyboard is the raw synthetic-input primitive set used by the
// insertion stage and the command executor.
type Keyboard interface {
	TypeChar(r rune) error
	PressKey(name string) error
	PasteShortcut() error
	UndoShortcut() error
}

// ClipboardStore reads and writes the system clipboard.
type ClipboardStore interface {
	Get() (string, error)
	Set(text string) error
}

// TranscriptionLog is the append-only dictation history.
type TranscriptionLog interface {
	Append(ctx context.Context, entry domain.LogEntry) error
}

// EventSink receives backend state changes and errors. Implementations
// must be safe for concurrent use and must not block.
type EventSink interface {
	SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason)
	DictationFinished(result domain.DictationResult)
	SessionError(code domain.ErrorCode, detail string)
}

// KeyEventKind distinguishes press and release events from the source.
type KeyEventKind int

const (
	KeyDown KeyEventKind = iota + 1
	KeyUp
)

// KeyEvent is one raw keyboard event before normalization.
type KeyEvent struct {
	Kind KeyEventKind
	Raw  string
	At   time.Time
}

// KeySource delivers global keyboard events. Start is idempotent for a
// stopped source; Stop releases the underlying hook.
type KeySource interface {
	Start() (<-chan KeyEvent, error)
	Stop()
}
