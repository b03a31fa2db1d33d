package insert

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"voxkey/internal/ports"
)

const (
	// Texts at or below this rune count are typed character by
	// character; longer texts go through the clipboard.
	defaultTypeThreshold = 50

	defaultCharDelay = 10 * time.Millisecond

	clipboardSettle = 80 * time.Millisecond
	pasteSettle     = 120 * time.Millisecond
)

// Inserter places text at the cursor of the focused application.
type Inserter struct {
	kb        ports.Keyboard
	clip      ports.ClipboardStore
	threshold int
	charDelay time.Duration
	sleep     func(time.Duration)
	log       zerolog.Logger
}

// Option adjusts inserter behavior.
type Option func(*Inserter)

// WithTypeThreshold overrides the typing/paste cutover length.
func WithTypeThreshold(runes int) Option {
	return func(i *Inserter) { i.threshold = runes }
}

// WithCharDelay overrides the per-character typing delay.
func WithCharDelay(d time.Duration) Option {
	return func(i *Inserter) { i.charDelay = d }
}

func withSleep(fn func(time.Duration)) Option {
	return func(i *Inserter) { i.sleep = fn }
}

// New creates an inserter over the given keyboard and clipboard.
func New(kb ports.Keyboard, clip ports.ClipboardStore, log zerolog.Logger, opts ...Option) *Inserter {
	ins := &Inserter{
		kb:        kb,
		clip:      clip,
		threshold: defaultTypeThreshold,
		charDelay: defaultCharDelay,
		sleep:     time.Sleep,
		log:       log,
	}
	for _, opt := range opts {
		opt(ins)
	}
	return ins
}

// Insert types short texts and pastes long ones. When a character
// cannot be synthesized mid-text, only the untyped remainder goes
// through the clipboard, so the target receives the text exactly once.
func (i *Inserter) Insert(text string) error {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= i.threshold {
		typed, err := i.typeText(runes)
		if err == nil {
			return nil
		}
		i.log.Debug().Err(err).Int("typed", typed).Msg("typing failed, pasting the remainder")
		return i.paste(string(runes[typed:]))
	}
	return i.paste(text)
}

// typeText returns how many runes were delivered before any failure.
func (i *Inserter) typeText(runes []rune) (int, error) {
	for idx, r := range runes {
		if err := i.kb.TypeChar(r); err != nil {
			return idx, err
		}
		i.sleep(i.charDelay)
	}
	return len(runes), nil
}

// paste stores the text on the clipboard, sends the paste chord, and
// restores the previous clipboard contents. Restoration is skipped only
// when the original contents could not be captured.
func (i *Inserter) paste(text string) error {
	original, captureErr := i.clip.Get()
	if captureErr != nil {
		i.log.Warn().Err(captureErr).Msg("could not capture clipboard, prior contents will not be restored")
	} else {
		defer func() {
			if err := i.clip.Set(original); err != nil {
				i.log.Warn().Err(err).Msg("could not restore clipboard")
			}
		}()
	}

	if err := i.clip.Set(text); err != nil {
		return fmt.Errorf("insert: stage clipboard: %w", err)
	}
	i.sleep(clipboardSettle)

	if err := i.kb.PasteShortcut(); err != nil {
		return fmt.Errorf("insert: paste: %w", err)
	}
	i.sleep(pasteSettle)
	return nil
}
