package insert

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard reads and writes the OS clipboard.
type SystemClipboard struct{}

// NewSystemClipboard creates the clipboard adapter.
func NewSystemClipboard() *SystemClipboard { return &SystemClipboard{} }

func (SystemClipboard) Get() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard: read: %w", err)
	}
	return text, nil
}

func (SystemClipboard) Set(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: write: %w", err)
	}
	return nil
}
