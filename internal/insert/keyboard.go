// Package insert places finished text at the system cursor, either by
// synthesizing keystrokes or by routing through the clipboard.
package insert

import (
	"fmt"
	"runtime"
	"sync"
	"unicode"

	"github.com/micmonay/keybd_event"
)

// vkKeys maps lowercase characters to virtual key codes.
var vkKeys = map[rune]int{
	'a': keybd_event.VK_A, 'b': keybd_event.VK_B, 'c': keybd_event.VK_C,
	'd': keybd_event.VK_D, 'e': keybd_event.VK_E, 'f': keybd_event.VK_F,
	'g': keybd_event.VK_G, 'h': keybd_event.VK_H, 'i': keybd_event.VK_I,
	'j': keybd_event.VK_J, 'k': keybd_event.VK_K, 'l': keybd_event.VK_L,
	'm': keybd_event.VK_M, 'n': keybd_event.VK_N, 'o': keybd_event.VK_O,
	'p': keybd_event.VK_P, 'q': keybd_event.VK_Q, 'r': keybd_event.VK_R,
	's': keybd_event.VK_S, 't': keybd_event.VK_T, 'u': keybd_event.VK_U,
	'v': keybd_event.VK_V, 'w': keybd_event.VK_W, 'x': keybd_event.VK_X,
	'y': keybd_event.VK_Y, 'z': keybd_event.VK_Z,
	'0': keybd_event.VK_0, '1': keybd_event.VK_1, '2': keybd_event.VK_2,
	'3': keybd_event.VK_3, '4': keybd_event.VK_4, '5': keybd_event.VK_5,
	'6': keybd_event.VK_6, '7': keybd_event.VK_7, '8': keybd_event.VK_8,
	'9':  keybd_event.VK_9,
	' ':  keybd_event.VK_SPACE,
	'.':  keybd_event.VK_DOT,
	',':  keybd_event.VK_COMMA,
	';':  keybd_event.VK_SEMICOLON,
	'\'': keybd_event.VK_APOSTROPHE,
	'/':  keybd_event.VK_SLASH,
	'-':  keybd_event.VK_MINUS,
	'=':  keybd_event.VK_EQUAL,
	'\n': keybd_event.VK_ENTER,
	'\t': keybd_event.VK_TAB,
}

// vkShifted maps characters that need shift held.
var vkShifted = map[rune]int{
	'!': keybd_event.VK_1,
	'@': keybd_event.VK_2,
	'#': keybd_event.VK_3,
	'$': keybd_event.VK_4,
	'%': keybd_event.VK_5,
	'^': keybd_event.VK_6,
	'&': keybd_event.VK_7,
	'*': keybd_event.VK_8,
	'(': keybd_event.VK_9,
	')': keybd_event.VK_0,
	'?': keybd_event.VK_SLASH,
	':': keybd_event.VK_SEMICOLON,
	'"': keybd_event.VK_APOSTROPHE,
	'_': keybd_event.VK_MINUS,
	'+': keybd_event.VK_EQUAL,
}

var namedPressKeys = map[string]int{
	"enter": keybd_event.VK_ENTER,
	"tab":   keybd_event.VK_TAB,
	"space": keybd_event.VK_SPACE,
}

// SystemKeyboard synthesizes OS-level key events.
type SystemKeyboard struct {
	mu sync.Mutex
	kb keybd_event.KeyBonding
}

// NewSystemKeyboard binds to the platform key injection facility.
func NewSystemKeyboard() (*SystemKeyboard, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("keyboard: %w", err)
	}
	return &SystemKeyboard{kb: kb}, nil
}

func (k *SystemKeyboard) launch(vk int, shift, modifier bool) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.kb.SetKeys(vk)
	k.kb.HasSHIFT(shift)
	if modifier {
		if runtime.GOOS == "darwin" {
			k.kb.HasSuper(true)
		} else {
			k.kb.HasCTRL(true)
		}
	}
	err := k.kb.Launching()
	k.kb.HasSHIFT(false)
	k.kb.HasSuper(false)
	k.kb.HasCTRL(false)
	return err
}

// TypeChar synthesizes a single character. Characters outside the key
// map report an error so callers can switch to clipboard insertion.
func (k *SystemKeyboard) TypeChar(r rune) error {
	if vk, ok := vkShifted[r]; ok {
		return k.launch(vk, true, false)
	}
	lower := unicode.ToLower(r)
	vk, ok := vkKeys[lower]
	if !ok {
		return fmt.Errorf("keyboard: no key mapping for %q", r)
	}
	return k.launch(vk, unicode.IsUpper(r), false)
}

// PressKey presses a named key such as enter or tab.
func (k *SystemKeyboard) PressKey(name string) error {
	vk, ok := namedPressKeys[name]
	if !ok {
		return fmt.Errorf("keyboard: unknown key %q", name)
	}
	return k.launch(vk, false, false)
}

// PasteShortcut sends the platform paste chord.
func (k *SystemKeyboard) PasteShortcut() error {
	return k.launch(keybd_event.VK_V, false, true)
}

// UndoShortcut sends the platform undo chord.
func (k *SystemKeyboard) UndoShortcut() error {
	return k.launch(keybd_event.VK_Z, false, true)
}
