package commands

import (
	"fmt"

	"voxkey/internal/domain"
	"voxkey/internal/ports"
)

// Executor carries out commands using keyboard primitives. "Delete
// that" is realized as the application's undo shortcut, which reverts
// the previous synthetic insertion in any undo-capable target.
type Executor struct {
	kb ports.Keyboard
}

// NewExecutor creates an executor over the given keyboard.
func NewExecutor(kb ports.Keyboard) *Executor {
	return &Executor{kb: kb}
}

// Execute performs the command.
func (e *Executor) Execute(cmd domain.CommandID) error {
	switch cmd {
	case domain.CommandNewLine, domain.CommandPressEnter:
		return e.kb.PressKey("enter")
	case domain.CommandNewParagraph:
		if err := e.kb.PressKey("enter"); err != nil {
			return err
		}
		return e.kb.PressKey("enter")
	case domain.CommandPressTab:
		return e.kb.PressKey("tab")
	case domain.CommandDeleteThat:
		return e.kb.UndoShortcut()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
