// Package hotkey implements the global hotkey state machine and the
// listener that feeds it from the system keyboard hook.
package hotkey

import (
	"time"

	"voxkey/internal/domain"
)

// Mode selects how the combination maps to activate/deactivate signals.
type Mode string

const (
	// ModeHold activates while the combination is held.
	ModeHold Mode = "hold"
	// ModeToggle alternates on each press edge.
	ModeToggle Mode = "toggle"
	// ModeDoubleTapHold behaves like hold, but a double tap within the
	// tap window latches recording until the next tap.
	ModeDoubleTapHold Mode = "double_tap_hold"
)

// doubleTapWindow is the maximum gap between taps that counts as a
// double tap in ModeDoubleTapHold.
const doubleTapWindow = 400 * time.Millisecond

// Binding is an immutable configuration snapshot for the machine. An
// in-flight gesture always runs against the binding captured at press
// time; reconfiguration swaps in a fresh machine.
type Binding struct {
	Required []domain.KeyToken
	Mode     Mode
}

// Machine tracks currently-held keys and detects edges of the
// configured combination. It is not safe for concurrent use; the
// listener serializes access.
type Machine struct {
	binding Binding

	pressed map[domain.KeyToken]struct{}
	active  bool

	// toggle substate
	toggled bool

	// double-tap substate
	lastTap    time.Time
	continuous bool
	stopTap    bool
}

// NewMachine creates a machine for the given binding.
func NewMachine(b Binding) *Machine {
	return &Machine{
		binding: b,
		pressed: make(map[domain.KeyToken]struct{}),
	}
}

// KeyDown records a press and returns any signals produced by it. The
// combination fires on the edge into the fully-held state only; holding
// keys down never re-fires.
func (m *Machine) KeyDown(tok domain.KeyToken, at time.Time) []domain.Signal {
	m.pressed[tok] = struct{}{}

	if m.active || !m.comboHeld() {
		return nil
	}
	m.active = true

	switch m.binding.Mode {
	case ModeToggle:
		m.toggled = !m.toggled
		if m.toggled {
			return []domain.Signal{domain.SignalActivate}
		}
		return []domain.Signal{domain.SignalDeactivate}

	case ModeDoubleTapHold:
		if m.continuous {
			// Tap-to-stop ends the latched recording; the release of
			// this tap must stay quiet.
			m.continuous = false
			m.stopTap = true
			m.lastTap = at
			return []domain.Signal{domain.SignalDeactivate}
		}
		if !m.lastTap.IsZero() && at.Sub(m.lastTap) < doubleTapWindow {
			m.continuous = true
		}
		m.lastTap = at
		return []domain.Signal{domain.SignalActivate}

	default: // ModeHold
		return []domain.Signal{domain.SignalActivate}
	}
}

// KeyUp records a release and returns any signals produced by it.
func (m *Machine) KeyUp(tok domain.KeyToken, at time.Time) []domain.Signal {
	delete(m.pressed, tok)

	var signals []domain.Signal
	if m.active && !m.comboHeld() {
		switch m.binding.Mode {
		case ModeHold:
			m.active = false
			signals = append(signals, domain.SignalDeactivate)
		case ModeDoubleTapHold:
			// Continuous mode is exited solely by the next tap, never
			// by release; the stop tap itself already deactivated.
			switch {
			case m.stopTap:
				m.stopTap = false
				m.active = false
			case !m.continuous:
				m.active = false
				signals = append(signals, domain.SignalDeactivate)
			}
		case ModeToggle:
			// Release never triggers a transition in toggle mode.
		}
	}

	// Recovery invariant: with no keys physically down there is nothing
	// to hold the edge guard, even if a release event was swallowed.
	if len(m.pressed) == 0 {
		m.active = false
	}

	return signals
}

// Pressed reports whether tok is currently held.
func (m *Machine) Pressed(tok domain.KeyToken) bool {
	_, ok := m.pressed[tok]
	return ok
}

// Reset clears all transient state so a fresh start begins from a clean
// slate.
func (m *Machine) Reset() {
	m.pressed = make(map[domain.KeyToken]struct{})
	m.active = false
	m.toggled = false
	m.continuous = false
	m.stopTap = false
	m.lastTap = time.Time{}
}

func (m *Machine) comboHeld() bool {
	if len(m.binding.Required) == 0 {
		return false
	}
	for _, tok := range m.binding.Required {
		if _, held := m.pressed[tok]; !held {
			return false
		}
	}
	return true
}
