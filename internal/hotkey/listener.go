package hotkey

import (
	"sync"

	"github.com/rs/zerolog"

	"voxkey/internal/domain"
	"voxkey/internal/keys"
	"voxkey/internal/ports"
)

// signalBuffer bounds the listener-to-controller channel. The controller
// drains signals even while processing, so the buffer only absorbs
// short bursts.
const signalBuffer = 64

// Listener owns the key-event classification loop: it consumes raw
// events from a KeySource, normalizes them, runs the state machine, and
// forwards signals to the session controller without blocking the
// event thread on downstream work.
type Listener struct {
	source ports.KeySource
	log    zerolog.Logger

	mu      sync.Mutex
	machine *Machine
	running bool
	done    chan struct{}

	signals chan domain.Signal
}

// NewListener creates a stopped listener for the given binding.
func NewListener(source ports.KeySource, binding Binding, log zerolog.Logger) *Listener {
	return &Listener{
		source:  source,
		log:     log.With().Str("component", "hotkey").Logger(),
		machine: NewMachine(binding),
		signals: make(chan domain.Signal, signalBuffer),
	}
}

// Signals is the channel the session controller consumes. Signals from
// one transition are delivered in program order.
func (l *Listener) Signals() <-chan domain.Signal {
	return l.signals
}

// Start begins listening. Starting an already-started listener is a
// no-op.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.startLocked()
}

// Stop stops listening and clears all transient machine state. Stopping
// a stopped listener is a no-op.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

// SetBinding swaps the hotkey configuration. The listener restarts
// atomically from the caller's perspective: no event is classified
// against a half-updated binding.
func (l *Listener) SetBinding(binding Binding) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	wasRunning := l.running
	l.stopLocked()
	l.machine = NewMachine(binding)
	if wasRunning {
		return l.startLocked()
	}
	return nil
}

// Running reports whether the listener is consuming events.
func (l *Listener) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Listener) startLocked() error {
	if l.running {
		return nil
	}

	events, err := l.source.Start()
	if err != nil {
		return err
	}

	l.done = make(chan struct{})
	l.running = true
	// The machine is handed to the loop goroutine and touched by no one
	// else until the loop has exited.
	go l.loop(events, l.machine, l.done)

	l.log.Info().Msg("hotkey listener started")
	return nil
}

func (l *Listener) stopLocked() {
	if !l.running {
		return
	}

	l.source.Stop()
	<-l.done
	l.machine.Reset()
	l.running = false

	l.log.Info().Msg("hotkey listener stopped")
}

func (l *Listener) loop(events <-chan ports.KeyEvent, machine *Machine, done chan struct{}) {
	defer close(done)

	for ev := range events {
		tok, ok := keys.Normalize(ev.Raw)
		if !ok {
			continue
		}

		var signals []domain.Signal
		switch ev.Kind {
		case ports.KeyDown:
			signals = machine.KeyDown(tok, ev.At)
		case ports.KeyUp:
			signals = machine.KeyUp(tok, ev.At)
		}

		for _, sig := range signals {
			l.dispatch(sig)
		}
	}
}

// dispatch forwards a signal without blocking classification. When the
// buffer is full the oldest queued signal is discarded, never the
// incoming one: the newest signal carries the current gesture state,
// and losing a Deactivate would strand an active recording.
func (l *Listener) dispatch(sig domain.Signal) {
	select {
	case l.signals <- sig:
		l.log.Debug().Stringer("signal", sig).Msg("hotkey signal dispatched")
		return
	default:
	}

	select {
	case old := <-l.signals:
		l.log.Warn().Stringer("dropped", old).Msg("signal buffer full, discarding oldest")
	default:
	}
	select {
	case l.signals <- sig:
	default:
		l.log.Warn().Stringer("signal", sig).Msg("signal buffer full, dropping")
	}
}
