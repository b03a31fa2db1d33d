package hotkey

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxkey/internal/domain"
	"voxkey/internal/ports"
)

type fakeSource struct {
	events chan ports.KeyEvent
	starts int
	stops  int
}

func newFakeSource() *fakeSource {
	return &fakeSource{}
}

func (f *fakeSource) Start() (<-chan ports.KeyEvent, error) {
	f.starts++
	f.events = make(chan ports.KeyEvent, 64)
	return f.events, nil
}

func (f *fakeSource) Stop() {
	f.stops++
	close(f.events)
}

func (f *fakeSource) press(raw string, at time.Time) {
	f.events <- ports.KeyEvent{Kind: ports.KeyDown, Raw: raw, At: at}
}

func (f *fakeSource) release(raw string, at time.Time) {
	f.events <- ports.KeyEvent{Kind: ports.KeyUp, Raw: raw, At: at}
}

func collectSignal(t *testing.T, ch <-chan domain.Signal) domain.Signal {
	t.Helper()
	select {
	case sig := <-ch:
		return sig
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for signal")
		return 0
	}
}

func TestListenerEndToEndHoldMode(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	l := NewListener(source, testBinding, zerolog.Nop())
	require.NoError(t, l.Start())
	defer l.Stop()

	now := time.Now()
	// Raw platform variants must normalize into the required set.
	source.press("left ctrl", now)
	source.press("right shift", now)
	source.press("Space", now)

	assert.Equal(t, domain.SignalActivate, collectSignal(t, l.Signals()))

	source.release("Space", now.Add(time.Second))
	assert.Equal(t, domain.SignalDeactivate, collectSignal(t, l.Signals()))
}

func TestListenerIgnoresUnclassifiableKeys(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	l := NewListener(source, testBinding, zerolog.Nop())
	require.NoError(t, l.Start())
	defer l.Stop()

	now := time.Now()
	source.press("left ctrl", now)
	source.press("mystery key 42", now)
	source.press("left shift", now)
	source.press("space", now)

	assert.Equal(t, domain.SignalActivate, collectSignal(t, l.Signals()))
}

func TestListenerStartIsIdempotent(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	l := NewListener(source, testBinding, zerolog.Nop())
	require.NoError(t, l.Start())
	require.NoError(t, l.Start())
	assert.Equal(t, 1, source.starts)
	l.Stop()
	l.Stop()
	assert.Equal(t, 1, source.stops)
}

func TestListenerStopClearsMachineState(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	l := NewListener(source, testBinding, zerolog.Nop())
	require.NoError(t, l.Start())

	now := time.Now()
	source.press("ctrl", now)
	source.press("shift", now)
	source.press("space", now)
	collectSignal(t, l.Signals())

	l.Stop()
	require.NoError(t, l.Start())
	defer l.Stop()

	// After restart the pressed set is empty, so a fresh full press
	// fires a clean Activate.
	later := now.Add(time.Minute)
	source.press("ctrl", later)
	source.press("shift", later)
	source.press("space", later)
	assert.Equal(t, domain.SignalActivate, collectSignal(t, l.Signals()))
}

func TestListenerSetBindingRestarts(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	l := NewListener(source, testBinding, zerolog.Nop())
	require.NoError(t, l.Start())
	defer l.Stop()

	require.NoError(t, l.SetBinding(Binding{
		Required: []domain.KeyToken{"alt", "d"},
		Mode:     ModeToggle,
	}))
	assert.True(t, l.Running())

	now := time.Now()
	source.press("alt", now)
	source.press("d", now)
	assert.Equal(t, domain.SignalActivate, collectSignal(t, l.Signals()))
}

func TestDispatchKeepsNewestSignalWhenBufferFull(t *testing.T) {
	t.Parallel()

	l := NewListener(newFakeSource(), testBinding, zerolog.Nop())
	for i := 0; i < signalBuffer; i++ {
		l.dispatch(domain.SignalActivate)
	}
	l.dispatch(domain.SignalDeactivate)

	var last domain.Signal
	drained := 0
drain:
	for {
		select {
		case sig := <-l.Signals():
			last = sig
			drained++
		default:
			break drain
		}
	}

	assert.Equal(t, signalBuffer, drained)
	assert.Equal(t, domain.SignalDeactivate, last,
		"a stop signal survives even when the buffer overflows")
}
