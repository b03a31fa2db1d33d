package hotkey

import (
	"errors"
	"sync"
	"time"

	hook "github.com/robotn/gohook"

	"voxkey/internal/ports"
)

var errAlreadyStarted = errors.New("key source already started")

// HookSource adapts the gohook global keyboard hook to ports.KeySource.
type HookSource struct {
	mu      sync.Mutex
	running bool
	quit    chan struct{}
}

// NewHookSource creates a stopped hook source.
func NewHookSource() *HookSource {
	return &HookSource{}
}

// Start installs the global hook and returns the event channel. The
// channel is closed when the source stops.
func (s *HookSource) Start() (<-chan ports.KeyEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, errAlreadyStarted
	}

	raw := hook.Start()
	out := make(chan ports.KeyEvent, 256)
	quit := make(chan struct{})
	s.quit = quit
	s.running = true

	go func() {
		defer close(out)
		for {
			select {
			case <-quit:
				return
			case ev, ok := <-raw:
				if !ok {
					return
				}
				ke, keep := translate(ev)
				if !keep {
					continue
				}
				select {
				case out <- ke:
				case <-quit:
					return
				}
			}
		}
	}()

	return out, nil
}

// Stop uninstalls the hook.
func (s *HookSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.quit)
	hook.End()
	s.running = false
}

func translate(ev hook.Event) (ports.KeyEvent, bool) {
	var kind ports.KeyEventKind
	switch ev.Kind {
	case hook.KeyDown:
		kind = ports.KeyDown
	case hook.KeyUp:
		kind = ports.KeyUp
	default:
		// KeyHold repeats and mouse events never reach the machine; the
		// edge guard would ignore repeats anyway.
		return ports.KeyEvent{}, false
	}

	return ports.KeyEvent{
		Kind: kind,
		Raw:  hook.RawcodetoKeychar(ev.Rawcode),
		At:   time.Now(),
	}, true
}
