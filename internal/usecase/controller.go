// Package usecase orchestrates the dictation session lifecycle and the
// transcript processing pipeline.
package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"voxkey/internal/domain"
	"voxkey/internal/ports"
)

// Controller is the single-goroutine session actor. It consumes
// activation signals and internal pipeline-completion messages from one
// loop, so state transitions never race. Exactly one dictation is in
// flight at a time: Activate is ignored unless Idle, Deactivate is
// ignored unless Recording, and a running pipeline is never cancelled.
type Controller struct {
	capture     ports.AudioCapture
	transcriber ports.Transcriber
	pipeline    *Pipeline
	events      ports.EventSink
	log         zerolog.Logger

	signals <-chan domain.Signal
	// completions is buffered so the processing goroutine can finish
	// even while the loop is busy with a signal.
	completions chan domain.DictationResult

	mu      sync.Mutex
	state   domain.SessionState
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewController creates the session actor reading from signals.
func NewController(
	capture ports.AudioCapture,
	transcriber ports.Transcriber,
	pipeline *Pipeline,
	events ports.EventSink,
	signals <-chan domain.Signal,
	log zerolog.Logger,
) *Controller {
	return &Controller{
		capture:     capture,
		transcriber: transcriber,
		pipeline:    pipeline,
		events:      events,
		signals:     signals,
		completions: make(chan domain.DictationResult, 1),
		state:       domain.SessionStateIdle,
		log:         log,
	}
}

// Start launches the actor loop.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return errors.New("session controller already running")
	}
	c.running = true
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.loop(ctx, c.stop, c.done)
	return nil
}

// Stop shuts the actor down. A recording in progress is discarded; a
// pipeline in progress runs to completion in the background.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	stop, done := c.stop, c.done
	c.mu.Unlock()

	close(stop)
	<-done
}

// Status reports a snapshot of the current session state.
func (c *Controller) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Status{
		State:  c.state,
		Active: c.state != domain.SessionStateIdle,
	}
}

func (c *Controller) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			c.shutdown()
			return
		case <-ctx.Done():
			c.shutdown()
			return
		case sig, ok := <-c.signals:
			if !ok {
				c.shutdown()
				return
			}
			c.handleSignal(ctx, sig)
		case result := <-c.completions:
			c.finish(result)
		}
	}
}

// shutdown discards any recording still open when the loop exits.
func (c *Controller) shutdown() {
	if c.currentState() == domain.SessionStateRecording {
		_, _, err := c.capture.Stop()
		if err != nil {
			c.log.Debug().Err(err).Msg("discarding capture on shutdown")
		}
	}
	c.setState(domain.SessionStateIdle, domain.SessionReasonReady)
}

func (c *Controller) handleSignal(ctx context.Context, sig domain.Signal) {
	switch sig {
	case domain.SignalActivate:
		c.handleActivate()
	case domain.SignalDeactivate:
		c.handleDeactivate(ctx)
	}
}

func (c *Controller) handleActivate() {
	if state := c.currentState(); state != domain.SessionStateIdle {
		c.log.Debug().Str("state", string(state)).Msg("activate ignored, session busy")
		return
	}

	if err := c.capture.Start(); err != nil {
		c.log.Error().Err(err).Msg("audio capture failed to start")
		c.events.SessionError(domain.ErrorCodeCapture, err.Error())
		return
	}
	c.setState(domain.SessionStateRecording, domain.SessionReasonRecordingStarted)
}

func (c *Controller) handleDeactivate(ctx context.Context) {
	if state := c.currentState(); state != domain.SessionStateRecording {
		c.log.Debug().Str("state", string(state)).Msg("deactivate ignored, not recording")
		return
	}

	// Stop is synchronous and drains everything captured before the
	// stop signal.
	wavData, duration, err := c.capture.Stop()
	if err != nil {
		c.log.Error().Err(err).Msg("audio capture failed to stop")
		c.events.SessionError(domain.ErrorCodeCapture, err.Error())
		c.setState(domain.SessionStateIdle, domain.SessionReasonCaptureFailed)
		return
	}
	if len(wavData) == 0 {
		c.log.Debug().Msg("no audio captured")
		c.setState(domain.SessionStateIdle, domain.SessionReasonNoAudio)
		return
	}

	c.setState(domain.SessionStateProcessing, domain.SessionReasonTranscribing)

	sessionID := uuid.NewString()
	go func() {
		c.completions <- c.process(ctx, sessionID, wavData, duration)
	}()
}

// process runs off the actor loop: transcription and the edit stage may
// block for seconds.
func (c *Controller) process(ctx context.Context, sessionID string, wavData []byte, duration time.Duration) domain.DictationResult {
	text, err := c.transcriber.Transcribe(ctx, wavData)
	if err != nil {
		// Transcription failures surface as an empty transcript.
		c.log.Error().Err(err).Msg("transcription failed")
		c.events.SessionError(domain.ErrorCodeTranscribe, err.Error())
		text = ""
	}
	if text == "" {
		return domain.DictationResult{
			SessionID: sessionID,
			Kind:      domain.OutcomeNoSpeech,
			Duration:  duration,
		}
	}
	return c.pipeline.Run(ctx, sessionID, text, duration)
}

func (c *Controller) finish(result domain.DictationResult) {
	c.events.DictationFinished(result)
	c.setState(domain.SessionStateIdle, idleReason(result.Kind))
}

func idleReason(kind domain.OutcomeKind) domain.SessionStateReason {
	switch kind {
	case domain.OutcomeCommand:
		return domain.SessionReasonCommandInvoked
	case domain.OutcomeNoSpeech:
		return domain.SessionReasonNoSpeech
	case domain.OutcomeInsertFailed:
		return domain.SessionReasonInsertFailed
	default:
		return domain.SessionReasonTextInserted
	}
}

func (c *Controller) currentState() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(state domain.SessionState, reason domain.SessionStateReason) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
	c.events.SessionStateChanged(state, reason)
}
