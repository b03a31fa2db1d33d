package domain

import "time"

// KeyToken is the canonical lowercase identifier for one physical key,
// e.g. "cmd", "shift", "space", "a".
type KeyToken string

// Signal is emitted by the hotkey state machine when the configured
// combination transitions in or out of the pressed state.
type Signal int

const (
	SignalActivate Signal = iota + 1
	SignalDeactivate
)

func (s Signal) String() string {
	switch s {
	case SignalActivate:
		return "activate"
	case SignalDeactivate:
		return "deactivate"
	default:
		return "unknown"
	}
}

// SessionState models the dictation lifecycle. Exactly one state is
// active at any instant.
type SessionState string

const (
	SessionStateIdle       SessionState = "idle"
	SessionStateRecording  SessionState = "recording"
	SessionStateProcessing SessionState = "processing"
)

// SessionStateReason provides a structured reason for state transitions.
type SessionStateReason string

const (
	SessionReasonReady            SessionStateReason = "ready"
	SessionReasonRecordingStarted SessionStateReason = "recording_started"
	SessionReasonTranscribing     SessionStateReason = "transcribing"
	SessionReasonTextInserted     SessionStateReason = "text_inserted"
	SessionReasonCommandInvoked   SessionStateReason = "command_invoked"
	SessionReasonNoAudio          SessionStateReason = "no_audio"
	SessionReasonNoSpeech         SessionStateReason = "no_speech"
	SessionReasonInsertFailed     SessionStateReason = "insert_failed"
	SessionReasonCaptureFailed    SessionStateReason = "capture_failed"
)

// ErrorCode identifies non-fatal backend errors surfaced to the event sink.
type ErrorCode string

const (
	ErrorCodeStartup    ErrorCode = "startup"
	ErrorCodeCapture    ErrorCode = "capture"
	ErrorCodeTranscribe ErrorCode = "transcribe"
	ErrorCodeDictionary ErrorCode = "dictionary"
	ErrorCodeCommand    ErrorCode = "command"
	ErrorCodeEditor     ErrorCode = "editor"
	ErrorCodeSnippet    ErrorCode = "snippet"
	ErrorCodeInsert     ErrorCode = "insert"
	ErrorCodeLog        ErrorCode = "log"
)

// CommandID identifies a voice command from the closed vocabulary.
type CommandID string

const (
	CommandNewLine      CommandID = "new_line"
	CommandNewParagraph CommandID = "new_paragraph"
	CommandDeleteThat   CommandID = "delete_that"
	CommandPressEnter   CommandID = "press_enter"
	CommandPressTab     CommandID = "press_tab"
)

// OutcomeKind classifies how a dictation event ended.
type OutcomeKind string

const (
	OutcomeInserted     OutcomeKind = "inserted"
	OutcomeCommand      OutcomeKind = "command"
	OutcomeNoSpeech     OutcomeKind = "no_speech"
	OutcomeInsertFailed OutcomeKind = "insert_failed"
)

// DictationResult is produced once per dictation event after the
// processing pipeline runs to completion.
type DictationResult struct {
	SessionID string
	Kind      OutcomeKind
	Raw       string
	Final     string
	Command   CommandID
	Duration  time.Duration
	InsertErr error
}

// LogKind distinguishes transcription log entries.
type LogKind string

const (
	LogKindInsertion LogKind = "insertion"
	LogKindCommand   LogKind = "command"
)

// LogEntry is one append-only transcription log record.
type LogEntry struct {
	SessionID       string
	Kind            LogKind
	RawText         string
	EditedText      string
	HasEdited       bool
	DurationSeconds float64
	CreatedAt       time.Time
}

// Stats summarizes the transcription log.
type Stats struct {
	TotalTranscriptions int64
	TotalWords          int64
	TotalCommands       int64
}

// Status summarizes the current runtime status.
type Status struct {
	State  SessionState `json:"state"`
	Active bool         `json:"active"`
}
