package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"voxkey/internal/domain"
	"voxkey/internal/ports"
)

// PipelineConfig toggles the optional stages and carries the edit
// options. Stage order itself is fixed.
type PipelineConfig struct {
	DictionaryEnabled bool
	CommandsEnabled   bool
	EditorEnabled     bool
	SnippetsEnabled   bool
	Preset            string
	CustomPrompt      string
}

// Pipeline runs a transcript through the processing stages in order:
// dictionary, voice commands, AI edit, snippets, insertion, log. Every
// stage is fail-soft: on error it degrades to identity and the
// dictation continues.
type Pipeline struct {
	dictionary ports.Dictionary
	detector   ports.VoiceCommandDetector
	executor   ports.CommandExecutor
	editor     ports.TextEditor
	snippets   ports.SnippetExpander
	inserter   ports.Inserter
	history    ports.TranscriptionLog
	events     ports.EventSink
	cfg        PipelineConfig
	log        zerolog.Logger
}

// NewPipeline assembles the stage chain.
func NewPipeline(
	dictionary ports.Dictionary,
	detector ports.VoiceCommandDetector,
	executor ports.CommandExecutor,
	editor ports.TextEditor,
	snippets ports.SnippetExpander,
	inserter ports.Inserter,
	history ports.TranscriptionLog,
	events ports.EventSink,
	cfg PipelineConfig,
	log zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		dictionary: dictionary,
		detector:   detector,
		executor:   executor,
		editor:     editor,
		snippets:   snippets,
		inserter:   inserter,
		history:    history,
		events:     events,
		cfg:        cfg,
		log:        log,
	}
}

// Run processes one transcript to completion and reports the outcome.
// raw must be non-empty; the no-speech early exit happens before the
// pipeline is entered.
func (p *Pipeline) Run(ctx context.Context, sessionID, raw string, duration time.Duration) domain.DictationResult {
	text := raw

	if p.cfg.DictionaryEnabled && p.dictionary != nil {
		corrected, err := p.dictionary.Apply(text)
		if err != nil {
			p.log.Warn().Err(err).Msg("dictionary stage failed, passing text through")
			p.events.SessionError(domain.ErrorCodeDictionary, err.Error())
		} else {
			text = corrected
		}
	}

	if p.cfg.CommandsEnabled && p.detector != nil {
		cmd, remaining, ok := p.detector.Detect(text)
		if ok {
			if err := p.executor.Execute(cmd); err != nil {
				p.log.Warn().Err(err).Str("command", string(cmd)).Msg("command execution failed")
				p.events.SessionError(domain.ErrorCodeCommand, err.Error())
			}
			if remaining == "" {
				p.appendLog(ctx, domain.LogEntry{
					SessionID:       sessionID,
					Kind:            domain.LogKindCommand,
					RawText:         raw,
					DurationSeconds: duration.Seconds(),
				})
				return domain.DictationResult{
					SessionID: sessionID,
					Kind:      domain.OutcomeCommand,
					Raw:       raw,
					Command:   cmd,
					Duration:  duration,
				}
			}
			text = remaining
		}
	}

	if p.cfg.EditorEnabled && p.editor != nil {
		edited, err := p.editor.Edit(ctx, text, ports.EditRequest{
			Preset:       p.cfg.Preset,
			CustomPrompt: p.cfg.CustomPrompt,
		})
		if err != nil {
			p.log.Warn().Err(err).Msg("edit stage failed, passing text through")
			p.events.SessionError(domain.ErrorCodeEditor, err.Error())
		} else {
			text = edited
		}
	}

	if p.cfg.SnippetsEnabled && p.snippets != nil {
		text = p.snippets.Expand(text)
	}

	result := domain.DictationResult{
		SessionID: sessionID,
		Kind:      domain.OutcomeInserted,
		Raw:       raw,
		Final:     text,
		Duration:  duration,
	}

	if err := p.inserter.Insert(text); err != nil {
		p.log.Error().Err(err).Msg("insertion failed")
		p.events.SessionError(domain.ErrorCodeInsert, err.Error())
		result.Kind = domain.OutcomeInsertFailed
		result.InsertErr = err
		return result
	}

	p.appendLog(ctx, domain.LogEntry{
		SessionID:       sessionID,
		Kind:            domain.LogKindInsertion,
		RawText:         raw,
		EditedText:      text,
		HasEdited:       text != raw,
		DurationSeconds: duration.Seconds(),
	})
	return result
}

func (p *Pipeline) appendLog(ctx context.Context, entry domain.LogEntry) {
	if p.history == nil {
		return
	}
	if err := p.history.Append(ctx, entry); err != nil {
		p.log.Warn().Err(err).Msg("transcription log append failed")
		p.events.SessionError(domain.ErrorCodeLog, err.Error())
	}
}
