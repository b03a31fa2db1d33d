// Package bootstrap assembles the runtime dependency graph.
package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"voxkey/internal/audio"
	"voxkey/internal/commands"
	"voxkey/internal/config"
	"voxkey/internal/dictionary"
	"voxkey/internal/domain"
	"voxkey/internal/editor"
	"voxkey/internal/hotkey"
	"voxkey/internal/insert"
	"voxkey/internal/logstore"
	"voxkey/internal/ports"
	"voxkey/internal/snippets"
	"voxkey/internal/transcriber"
	"voxkey/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Config     config.Config
	Listener   *hotkey.Listener
	Controller *usecase.Controller
	History    *logstore.Store
	Whisper    *transcriber.Whisper
}

// Close releases resources held by the graph.
func (s Services) Close() {
	if s.History != nil {
		_ = s.History.Close()
	}
}

// loadDictionary never blocks startup: an unusable rules file is
// reported through the sink and dictation runs without corrections.
func loadDictionary(path string, events ports.EventSink, log zerolog.Logger) *dictionary.Dictionary {
	dict, err := dictionary.Load(path, 0)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("dictionary rules unusable, corrections disabled")
		events.SessionError(domain.ErrorCodeDictionary, err.Error())
		dict, _ = dictionary.Load("", 0)
	}
	return dict
}

// Build wires all backend dependencies for the current configuration.
func Build(cfg config.Config, events ports.EventSink, log zerolog.Logger) (Services, error) {
	required, err := cfg.Hotkey.RequiredSet()
	if err != nil {
		return Services{}, err
	}

	listener := hotkey.NewListener(hotkey.NewHookSource(), hotkey.Binding{
		Required: required,
		Mode:     hotkey.Mode(cfg.Hotkey.Mode),
	}, log)

	capture := audio.NewCapture(audio.Config{
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
	}, log)

	whisper := transcriber.NewWhisper(transcriber.Config{
		URL:      cfg.Whisper.URL,
		Model:    cfg.Whisper.Model,
		Language: cfg.Whisper.Language,
		Timeout:  cfg.WhisperTimeout(),
	})

	dict := loadDictionary(cfg.DictionaryPath, events, log)

	keyboard, err := insert.NewSystemKeyboard()
	if err != nil {
		return Services{}, fmt.Errorf("bootstrap: bind keyboard: %w", err)
	}

	inserter := insert.New(keyboard, insert.NewSystemClipboard(), log,
		insert.WithTypeThreshold(cfg.Insert.TypeThreshold),
		insert.WithCharDelay(cfg.TypeDelay()),
	)

	history, err := logstore.Open(cfg.LogPath)
	if err != nil {
		return Services{}, fmt.Errorf("bootstrap: open transcription log: %w", err)
	}

	textEditor := editor.New(editor.Options{
		Provider:        editor.Provider(cfg.Editor.Provider),
		OllamaHost:      cfg.Editor.OllamaHost,
		OllamaModel:     cfg.Editor.OllamaModel,
		OpenAIAPIKey:    cfg.OpenAIAPIKey(),
		OpenAIModel:     cfg.Editor.OpenAIModel,
		AnthropicAPIKey: cfg.AnthropicAPIKey(),
		AnthropicModel:  cfg.Editor.AnthropicModel,
		Timeout:         cfg.EditorTimeout(),
	}, log)

	pipeline := usecase.NewPipeline(
		dict,
		commands.NewDetector(),
		commands.NewExecutor(keyboard),
		textEditor,
		snippets.New(cfg.Snippets),
		inserter,
		history,
		events,
		usecase.PipelineConfig{
			DictionaryEnabled: cfg.Stages.Dictionary,
			CommandsEnabled:   cfg.Stages.Commands,
			EditorEnabled:     cfg.Editor.Enabled,
			SnippetsEnabled:   cfg.Stages.Snippets,
			Preset:            cfg.Editor.Preset,
			CustomPrompt:      cfg.Editor.CustomPrompt,
		},
		log,
	)

	controller := usecase.NewController(capture, whisper, pipeline, events, listener.Signals(), log)

	return Services{
		Config:     cfg,
		Listener:   listener,
		Controller: controller,
		History:    history,
		Whisper:    whisper,
	}, nil
}
