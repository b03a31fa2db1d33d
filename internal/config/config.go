// Package config loads and validates the application settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"voxkey/internal/domain"
	"voxkey/internal/keys"
)

// HotkeyConfig names the activation gesture. Modifiers may be empty;
// Key is required.
type HotkeyConfig struct {
	Modifier1 string `mapstructure:"modifier1"`
	Modifier2 string `mapstructure:"modifier2"`
	Key       string `mapstructure:"key" validate:"required"`
	Mode      string `mapstructure:"mode" validate:"oneof=hold toggle double_tap_hold"`
}

// RequiredSet normalizes the configured gesture into key tokens.
func (h HotkeyConfig) RequiredSet() ([]domain.KeyToken, error) {
	var tokens []domain.KeyToken
	for _, raw := range []string{h.Modifier1, h.Modifier2, h.Key} {
		if raw == "" {
			continue
		}
		tok, ok := keys.Normalize(raw)
		if !ok {
			return nil, fmt.Errorf("config: unrecognized key %q in hotkey", raw)
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return nil, errors.New("config: hotkey binding is empty")
	}
	return tokens, nil
}

// WhisperConfig selects the transcription sidecar.
type WhisperConfig struct {
	URL            string `mapstructure:"url"`
	Model          string `mapstructure:"model"`
	Language       string `mapstructure:"language"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// EditorConfig selects the AI edit provider. API keys come from the
// environment, never from the config file.
type EditorConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Provider       string `mapstructure:"provider" validate:"oneof=none ollama openai anthropic"`
	Preset         string `mapstructure:"preset" validate:"omitempty,oneof=default email commit notes code"`
	CustomPrompt   string `mapstructure:"custom_prompt"`
	OllamaHost     string `mapstructure:"ollama_host"`
	OllamaModel    string `mapstructure:"ollama_model"`
	OpenAIModel    string `mapstructure:"openai_model"`
	AnthropicModel string `mapstructure:"anthropic_model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// AudioConfig sets the capture format.
type AudioConfig struct {
	SampleRate int `mapstructure:"sample_rate" validate:"gt=0"`
	Channels   int `mapstructure:"channels" validate:"gt=0"`
}

// StagesConfig toggles the optional pipeline stages.
type StagesConfig struct {
	Dictionary bool `mapstructure:"dictionary"`
	Commands   bool `mapstructure:"commands"`
	Snippets   bool `mapstructure:"snippets"`
}

// InsertConfig tunes text placement.
type InsertConfig struct {
	TypeThreshold int `mapstructure:"type_threshold" validate:"gte=0"`
	TypeDelayMS   int `mapstructure:"type_delay_ms" validate:"gte=0"`
}

// Config is the full application configuration.
type Config struct {
	Hotkey         HotkeyConfig      `mapstructure:"hotkey"`
	Whisper        WhisperConfig     `mapstructure:"whisper"`
	Editor         EditorConfig      `mapstructure:"editor"`
	Audio          AudioConfig       `mapstructure:"audio"`
	Stages         StagesConfig      `mapstructure:"stages"`
	DictionaryPath string            `mapstructure:"dictionary_path"`
	Snippets       map[string]string `mapstructure:"snippets"`
	Insert         InsertConfig      `mapstructure:"insert"`
	LogPath        string            `mapstructure:"log_path"`
	LogLevel       string            `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	Notifications  bool              `mapstructure:"notifications"`
}

// WhisperTimeout returns the sidecar timeout as a duration.
func (c Config) WhisperTimeout() time.Duration {
	return time.Duration(c.Whisper.TimeoutSeconds) * time.Second
}

// EditorTimeout returns the edit provider timeout as a duration.
func (c Config) EditorTimeout() time.Duration {
	return time.Duration(c.Editor.TimeoutSeconds) * time.Second
}

// TypeDelay returns the per-character typing delay as a duration.
func (c Config) TypeDelay() time.Duration {
	return time.Duration(c.Insert.TypeDelayMS) * time.Millisecond
}

// OpenAIAPIKey reads the OpenAI credential from the environment.
func (c Config) OpenAIAPIKey() string { return os.Getenv("OPENAI_API_KEY") }

// AnthropicAPIKey reads the Anthropic credential from the environment.
func (c Config) AnthropicAPIKey() string { return os.Getenv("ANTHROPIC_API_KEY") }

// DefaultDir returns the standard configuration directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "voxkey")
}

// modeAliases maps spellings seen in the wild to canonical mode names.
var modeAliases = map[string]string{
	"push_to_talk":    "hold",
	"push-to-talk":    "hold",
	"double_tap":      "double_tap_hold",
	"double-tap":      "double_tap_hold",
	"double-tap-hold": "double_tap_hold",
	"doubletap":       "double_tap_hold",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hotkey.modifier1", "ctrl")
	v.SetDefault("hotkey.modifier2", "shift")
	v.SetDefault("hotkey.key", "space")
	v.SetDefault("hotkey.mode", "hold")

	v.SetDefault("whisper.url", "http://localhost:8387")
	v.SetDefault("whisper.model", "base")
	v.SetDefault("whisper.language", "")
	v.SetDefault("whisper.timeout_seconds", 120)

	v.SetDefault("editor.enabled", false)
	v.SetDefault("editor.provider", "none")
	v.SetDefault("editor.preset", "default")
	v.SetDefault("editor.ollama_host", "http://localhost:11434")
	v.SetDefault("editor.ollama_model", "llama3.2:3b")
	v.SetDefault("editor.openai_model", "gpt-4o-mini")
	v.SetDefault("editor.anthropic_model", "claude-3-haiku-20240307")
	v.SetDefault("editor.timeout_seconds", 30)

	v.SetDefault("audio.sample_rate", 16000)
	v.SetDefault("audio.channels", 1)

	v.SetDefault("stages.dictionary", true)
	v.SetDefault("stages.commands", true)
	v.SetDefault("stages.snippets", true)

	v.SetDefault("dictionary_path", filepath.Join(DefaultDir(), "dictionary.txt"))
	v.SetDefault("snippets", map[string]string{})

	v.SetDefault("insert.type_threshold", 50)
	v.SetDefault("insert.type_delay_ms", 10)

	v.SetDefault("log_path", filepath.Join(DefaultDir(), "transcriptions.db"))
	v.SetDefault("log_level", "info")
	v.SetDefault("notifications", true)
}

// Load reads configuration from dir (the default directory when
// empty), applies VOXKEY_* environment overrides, and validates the
// result. A missing config file is not an error; defaults apply.
func Load(dir string) (Config, error) {
	// Local .env files carry the provider API keys during development.
	_ = godotenv.Load()

	if dir == "" {
		dir = DefaultDir()
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("VOXKEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", dir, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.Hotkey.Mode = canonicalMode(cfg.Hotkey.Mode)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func canonicalMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if canonical, ok := modeAliases[mode]; ok {
		return canonical
	}
	return mode
}

func validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config: invalid %s: failed %q", f.Namespace(), f.Tag())
		}
		return fmt.Errorf("config: validate: %w", err)
	}
	if _, err := cfg.Hotkey.RequiredSet(); err != nil {
		return err
	}
	return nil
}
