package editor

import (
	"time"

	"github.com/rs/zerolog"

	"voxkey/internal/ports"
)

// Provider names the configured edit backend.
type Provider string

const (
	ProviderNone      Provider = "none"
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Options collects everything needed to build an editor for any
// provider. Unused fields are ignored.
type Options struct {
	Provider        Provider
	OllamaHost      string
	OllamaModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	Timeout         time.Duration
}

// New builds the editor for the configured provider. Remote providers
// are wrapped with a deterministic fallback so editing never fails the
// dictation. Unknown providers and missing credentials select the
// basic editor directly.
func New(opts Options, log zerolog.Logger) ports.TextEditor {
	basic := NewBasic()

	switch opts.Provider {
	case ProviderOllama:
		ollama := NewOllama(OllamaConfig{
			Host:    opts.OllamaHost,
			Model:   opts.OllamaModel,
			Timeout: opts.Timeout,
		})
		return WithFallback(ollama, basic, log)
	case ProviderOpenAI:
		if opts.OpenAIAPIKey == "" {
			log.Warn().Msg("openai selected but OPENAI_API_KEY is empty, using basic cleanup")
			return basic
		}
		openai := NewOpenAI(OpenAIConfig{
			APIKey:  opts.OpenAIAPIKey,
			Model:   opts.OpenAIModel,
			Timeout: opts.Timeout,
		})
		return WithFallback(openai, basic, log)
	case ProviderAnthropic:
		if opts.AnthropicAPIKey == "" {
			log.Warn().Msg("anthropic selected but ANTHROPIC_API_KEY is empty, using basic cleanup")
			return basic
		}
		anthropic := NewAnthropic(AnthropicConfig{
			APIKey:  opts.AnthropicAPIKey,
			Model:   opts.AnthropicModel,
			Timeout: opts.Timeout,
		})
		return WithFallback(anthropic, basic, log)
	case ProviderNone:
		return basic
	default:
		log.Warn().Str("provider", string(opts.Provider)).Msg("unknown editor provider, using basic cleanup")
		return basic
	}
}
