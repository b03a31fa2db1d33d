package editor

import (
	"context"

	"github.com/rs/zerolog"

	"voxkey/internal/ports"
)

// Fallback tries a primary editor and degrades to a secondary one on
// failure. The secondary is expected to never fail; if it does, the
// original text is returned unchanged.
type Fallback struct {
	primary   ports.TextEditor
	secondary ports.TextEditor
	log       zerolog.Logger
}

// WithFallback composes two editors. Errors from the primary are logged
// and recovered, never surfaced.
func WithFallback(primary, secondary ports.TextEditor, log zerolog.Logger) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, log: log}
}

func (f *Fallback) Edit(ctx context.Context, text string, req ports.EditRequest) (string, error) {
	edited, err := f.primary.Edit(ctx, text, req)
	if err == nil {
		return edited, nil
	}
	f.log.Warn().Err(err).Msg("editor failed, falling back to basic cleanup")

	edited, err = f.secondary.Edit(ctx, text, req)
	if err != nil {
		f.log.Error().Err(err).Msg("fallback editor failed")
		return text, nil
	}
	return edited, nil
}
