package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"voxkey/internal/bootstrap"
	"voxkey/internal/config"
	"voxkey/internal/domain"
	"voxkey/internal/notify"
)

// App is the dictation daemon: it owns the assembled service graph and
// fans backend events out to the log and the desktop notifier.
type App struct {
	cfg      config.Config
	log      zerolog.Logger
	notifier *notify.Notifier
}

func NewApp(cfg config.Config, log zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		notifier: notify.New(cfg.Notifications, log),
	}
}

// Run builds the services and blocks until the context is cancelled or
// a termination signal arrives.
func (a *App) Run(ctx context.Context) error {
	services, err := bootstrap.Build(a.cfg, a, a.log)
	if err != nil {
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return err
	}
	defer services.Close()

	a.printBanner(ctx, services)

	if err := services.Controller.Start(ctx); err != nil {
		return err
	}
	defer services.Controller.Stop()

	if err := services.Listener.Start(); err != nil {
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return err
	}
	defer services.Listener.Stop()

	a.log.Info().
		Str("hotkey", fmt.Sprintf("%s+%s+%s", a.cfg.Hotkey.Modifier1, a.cfg.Hotkey.Modifier2, a.cfg.Hotkey.Key)).
		Str("mode", a.cfg.Hotkey.Mode).
		Msg("listening for hotkey")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
	case sig := <-sigCh:
		a.log.Info().Str("signal", sig.String()).Msg("shutting down")
	}
	return nil
}

func (a *App) printBanner(ctx context.Context, services bootstrap.Services) {
	healthCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if !services.Whisper.IsAvailable(healthCtx) {
		a.log.Warn().Str("url", a.cfg.Whisper.URL).Msg("whisper sidecar unreachable, dictation will produce no text until it is up")
	}

	stats, err := services.History.Stats(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("could not read usage stats")
		return
	}
	a.log.Info().
		Int64("transcriptions", stats.TotalTranscriptions).
		Int64("words", stats.TotalWords).
		Int64("commands", stats.TotalCommands).
		Msg("lifetime usage")
}

// SessionStateChanged implements ports.EventSink.
func (a *App) SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	a.log.Info().Str("state", string(state)).Str("reason", string(reason)).Msg("session")
}

// DictationFinished implements ports.EventSink.
func (a *App) DictationFinished(result domain.DictationResult) {
	ev := a.log.Info().
		Str("session_id", result.SessionID).
		Str("outcome", string(result.Kind)).
		Dur("duration", result.Duration)
	switch result.Kind {
	case domain.OutcomeCommand:
		ev.Str("command", string(result.Command))
	case domain.OutcomeInserted:
		ev.Int("chars", len(result.Final))
	}
	ev.Msg("dictation finished")

	if result.Kind == domain.OutcomeInsertFailed {
		a.notifier.Alert("Could not insert dictated text")
	}
}

// SessionError implements ports.EventSink.
func (a *App) SessionError(code domain.ErrorCode, detail string) {
	a.log.Error().Str("code", string(code)).Msg(detail)
	switch code {
	case domain.ErrorCodeStartup, domain.ErrorCodeCapture:
		a.notifier.Alert(detail)
	}
}
