// Package notify surfaces desktop notifications for failures the user
// would otherwise not see while dictating.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"
)

const appTitle = "Voxkey"

// Notifier shows desktop notifications. Failures to notify are logged
// and otherwise ignored.
type Notifier struct {
	enabled bool
	log     zerolog.Logger
}

// New creates a notifier. A disabled notifier drops all messages.
func New(enabled bool, log zerolog.Logger) *Notifier {
	return &Notifier{enabled: enabled, log: log}
}

// Info shows an informational notification.
func (n *Notifier) Info(message string) {
	if !n.enabled {
		return
	}
	if err := beeep.Notify(appTitle, message, ""); err != nil {
		n.log.Debug().Err(err).Msg("notification failed")
	}
}

// Alert shows an attention-demanding notification.
func (n *Notifier) Alert(message string) {
	if !n.enabled {
		return
	}
	if err := beeep.Alert(appTitle, message, ""); err != nil {
		n.log.Debug().Err(err).Msg("alert failed")
	}
}
