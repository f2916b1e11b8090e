package email

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes would-be emails to the log instead of sending them.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: logger}
}

func (n *LogNotifier) SendContact(_ context.Context, msg ContactEmail) error {
	n.log.Info().
		Int64("message_id", msg.MessageID).
		Str("name", msg.Name).
		Str("email", msg.Email).
		Str("subject", msg.Subject).
		Str("preview", msg.Preview()).
		Msg("new contact message (email disabled)")
	return nil
}

func (n *LogNotifier) SendTest(context.Context) error {
	n.log.Info().Msg("test email requested (email disabled)")
	return nil
}

func (n *LogNotifier) Enabled() bool { return false }
