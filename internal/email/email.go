// Package email delivers contact-form notifications.
package email

import (
	"context"
	"time"

	"github.com/01moynul/fashionhub/internal/config"
	"github.com/rs/zerolog"
)

const (
	brandName      = "FashionHub"
	previewRunes   = 200
	defaultSubject = "Contact Form Submission"
)

// ContactEmail is a stored contact-form message ready to be mailed.
type ContactEmail struct {
	MessageID  int64
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt time.Time
}

// Preview is the start of the message quoted back to the sender.
func (c ContactEmail) Preview() string {
	r := []rune(c.Message)
	if len(r) <= previewRunes {
		return c.Message
	}
	return string(r[:previewRunes]) + "..."
}

// Notifier sends contact-form mail. Callers treat failures as non-fatal.
type Notifier interface {
	// SendContact mails the shop admin and sends the sender an auto-reply.
	SendContact(ctx context.Context, msg ContactEmail) error
	// SendTest mails the shop admin a short test message.
	SendTest(ctx context.Context) error
	// Enabled reports whether mail actually leaves the process.
	Enabled() bool
}

// NewNotifier returns an SMTP notifier when credentials are configured and a
// logging stand-in otherwise.
func NewNotifier(cfg config.EmailConfig, logger zerolog.Logger) Notifier {
	logger = logger.With().Str("component", "email").Logger()
	if !cfg.Configured() {
		logger.Warn().Msg("EMAIL_USER/EMAIL_PASSWORD not set, contact emails will only be logged")
		return &LogNotifier{log: logger}
	}
	return NewSMTPNotifier(cfg, logger)
}
