package email

import (
	"context"
	"fmt"
	"time"

	"github.com/01moynul/fashionhub/internal/config"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// SMTPNotifier sends mail through an authenticated SMTP relay.
type SMTPNotifier struct {
	cfg config.EmailConfig
	log zerolog.Logger
}

func NewSMTPNotifier(cfg config.EmailConfig, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: logger}
}

func (n *SMTPNotifier) Enabled() bool { return true }

func (n *SMTPNotifier) adminRecipient() string {
	if n.cfg.AdminEmail != "" {
		return n.cfg.AdminEmail
	}
	return n.cfg.User
}

func (n *SMTPNotifier) SendContact(ctx context.Context, msg ContactEmail) error {
	if msg.Subject == "" {
		msg.Subject = defaultSubject
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now()
	}

	toAdmin, err := n.buildAdminMessage(msg)
	if err != nil {
		return err
	}
	toSender, err := n.buildReply(msg)
	if err != nil {
		return err
	}

	if err := n.send(ctx, toAdmin, toSender); err != nil {
		return err
	}
	n.log.Info().Int64("message_id", msg.MessageID).Msg("contact emails sent")
	return nil
}

func (n *SMTPNotifier) SendTest(ctx context.Context) error {
	m := mail.NewMsg()
	if err := m.FromFormat(brandName+" Test", n.cfg.User); err != nil {
		return fmt.Errorf("email: from: %w", err)
	}
	if err := m.To(n.adminRecipient()); err != nil {
		return fmt.Errorf("email: to: %w", err)
	}
	m.Subject("Test Email from " + brandName)
	m.SetBodyString(mail.TypeTextPlain, "If you get this, emails are working!")
	return n.send(ctx, m)
}

func (n *SMTPNotifier) buildAdminMessage(msg ContactEmail) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(brandName+" Contact Form", n.cfg.User); err != nil {
		return nil, fmt.Errorf("email: from: %w", err)
	}
	if err := m.To(n.adminRecipient()); err != nil {
		return nil, fmt.Errorf("email: to: %w", err)
	}
	if err := m.ReplyTo(msg.Email); err != nil {
		return nil, fmt.Errorf("email: reply-to: %w", err)
	}
	m.Subject(fmt.Sprintf("New Contact: %s - %s", msg.Subject, msg.Name))
	if err := m.SetBodyHTMLTemplate(adminHTML, msg); err != nil {
		return nil, fmt.Errorf("email: admin html: %w", err)
	}
	if err := m.AddAlternativeTextTemplate(adminText, msg); err != nil {
		return nil, fmt.Errorf("email: admin text: %w", err)
	}
	return m, nil
}

func (n *SMTPNotifier) buildReply(msg ContactEmail) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(brandName, n.cfg.User); err != nil {
		return nil, fmt.Errorf("email: from: %w", err)
	}
	if err := m.To(msg.Email); err != nil {
		return nil, fmt.Errorf("email: to: %w", err)
	}
	m.Subject("Thank you for contacting " + brandName)
	if err := m.SetBodyHTMLTemplate(replyHTML, msg); err != nil {
		return nil, fmt.Errorf("email: reply html: %w", err)
	}
	if err := m.AddAlternativeTextTemplate(replyText, msg); err != nil {
		return nil, fmt.Errorf("email: reply text: %w", err)
	}
	return m, nil
}

func (n *SMTPNotifier) send(ctx context.Context, msgs ...*mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.User),
		mail.WithPassword(n.cfg.Password),
		mail.WithTimeout(20 * time.Second),
	}
	if n.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("email: client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msgs...); err != nil {
		return fmt.Errorf("email: send: %w", err)
	}
	return nil
}
