package mail

import (
	"context"
	"fmt"

	"auth-gateway/internal/logger"

	gomail "github.com/wneessen/go-mail"
)

const welcomeSubject = "Welcome to Our Platform!"

type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Attachment string // path to the welcome attachment, optional
}

// Mailer sends the welcome mail through an authenticated SMTP relay.
type Mailer struct {
	client     *gomail.Client
	from       string
	attachment string
}

func NewMailer(cfg Config) (*Mailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("mail: client: %w", err)
	}

	return &Mailer{
		client:     client,
		from:       cfg.From,
		attachment: cfg.Attachment,
	}, nil
}

// Notify renders and sends the welcome mail with the attachment.
// One attempt, no retries; the caller decides what to do with the
// outcome.
func (m *Mailer) Notify(ctx context.Context, email string) error {
	html, err := renderWelcome(WelcomeContext{Username: email})
	if err != nil {
		return fmt.Errorf("mail: render welcome: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mail: from: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("mail: to: %w", err)
	}
	msg.Subject(welcomeSubject)
	msg.SetBodyString(gomail.TypeTextHTML, html)

	if m.attachment != "" {
		msg.AttachFile(m.attachment)
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

// Disabled stands in for the Mailer when no relay is configured.
type Disabled struct{}

func (Disabled) Notify(ctx context.Context, email string) error {
	logger.Warn("mail relay not configured, skipping welcome mail", map[string]any{
		"email": email,
	})
	return nil
}
