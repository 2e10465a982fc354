package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

const (
	smtpGmailHost = "smtp.gmail.com"
	smtpGmailPort = 587

	senderEmailName = "CliniDesk"
)

type GmailSender struct {
	client      *mail.Client
	fromAddress string
	opsMailbox  string
}

// EscalationAlert is the content of an escalation email sent to the ops mailbox.
type EscalationAlert struct {
	Title   string
	Message string
	Link    string
}

func NewGmailSender(username, password, opsMailbox string) (*GmailSender, error) {
	client, err := mail.NewClient(smtpGmailHost, mail.WithPort(smtpGmailPort), mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username), mail.WithPassword(password))
	if err != nil {
		return nil, err
	}
	if err = client.DialWithContext(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	return &GmailSender{
		client:      client,
		fromAddress: username,
		opsMailbox:  opsMailbox,
	}, nil
}

// NoopSender is used when no SMTP credentials are configured. Escalation
// emails are silently skipped; the notification list is unaffected.
type NoopSender struct{}

func (NoopSender) SendEscalationAlert(alert EscalationAlert) error {
	return nil
}

// SendEscalationAlert emails an overdue-lead alert to the configured ops mailbox.
func (sender *GmailSender) SendEscalationAlert(alert EscalationAlert) error {
	if sender.opsMailbox == "" {
		return nil
	}

	// Initialize a new email message
	msg := mail.NewMsg()

	if err := msg.FromFormat(senderEmailName, sender.fromAddress); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}

	msg.Subject(alert.Title)

	if err := msg.To(sender.opsMailbox); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}

	body := fmt.Sprintf("<p>%s</p>", alert.Message)
	if alert.Link != "" {
		body += fmt.Sprintf(`<p><a href="%s">Open in CliniDesk</a></p>`, alert.Link)
	}
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := sender.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send escalation email: %w", err)
	}

	return nil
}
