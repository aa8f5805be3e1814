package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

var (
	// ErrSMTPHostRequired is returned when no SMTP host is configured.
	ErrSMTPHostRequired = errors.New("smtp host required")

	// ErrRecipientRequired is returned when no recipient address is configured.
	ErrRecipientRequired = errors.New("recipient address required")
)

// sendMailFunc matches smtp.SendMail, split out for testing.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier delivers match alerts over email.
type SMTPNotifier struct {
	host      string
	port      int
	from      string
	recipient string
	auth      smtp.Auth
	send      sendMailFunc
}

// SMTPConfig configures an SMTPNotifier.
type SMTPConfig struct {
	Host      string
	Port      int
	From      string
	Password  string
	Recipient string
}

// NewSMTPNotifier creates an email notifier. Authentication is
// enabled when a password is set.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, ErrSMTPHostRequired
	}
	if cfg.Recipient == "" {
		return nil, ErrRecipientRequired
	}

	port := cfg.Port
	if port == 0 {
		port = 587
	}

	var auth smtp.Auth
	if cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)
	}

	return &SMTPNotifier{
		host:      cfg.Host,
		port:      port,
		from:      cfg.From,
		recipient: cfg.Recipient,
		auth:      auth,
		send:      smtp.SendMail,
	}, nil
}

// Notify sends the alert as a plain-text email.
func (n *SMTPNotifier) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var mail strings.Builder
	fmt.Fprintf(&mail, "From: %s\r\n", n.from)
	fmt.Fprintf(&mail, "To: %s\r\n", n.recipient)
	fmt.Fprintf(&mail, "Subject: %s\r\n", msg.Subject)
	mail.WriteString("MIME-Version: 1.0\r\n")
	mail.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	mail.WriteString("\r\n")
	mail.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	if err := n.send(addr, n.auth, n.from, []string{n.recipient}, []byte(mail.String())); err != nil {
		return fmt.Errorf("sending alert for tender %s: %w", msg.TenderID, err)
	}
	return nil
}
