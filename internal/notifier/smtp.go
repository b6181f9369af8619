package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTP is a Notifier backed by an SMTP server (Gmail in the original
// deployment, STARTTLS on port 587).
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP creates an SMTP notifier. from defaults to username.
func NewSMTP(host string, port int, username, password, from string) *SMTP {
	if from == "" {
		from = username
	}
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Notify sends one HTML mail. Each send dials a fresh connection; at this
// scale keeping a connection pool is not worth the bookkeeping.
func (s *SMTP) Notify(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
