// Package mail sends transactional HTML email through an SMTP relay.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/agriscan/scanalerts/internal/config"
)

// SendResult reports one delivery attempt. On the event-triggered path a
// failed send is a logged no-op, so the error travels in the result instead
// of propagating.
type SendResult struct {
	Success bool
	Err     error
}

// Sender delivers one HTML email. Tests substitute fakes.
type Sender interface {
	Send(to, subject, htmlBody string) SendResult
}

// SMTPSender dials the configured relay per message, matching the stateless
// per-invocation model of the functions.
type SMTPSender struct {
	cfg config.SMTP
}

// NewSMTPSender builds a sender from relay credentials.
func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) SendResult {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Email)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Email, s.cfg.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return SendResult{Err: fmt.Errorf("smtp send to %s: %w", to, err)}
	}
	return SendResult{Success: true}
}
