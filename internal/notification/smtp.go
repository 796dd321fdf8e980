package notification

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/deke-r/senseHrm/internal/config"
	"github.com/deke-r/senseHrm/internal/events"
)

// Sender delivers a rendered notification email.
type Sender interface {
	Send(e events.EmailRequested) error
}

type smtpSender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPSender(cfg config.SMTPConfig) Sender {
	return &smtpSender{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

func (s *smtpSender) Send(e events.EmailRequested) error {
	body, err := RenderHTML(e)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", e.To)
	m.SetHeader("Subject", e.Subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", e.To, err)
	}
	return nil
}
