// Package mailer sends transactional HTML mail over SMTP. Callers
// never send directly from a request path; messages go through the
// email worker.
package mailer

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Config carries the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Message is a fully-rendered outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zerolog.Logger
}

func New(cfg Config, logger *zerolog.Logger) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
		logger: logger,
	}
}

// Send delivers a single message. A fresh SMTP connection per message
// keeps the mailer stateless; volume is low enough that pooling is not
// worth the complexity.
func (m *Mailer) Send(msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("message has no recipient")
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from, "Om Services")
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	m.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}
