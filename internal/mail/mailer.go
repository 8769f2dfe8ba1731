// Package mail delivers account emails. Delivery failures are logged and
// never propagate to the request that triggered them.
package mail

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Sender delivers a single email message.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(msg)
}

// LogSender writes messages to the log instead of delivering them. Used when
// no SMTP relay is configured (development).
type LogSender struct {
	Logger *logrus.Logger
}

func (s *LogSender) Send(to, subject, htmlBody string) error {
	s.Logger.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("smtp not configured, logging mail instead of sending")
	return nil
}
