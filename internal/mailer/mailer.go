// Package mailer delivers transactional mail. Delivery is fire-and-forget:
// failures are logged and never surface to the caller, so registration or
// reset initiation succeeds regardless of SMTP health.
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/Ougobatec/Breezy-sub000/pkg/config"
)

// Mailer sends transactional messages over SMTP. A nil dialer (mail
// disabled) turns every send into a logged no-op.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
	log     *zap.Logger
}

// New creates a Mailer from config
func New(cfg *config.MailConfig, log *zap.Logger) *Mailer {
	m := &Mailer{
		from:    cfg.From,
		baseURL: cfg.BaseURL,
		log:     log,
	}
	if cfg.Enabled {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

func (m *Mailer) send(to, subject, body string) {
	if m.dialer == nil {
		m.log.Debug("mail disabled, skipping send", zap.String("to", to), zap.String("subject", subject))
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Warn("mail delivery failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
	}
}

// SendWelcome sends the post-registration welcome message
func (m *Mailer) SendWelcome(to, name string) {
	m.send(to, "Welcome to Breezy",
		fmt.Sprintf("Hi %s,\n\nYour Breezy account is ready. Happy posting!\n", name))
}

// SendPasswordReset sends a reset link carrying the single-use token
func (m *Mailer) SendPasswordReset(to, token string) {
	m.send(to, "Reset your Breezy password",
		fmt.Sprintf("A password reset was requested for your account.\n\nReset link: %s/reset-password?token=%s\n\nIf you did not request this, ignore this message.\n", m.baseURL, token))
}
