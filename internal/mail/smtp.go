package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ParsifalKing/Menu-project/internal/config"
	"github.com/ParsifalKing/Menu-project/internal/logger"
	"github.com/ParsifalKing/Menu-project/internal/notification"

	"go.uber.org/zap"
)

type smtpMailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

// NewSMTPMailer returns a Mailer that sends HTML mail through the configured
// SMTP relay.
func NewSMTPMailer(cfg *config.Config) notification.Mailer {
	if cfg.SMTPHost == "" {
		logger.L().Warn("SMTP host is empty, outgoing mail will fail")
	}

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}

	return &smtpMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		from: cfg.EmailFrom,
		auth: auth,
	}
}

func (m *smtpMailer) SendEmail(ctx context.Context, recipients []string, subject, htmlBody string) error {
	log := logger.FromCtx(ctx).With(zap.Strings("recipients", recipients))

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + strings.Join(recipients, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := smtp.SendMail(addr, m.auth, m.from, recipients, []byte(msg)); err != nil {
		log.Error("smtp send failed", zap.Error(err))
		return err
	}

	return nil
}
