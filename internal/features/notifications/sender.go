package notifications

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

type EmailSMTPSender struct {
	logger *slog.Logger

	host     string
	port     int
	user     string
	password string
	from     string

	isEnabled bool
}

func (s *EmailSMTPSender) SendEmail(to string, subject string, body string) error {
	if !s.isEnabled {
		s.logger.Debug("SMTP is not configured, skipping email", "to", to, "subject", subject)
		return nil
	}

	message := []byte(
		"From: " + s.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"\r\n" +
			body + "\r\n",
	)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
