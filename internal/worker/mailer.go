package worker

import (
	"fmt"
	"log"
	"net/smtp"

	"edustore-service/config"
)

// MailSender delivers transactional mail over SMTP. Without an SMTP_HOST the
// worker logs the mail instead of sending, which keeps local development
// working with no mail server.
type MailSender struct {
	Host string
	Port string
	Auth smtp.Auth
	From string
}

func NewMailSender(cfg *config.Config) *MailSender {
	sender := &MailSender{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		From: cfg.MailFrom,
	}
	if cfg.SMTPUser != "" {
		sender.Auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return sender
}

func (m *MailSender) Send(to, subject, body string) error {
	if m.Host == "" {
		log.Printf("mail (not sent, no SMTP host): to=%s subject=%q", to, subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.From, to, subject, body)
	return smtp.SendMail(m.Host+":"+m.Port, m.Auth, m.From, []string{to}, []byte(msg))
}
