package utils

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends HTML email over SMTP. Configuration is read once at startup
// instead of per send.
type Mailer struct {
	host string
	port int
	user string
	pass string
}

// NewMailerFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, EMAIL_USER and
// EMAIL_PASS. It returns nil when no SMTP host is configured, which disables
// outgoing mail.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return &Mailer{
		host: host,
		port: port,
		user: os.Getenv("EMAIL_USER"),
		pass: os.Getenv("EMAIL_PASS"),
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}
