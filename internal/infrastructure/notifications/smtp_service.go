package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/rs/zerolog/log"
	"github.com/you/learnsvc/domain"
)

const activationMailTemplate = `<html>
  <body style="font-family: sans-serif;">
    <h2>Activate your account</h2>
    <p>Hello {{.Name}},</p>
    <p>Your activation code is:</p>
    <p style="font-size: 28px; letter-spacing: 6px;"><strong>{{.Code}}</strong></p>
    <p>The code is valid for {{.TTLMinutes}} minutes. If you did not request this, you can ignore this mail.</p>
  </body>
</html>`

// SMTPMailerImpl implements domain.Mailer over plain SMTP
type SMTPMailerImpl struct {
	host       string
	addr       string
	auth       smtp.Auth
	from       string
	ttlMinutes int
	tmpl       *template.Template
}

// NewSMTPMailer creates a new SMTP mailer. ttlMinutes is rendered into the
// mail body so the stated validity matches the activation token lifetime.
func NewSMTPMailer(host string, port int, username, password, from string, ttlMinutes int) domain.Mailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailerImpl{
		host:       host,
		addr:       fmt.Sprintf("%s:%d", host, port),
		auth:       auth,
		from:       from,
		ttlMinutes: ttlMinutes,
		tmpl:       template.Must(template.New("activation").Parse(activationMailTemplate)),
	}
}

// SendActivationMail implements domain.Mailer. When no SMTP host is
// configured the mail is logged instead of sent.
func (m *SMTPMailerImpl) SendActivationMail(to, name, code string) error {
	var body bytes.Buffer
	data := struct {
		Name       string
		Code       string
		TTLMinutes int
	}{Name: name, Code: code, TTLMinutes: m.ttlMinutes}

	if err := m.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render activation mail: %w", err)
	}

	if m.host == "" || m.from == "" {
		log.Info().Str("to", to).Str("code", code).Msg("smtp not configured, activation mail logged")
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Activate your account\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, body.String())

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send activation mail: %w", err)
	}
	return nil
}
