package email

import (
	"bytes"
	"context"
	"fmt"
	"go-portfolio/config"
	"go-portfolio/internal/domain"
	"mime"
	"net/smtp"
	"strings"
	"text/template"
	"unicode"
)

// sendFunc matches smtp.SendMail so delivery can be replaced in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	send      sendFunc
}

// NewEmailService creates a new email service from the SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.ContactEmailTo,
		send:      smtp.SendMail,
	}
}

// contactEmailTemplate is the plain-text body for contact form emails.
// Fields are already HTML-escaped by the usecase.
var contactEmailTemplate = template.Must(template.New("contact").Parse(`
You have received a new message from your portfolio contact form.

Name: {{.Name}}
Email: {{.Email}}
IP Address: {{.ClientIP}}
Timestamp: {{.ReceivedAt.Format "2006-01-02 15:04:05"}}

Message:
{{.Message}}

---
This message was sent from your portfolio website.
`))

// SendContactMessage sends a contact form email to the configured recipient
func (s *EmailService) SendContactMessage(ctx context.Context, msg *domain.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := s.buildMessage(msg)
	if err != nil {
		return err
	}

	// Setup SMTP authentication
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{s.toEmail}, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *EmailService) buildMessage(msg *domain.ContactMessage) ([]byte, error) {
	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, msg); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := mime.QEncoding.Encode("utf-8",
		headerValue(fmt.Sprintf("Portfolio Contact Form - Message from %s", msg.Name)))

	return []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		headerValue(msg.Email),
		subject,
		body.String(),
	)), nil
}

// headerValue drops control characters so a value cannot end its header line.
func headerValue(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, v)
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}
