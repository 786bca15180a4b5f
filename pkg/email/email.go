package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// Config holds SMTP configuration
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// Service handles transactional email sending
type Service struct {
	config Config
}

// NewService creates a new email service
func NewService(config Config) *Service {
	return &Service{config: config}
}

var passwordResetTmpl = template.Must(template.New("reset").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Reset your Supermarket POS password</h2>
  <p>Hi {{.Email}},</p>
  <p>We received a request to reset your password. Click the button below to choose a new one.
     This link expires in one hour.</p>
  <p><a href="{{.ResetURL}}" style="background:#0d6efd;color:#fff;padding:10px 18px;border-radius:4px;text-decoration:none;">Reset Password</a></p>
  <p>If you did not request a reset, you can safely ignore this email.</p>
</body>
</html>
`))

// SendPasswordResetEmail sends a password reset email
func (s *Service) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	var body bytes.Buffer
	err := passwordResetTmpl.Execute(&body, struct {
		Email    string
		ResetURL string
	}{Email: toEmail, ResetURL: resetURL})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Reset Your Password - Supermarket POS"
	message := s.buildHTMLEmail(toEmail, subject, body.String())

	return s.send(toEmail, message)
}

func (s *Service) send(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *Service) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return []byte(headers + htmlBody)
}
