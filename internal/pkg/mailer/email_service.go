package mailer

import (
	"fmt"
	"net/url"
	"strings"

	"codebenders/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendResetLink(toEmail, token string) error
	SendVerifyLink(toEmail, token string) error
}

type emailService struct {
	send        func(*gomail.Message) error
	senderEmail string
	senderName  string
	clientURL   string
	logger      logger.ILogger
}

// NewEmailService sends through SMTP. With no host configured the links are
// only written to the log, which is enough for local development.
func NewEmailService(host string, port int, username, password, senderName, clientURL string, log logger.ILogger) IEmailService {
	s := &emailService{
		senderEmail: username,
		senderName:  senderName,
		clientURL:   strings.TrimRight(clientURL, "/"),
		logger:      log,
	}
	if host != "" {
		d := gomail.NewDialer(host, port, username, password)
		s.send = func(m *gomail.Message) error { return d.DialAndSend(m) }
	}
	return s
}

func (s *emailService) link(path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", s.clientURL, path, url.QueryEscape(token))
}

func (s *emailService) SendResetLink(toEmail, token string) error {
	link := s.link("/reset-password", token)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Password Reset Request</h2>
			<p>You requested to reset your Codebenders password. Click the button below to proceed:</p>
			<a href="%s" style="background-color: #D16021; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, link, link)
	return s.deliver(toEmail, "Reset Your Password", body, link)
}

func (s *emailService) SendVerifyLink(toEmail, token string) error {
	link := s.link("/verify", token)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to Codebenders!</h2>
			<p>Confirm your email address by opening this link:</p>
			<p><a href="%s">%s</a></p>
		</div>
	`, link, link)
	return s.deliver(toEmail, "Verify Your Email", body, link)
}

func (s *emailService) deliver(to, subject, body, link string) error {
	details := map[string]interface{}{"to": to, "subject": subject}
	if s.send == nil {
		details["link"] = link
		s.logger.Info("mailer", "SMTP not configured, mail logged only", details)
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		details["error"] = err.Error()
		s.logger.Error("mailer", "Failed to send mail", details)
		return fmt.Errorf("send %q to %s: %w", subject, to, err)
	}
	s.logger.Info("mailer", "Mail sent", details)
	return nil
}
