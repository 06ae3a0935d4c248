package mailer

import (
	"fmt"

	"student-analyzer-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	appURL      string
	logger      logger.ILogger
}

// NewEmailService returns a no-op service when no SMTP host is configured
func NewEmailService(host string, port int, username, password, senderName, appURL string, log logger.ILogger) IEmailService {
	if host == "" {
		return noopEmailService{}
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
		appURL:      appURL,
		logger:      log,
	}
}

func (s *emailService) SendWelcome(toEmail string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to Student Document Analyzer")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your account is ready</h2>
			<p>Upload a PDF or slide deck and get an explanation, a quiz, a video script and a personalized study guide.</p>
			<a href="%s" style="background-color: #00008B; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Start analyzing</a>
		</div>
	`, s.appURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send welcome mail", map[string]interface{}{
			"to":    toEmail,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("MAILER", "Welcome mail sent", map[string]interface{}{"to": toEmail})
	return nil
}

type noopEmailService struct{}

func (noopEmailService) SendWelcome(string) error { return nil }
