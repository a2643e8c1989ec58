package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"salesflow/internal/models"
)

type EmailService interface {
	SendLeadClosedEmail(to string, lead *models.Lead, stage *models.Stage) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendLeadClosedEmail(to string, lead *models.Lead, stage *models.Stage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Lead %s closed: %s", lead.ID, lead.Status))

	body := fmt.Sprintf(`
		<h3>Lead closed as %s</h3>
		<p>Lead <strong>%s</strong> (contact %s) reached the stage <strong>%s</strong>.</p>
		<p>Value: %.2f, score: %d, probability: %d%%.</p>
	`, lead.Status, lead.ID, lead.ContactID, stage.Name, lead.Value, lead.Score, lead.Probability)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send lead closed email: %w", err)
	}

	return nil
}
