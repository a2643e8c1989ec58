package services

import (
	"errors"

	"salesflow/internal/models"
)

// CloseNotifier fans a closed-lead event out to the configured channels.
// Любой канал может отсутствовать (nil) — тогда он просто пропускается.
type CloseNotifier struct {
	Email    EmailService
	EmailTo  string
	Telegram *TelegramService
}

func NewCloseNotifier(email EmailService, emailTo string, telegram *TelegramService) *CloseNotifier {
	return &CloseNotifier{Email: email, EmailTo: emailTo, Telegram: telegram}
}

func (n *CloseNotifier) LeadClosed(lead *models.Lead, stage *models.Stage) error {
	var errs []error
	if n.Email != nil && n.EmailTo != "" {
		if err := n.Email.SendLeadClosedEmail(n.EmailTo, lead, stage); err != nil {
			errs = append(errs, err)
		}
	}
	if n.Telegram != nil {
		if err := n.Telegram.NotifyLeadClosed(lead, stage); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
