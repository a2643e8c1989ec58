package services

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"salesflow/internal/models"
)

type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, chatID int64) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &TelegramService{bot: bot, chatID: chatID}, nil
}

func (t *TelegramService) NotifyLeadClosed(lead *models.Lead, stage *models.Stage) error {
	if t == nil || t.chatID == 0 {
		return nil
	}
	var icon string
	if lead.Status == models.LeadWon {
		icon = "✅"
	} else {
		icon = "❌"
	}
	text := fmt.Sprintf("%s Lead <b>%s</b> closed as <b>%s</b> on stage %q (value %.2f)",
		icon, lead.ID, lead.Status, stage.Name, lead.Value)

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
