package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// StartHandler handles the /start command
type StartHandler struct {
	logger *logrus.Logger
}

// NewStartHandler creates a new start command handler
func NewStartHandler(logger *logrus.Logger) *StartHandler {
	return &StartHandler{
		logger: logger,
	}
}

// Handle processes the /start command
func (h *StartHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	welcomeText := `👀 *Welcome to WishWatch!*

I keep an eye on the products you wish for. Share a product link to this
chat and confirm it with /wish — then update its price whenever you check
the shop, and I'll tell you when it's time to buy.

*Getting started:*
• Share or paste a product link here
• /wish [target] - Add the shared link, optionally with a target price
• /list - See your wishlist and buy/wait status
• /price <n> <price> - Record the price you saw
• /drop <n> - Remove an item
• /help - Full command reference

Prices are yours to enter — I never fetch them behind your back.`

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send start message: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Info("Sent start message")

	return nil
}
