package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// HelpHandler handles the /help command
type HelpHandler struct {
	logger *logrus.Logger
}

func NewHelpHandler(logger *logrus.Logger) *HelpHandler {
	return &HelpHandler{logger: logger}
}

func (h *HelpHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	helpText := `📚 *WishWatch Help*

*Adding items:*
• Share a product link to this chat, then /wish to confirm it
• /wish 49.99 - Confirm the shared link with a target price
• /wish <url> [target] - Add a link directly

*Tracking:*
• /list - Show all items with their status
• /price <n> <price> - Set the current price of item n
• /price <n> - Clear the current price of item n
• /drop <n> - Delete item n

*Status:*
🔥 current price is at or below your target — buy now
⏳ still above target — keep waiting
❓ missing a price — no recommendation yet

_Price input is forgiving: $1,234.50 and 1234.5 both work._`

	msg := tgbotapi.NewMessage(message.Chat.ID, helpText)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send help message: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Info("Sent help message")

	return nil
}
