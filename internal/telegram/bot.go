package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// ShareConsumer is fed every non-command message as a live share
// notification. Implemented by the ingest pipeline.
type ShareConsumer interface {
	Consume(update tgbotapi.Update) bool
}

// Bot wraps the Telegram bot API
type Bot struct {
	api         *tgbotapi.BotAPI
	logger      *logrus.Logger
	router      *Router
	shares      ShareConsumer
	ownerChatID int64
}

// NewBot creates a new Telegram bot instance. When ownerChatID is non-zero,
// updates from any other chat are ignored.
func NewBot(token string, ownerChatID int64, logger *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Infof("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		logger:      logger,
		router:      NewRouter(logger),
		ownerChatID: ownerChatID,
	}, nil
}

// API exposes the underlying client, used by the ingest pipeline as its
// cold-start update source.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// SetShares attaches the consumer that receives live share notifications.
func (b *Bot) SetShares(shares ShareConsumer) {
	b.shares = shares
}

// Start starts the bot with long polling, beginning at offset so updates
// already acknowledged during cold start are not redelivered. Blocks until
// ctx is cancelled, then releases the update subscription.
func (b *Bot) Start(ctx context.Context, offset int) error {
	// Delete webhook if exists and use polling
	_, err := b.api.Request(tgbotapi.DeleteWebhookConfig{})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(offset)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot started with long polling")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Stopping bot...")
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

// handleUpdate processes incoming updates: commands go to the router, any
// other message is treated as a share notification.
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("Panic in update handler: %v", r)
		}
	}()

	if update.Message == nil {
		return
	}

	if b.ownerChatID != 0 && update.Message.Chat.ID != b.ownerChatID {
		b.logger.WithField("chat_id", update.Message.Chat.ID).Debug("Ignoring message from foreign chat")
		return
	}

	if update.Message.IsCommand() {
		b.router.HandleMessage(b.api, update.Message)
		return
	}

	if b.shares != nil && b.shares.Consume(update) {
		b.SendMessage(update.Message.Chat.ID,
			"🔗 Link noted! Send /wish to add it to your wishlist, optionally with a target price: `/wish 49.99`")
	}
}

// SendMessage sends a message to a chat
func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := b.api.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// RegisterCommand registers a command handler on the router
func (b *Bot) RegisterCommand(command string, handler CommandHandler) {
	b.router.RegisterCommand(command, handler)
}
