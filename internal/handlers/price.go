package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/wishwatch/wishwatch/internal/models"
	"github.com/wishwatch/wishwatch/internal/repository"
	"github.com/wishwatch/wishwatch/internal/service"
)

// ---------------------------------------------------------------------------
// PriceHandler – /price <n> [price]
// ---------------------------------------------------------------------------

// PriceHandler handles the /price command to record the price the user saw
// for item n. Omitting the price (or sending something unparseable) clears
// the current price instead of failing.
type PriceHandler struct {
	svc    *service.Wishlist
	logger *logrus.Logger
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(svc *service.Wishlist, logger *logrus.Logger) *PriceHandler {
	return &PriceHandler{svc: svc, logger: logger}
}

// Handle processes the /price command.
func (h *PriceHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"❌ Which item? Usage: `/price 1 39.99`")
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("❌ Item number must be a number, got `%s`", args[0]))
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}

	rawPrice := strings.Join(args[1:], " ")

	item, err := h.svc.UpdatePrice(context.Background(), index-1, rawPrice)
	if errors.Is(err, service.ErrIndexOutOfRange) {
		bot.Send(tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("❌ No item #%d on your wishlist. Check /list.", index)))
		return nil
	}
	if errors.Is(err, repository.ErrStoreUnavailable) {
		bot.Send(tgbotapi.NewMessage(message.Chat.ID,
			"⚠️ Price updated, but saving failed — the change may be lost on restart."))
		return nil
	}
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}

	var text string
	switch {
	case item.CurrentPrice == nil:
		text = fmt.Sprintf("🧹 Cleared the current price of *#%d*.", index)
	case item.Status() == models.StatusBuyNow:
		text = fmt.Sprintf("🔥 *#%d* is at %s — at or below your target of %s. Time to buy!",
			index, item.CurrentPrice.StringFixed(2), item.TargetPrice.StringFixed(2))
	case item.Status() == models.StatusWaiting:
		text = fmt.Sprintf("⏳ *#%d* noted at %s — still above your target of %s.",
			index, item.CurrentPrice.StringFixed(2), item.TargetPrice.StringFixed(2))
	default:
		text = fmt.Sprintf("📝 *#%d* noted at %s. Set a target when adding items to get buy/wait advice.",
			index, item.CurrentPrice.StringFixed(2))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"item":    index,
		"status":  item.Status(),
	}).Info("Price recorded")

	return nil
}

// ---------------------------------------------------------------------------
// DropHandler – /drop <n>
// ---------------------------------------------------------------------------

// DropHandler handles the /drop command to delete item n from the wishlist.
type DropHandler struct {
	svc    *service.Wishlist
	logger *logrus.Logger
}

// NewDropHandler creates a new DropHandler.
func NewDropHandler(svc *service.Wishlist, logger *logrus.Logger) *DropHandler {
	return &DropHandler{svc: svc, logger: logger}
}

// Handle processes the /drop command.
func (h *DropHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"❌ Which item? Usage: `/drop 1`")
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("❌ Item number must be a number, got `%s`", args[0]))
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}

	err = h.svc.DeleteItem(context.Background(), index-1)
	if errors.Is(err, service.ErrIndexOutOfRange) {
		bot.Send(tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("❌ No item #%d on your wishlist. Check /list.", index)))
		return nil
	}
	if errors.Is(err, repository.ErrStoreUnavailable) {
		bot.Send(tgbotapi.NewMessage(message.Chat.ID,
			"⚠️ Dropped, but saving failed — the change may be lost on restart."))
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete wish item: %w", err)
	}

	bot.Send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("🗑 Dropped item #%d from your wishlist.", index)))

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"item":    index,
	}).Info("Wish item dropped")

	return nil
}
