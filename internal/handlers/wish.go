package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/wishwatch/wishwatch/internal/ingest"
	"github.com/wishwatch/wishwatch/internal/models"
	"github.com/wishwatch/wishwatch/internal/repository"
	"github.com/wishwatch/wishwatch/internal/service"
)

// ---------------------------------------------------------------------------
// WishAddHandler – /wish [url] [target]
// ---------------------------------------------------------------------------

// WishAddHandler handles the /wish command. Without a URL argument it
// confirms the currently staged shared link; with one it adds that link
// directly. The last argument group may be a target price, parsed leniently.
type WishAddHandler struct {
	svc    *service.Wishlist
	shares *ingest.Pipeline
	logger *logrus.Logger
}

// NewWishAddHandler creates a new WishAddHandler.
func NewWishAddHandler(svc *service.Wishlist, shares *ingest.Pipeline, logger *logrus.Logger) *WishAddHandler {
	return &WishAddHandler{svc: svc, shares: shares, logger: logger}
}

// Handle processes the /wish command.
func (h *WishAddHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	var rawURL, rawTarget string

	if len(args) > 0 && strings.HasPrefix(args[0], "http") {
		rawURL = args[0]
		rawTarget = strings.Join(args[1:], " ")
	} else {
		// No URL given: consume the staged share, remaining args are the
		// target price.
		rawURL = h.shares.Take()
		rawTarget = strings.Join(args, " ")
	}

	if rawURL == "" {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"❌ Nothing to add. Share a product link to this chat first, or use:\n"+
				"`/wish https://shop.example/item 49.99`")
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}

	item, err := h.svc.AddItem(context.Background(), rawURL, rawTarget)
	if errors.Is(err, service.ErrInvalidURL) {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("❌ That doesn't look like a valid link: `%s`", rawURL))
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}
	if errors.Is(err, repository.ErrStoreUnavailable) {
		// Item is tracked in memory; warn that it may not survive a restart.
		bot.Send(tgbotapi.NewMessage(message.Chat.ID,
			"⚠️ Added, but saving failed — the item may be lost on restart."))
		return nil
	}
	if err != nil {
		return fmt.Errorf("add wish item: %w", err)
	}

	target := "none"
	if item.HasTarget() {
		target = item.TargetPrice.StringFixed(2)
	}
	count := len(h.svc.Items())

	text := fmt.Sprintf("🎁 *Watching it!*\n\n*#%d* — %s\nTarget price: %s\n\nRecord prices you see with `/price %d <price>`",
		count, item.URL, target, count)
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"url":     item.URL,
	}).Info("Wish item confirmed")

	return nil
}

// ---------------------------------------------------------------------------
// WishListHandler – /list
// ---------------------------------------------------------------------------

// WishListHandler handles the /list command, rendering the wishlist in
// insertion order with the derived status per item.
type WishListHandler struct {
	svc    *service.Wishlist
	logger *logrus.Logger
}

// NewWishListHandler creates a new WishListHandler.
func NewWishListHandler(svc *service.Wishlist, logger *logrus.Logger) *WishListHandler {
	return &WishListHandler{svc: svc, logger: logger}
}

// Handle processes the /list command.
func (h *WishListHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	items := h.svc.Items()
	if len(items) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"🕳 Your wishlist is empty. Share a product link to this chat to get started!")
		bot.Send(msg)
		return nil
	}

	var sb strings.Builder
	sb.WriteString("👀 *Your wishlist:*\n")
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("\n%s *#%d* — %s\n", statusEmoji(item.Status()), i+1, item.URL))
		sb.WriteString(fmt.Sprintf("      current: %s | target: %s\n",
			priceText(item.CurrentPrice), priceText(item.TargetPrice)))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, sb.String())
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	bot.Send(msg)

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"count":   len(items),
	}).Info("Sent wishlist")

	return nil
}

func statusEmoji(status models.PriceStatus) string {
	switch status {
	case models.StatusBuyNow:
		return "🔥"
	case models.StatusWaiting:
		return "⏳"
	default:
		return "❓"
	}
}

func priceText(price *decimal.Decimal) string {
	if price == nil {
		return "—"
	}
	return price.StringFixed(2)
}
