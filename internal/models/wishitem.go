package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceStatus represents the buy/wait recommendation derived from an item's
// current and target prices.
type PriceStatus string

const (
	// StatusUnknown means at least one of the two prices is not set yet.
	StatusUnknown PriceStatus = "unknown"
	// StatusBuyNow means the current price is at or below the target.
	StatusBuyNow PriceStatus = "buy_now"
	// StatusWaiting means the current price is still above the target.
	StatusWaiting PriceStatus = "waiting"
)

// WishItem represents one tracked product. Values are immutable: price
// updates go through WithCurrentPrice / WithTargetPrice, which return a
// modified copy, because the same item may be referenced elsewhere.
//
// The model performs no validation of its own; the URL is checked by the
// caller before an item is created.
type WishItem struct {
	URL          string
	AddedAt      time.Time
	CurrentPrice *decimal.Decimal
	TargetPrice  *decimal.Decimal
}

// NewWishItem creates a wish item. The current price always starts unset and
// is supplied by the user later.
func NewWishItem(url string, addedAt time.Time, targetPrice *decimal.Decimal) WishItem {
	return WishItem{
		URL:         url,
		AddedAt:     addedAt,
		TargetPrice: targetPrice,
	}
}

// WithCurrentPrice returns a copy of the item with the current price replaced.
// A nil price clears the field.
func (i WishItem) WithCurrentPrice(price *decimal.Decimal) WishItem {
	i.CurrentPrice = price
	return i
}

// WithTargetPrice returns a copy of the item with the target price replaced.
func (i WishItem) WithTargetPrice(price *decimal.Decimal) WishItem {
	i.TargetPrice = price
	return i
}

// Status derives the recommendation from the two price fields. It is pure
// and recomputed on demand; nothing is stored. The deal threshold is
// inclusive: current == target counts as a buy.
func (i WishItem) Status() PriceStatus {
	if i.CurrentPrice == nil || i.TargetPrice == nil {
		return StatusUnknown
	}
	if i.CurrentPrice.LessThanOrEqual(*i.TargetPrice) {
		return StatusBuyNow
	}
	return StatusWaiting
}

// HasTarget returns true if a target price is set.
func (i WishItem) HasTarget() bool {
	return i.TargetPrice != nil
}
