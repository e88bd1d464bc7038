package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func TestWishItem_Status(t *testing.T) {
	tests := []struct {
		name    string
		current string // "" means unset
		target  string
		want    PriceStatus
	}{
		{"both unset", "", "", StatusUnknown},
		{"current unset", "", "50", StatusUnknown},
		{"target unset", "40", "", StatusUnknown},
		{"below target", "40", "50", StatusBuyNow},
		{"equal to target is a buy", "50", "50", StatusBuyNow},
		{"above target", "60", "50", StatusWaiting},
		{"barely above target", "50.01", "50", StatusWaiting},
		{"barely below target", "49.99", "50", StatusBuyNow},
		{"zero current", "0", "50", StatusBuyNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewWishItem("https://shop.example/x", time.Now(), nil)
			if tt.target != "" {
				item = item.WithTargetPrice(dec(t, tt.target))
			}
			if tt.current != "" {
				item = item.WithCurrentPrice(dec(t, tt.current))
			}
			assert.Equal(t, tt.want, item.Status())
		})
	}
}

func TestWishItem_WithCurrentPrice_DoesNotMutateOriginal(t *testing.T) {
	original := NewWishItem("https://shop.example/x", time.Now(), dec(t, "50"))

	updated := original.WithCurrentPrice(dec(t, "40"))

	assert.Nil(t, original.CurrentPrice)
	require.NotNil(t, updated.CurrentPrice)
	assert.True(t, updated.CurrentPrice.Equal(decimal.RequireFromString("40")))

	// The untouched fields carry over.
	assert.Equal(t, original.URL, updated.URL)
	assert.Equal(t, original.AddedAt, updated.AddedAt)
	assert.Equal(t, original.TargetPrice, updated.TargetPrice)
}

func TestWishItem_WithCurrentPrice_NilClears(t *testing.T) {
	item := NewWishItem("https://shop.example/x", time.Now(), dec(t, "50")).
		WithCurrentPrice(dec(t, "40"))

	cleared := item.WithCurrentPrice(nil)

	assert.Nil(t, cleared.CurrentPrice)
	assert.Equal(t, StatusUnknown, cleared.Status())
	// Original still has its price.
	assert.NotNil(t, item.CurrentPrice)
}

func TestNewWishItem_CurrentPriceStartsUnset(t *testing.T) {
	item := NewWishItem("https://shop.example/x", time.Now(), dec(t, "50"))

	assert.Nil(t, item.CurrentPrice)
	assert.True(t, item.HasTarget())
	assert.Equal(t, StatusUnknown, item.Status())
}
