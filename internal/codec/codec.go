package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wishwatch/wishwatch/internal/models"
)

// ErrMalformedRecord indicates a persisted record that cannot be decoded
// back into a wish item.
var ErrMalformedRecord = errors.New("malformed record")

// record is the flat persisted representation of one wish item. Pointers
// distinguish absent/null fields. Prices travel as raw JSON so that decoding
// keeps unconstrained precision and can reject non-numeric types strictly
// (json.Number would silently accept a quoted numeric string).
type record struct {
	URL          *string          `json:"url"`
	AddedAt      *string          `json:"addedAt"`
	CurrentPrice *json.RawMessage `json:"currentPrice"`
	TargetPrice  *json.RawMessage `json:"targetPrice"`
}

// Encode serializes a wish item into a self-contained record string.
func Encode(item models.WishItem) (string, error) {
	addedAt := item.AddedAt.Format(time.RFC3339Nano)
	rec := record{
		URL:          &item.URL,
		AddedAt:      &addedAt,
		CurrentPrice: priceJSON(item.CurrentPrice),
		TargetPrice:  priceJSON(item.TargetPrice),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode wish item: %w", err)
	}
	return string(data), nil
}

// Decode is the inverse of Encode. It fails with ErrMalformedRecord when the
// record is not valid JSON, the url is missing or not a string, the addedAt
// timestamp does not parse, or a price field carries a non-numeric type.
// Absent or null prices decode to nil.
func Decode(raw string) (models.WishItem, error) {
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return models.WishItem{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	if rec.URL == nil {
		return models.WishItem{}, fmt.Errorf("%w: url field missing", ErrMalformedRecord)
	}
	if rec.AddedAt == nil {
		return models.WishItem{}, fmt.Errorf("%w: addedAt field missing", ErrMalformedRecord)
	}

	addedAt, err := time.Parse(time.RFC3339Nano, *rec.AddedAt)
	if err != nil {
		return models.WishItem{}, fmt.Errorf("%w: bad addedAt timestamp: %v", ErrMalformedRecord, err)
	}

	current, err := decodePrice(rec.CurrentPrice)
	if err != nil {
		return models.WishItem{}, fmt.Errorf("%w: bad currentPrice: %v", ErrMalformedRecord, err)
	}
	target, err := decodePrice(rec.TargetPrice)
	if err != nil {
		return models.WishItem{}, fmt.Errorf("%w: bad targetPrice: %v", ErrMalformedRecord, err)
	}

	return models.WishItem{
		URL:          *rec.URL,
		AddedAt:      addedAt,
		CurrentPrice: current,
		TargetPrice:  target,
	}, nil
}

func priceJSON(price *decimal.Decimal) *json.RawMessage {
	if price == nil {
		return nil
	}
	raw := json.RawMessage(price.String())
	return &raw
}

func decodePrice(raw *json.RawMessage) (*decimal.Decimal, error) {
	if raw == nil || bytes.Equal(bytes.TrimSpace(*raw), []byte("null")) {
		return nil, nil
	}
	d, err := decimal.NewFromString(string(bytes.TrimSpace(*raw)))
	if err != nil {
		return nil, err
	}
	return &d, nil
}
