package service

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// currencySymbols are stripped when they lead a price string.
const currencySymbols = "$€£¥₽₹₩₴"

// ParsePrice parses user-entered price text leniently: surrounding
// whitespace, one leading currency symbol and thousands separators are
// dropped before parsing. Empty, unparseable or negative input yields nil
// (an unset price); price parsing never fails an operation.
func ParsePrice(raw string) *decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if r, size := utf8.DecodeRuneInString(s); strings.ContainsRune(currencySymbols, r) {
		s = strings.TrimSpace(s[size:])
	}

	// "1,234.50" and "1 234.50" both mean 1234.50.
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	price, err := decimal.NewFromString(s)
	if err != nil || price.IsNegative() {
		return nil
	}
	return &price
}
