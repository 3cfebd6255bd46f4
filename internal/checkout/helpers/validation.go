package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseCardExpiry reads an MM/YY expiry into month and four-digit year.
func ParseCardExpiry(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("expiry must be MM/YY")
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("expiry month must be 01-12")
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("expiry year must be numeric")
	}
	return month, 2000 + year, nil
}

// CardExpired reports whether the card stopped being valid before now.
// A card stays valid through the last day of its expiry month.
func CardExpired(month, year int, now time.Time) bool {
	firstInvalid := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return !now.UTC().Before(firstInvalid)
}

// DigitsOnly strips the spaces and dashes shoppers type into card numbers.
func DigitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LastFour returns the final four digits of a card number.
func LastFour(cardNumber string) string {
	digits := DigitsOnly(cardNumber)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// NormalizeRegion upper-cases state and country codes.
func NormalizeRegion(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
