package creditcard

import (
	"strings"

	"payquick/internal/models"
)

// Digits strips every non-digit character.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// DetectCardType classifies a number by its prefix:
// 34/37 Amex, 4 Visa, 51-55 or 22-27 MasterCard.
func DetectCardType(number string) models.CardType {
	d := Digits(number)
	if d == "" {
		return models.CardTypeUnknown
	}

	switch {
	case d[0] == '3' && len(d) > 1 && (d[1] == '4' || d[1] == '7'):
		return models.CardTypeAmex
	case d[0] == '4':
		return models.CardTypeVisa
	case d[0] == '5' && len(d) > 1 && d[1] >= '1' && d[1] <= '5':
		return models.CardTypeMasterCard
	case d[0] == '2' && len(d) > 1 && d[1] >= '2' && d[1] <= '7':
		return models.CardTypeMasterCard
	}
	return models.CardTypeUnknown
}

// DisplayName is the network label used on the payment summary.
func DisplayName(t models.CardType) string {
	switch t {
	case models.CardTypeVisa:
		return "VISA"
	case models.CardTypeMasterCard:
		return "MasterCard"
	case models.CardTypeAmex:
		return "AmEx"
	default:
		return "Unknown"
	}
}

// CVVLength is the security code length for a network.
func CVVLength(t models.CardType) int {
	if t == models.CardTypeAmex {
		return AmexCVVDigits
	}
	return CVVDigits
}

// MaxInputLength is the visible length limit of the number field.
func MaxInputLength(t models.CardType) int {
	if t == models.CardTypeAmex {
		return MaxAmexCardInputLength
	}
	return MaxCardInputLength
}
