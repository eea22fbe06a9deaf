package security

import (
	"strings"

	"payquick/internal/models"
)

// SecureCardNumber reduces a card number to its mask, hash and last four
// digits. 15-digit numbers mask as 4-6-5, 16-digit numbers as 4-4-4-4, and
// any other length hides everything but the last four in groups of four.
func SecureCardNumber(number string) models.SecuredCardNumber {
	clean := strings.Join(strings.Fields(number), "")

	last4 := clean
	if len(clean) > 4 {
		last4 = clean[len(clean)-4:]
	}

	var masked string
	switch len(clean) {
	case 15:
		masked = "**** ****** *" + last4
	case 16:
		masked = "**** **** **** " + last4
	default:
		hidden := maskGroups(len(clean) - len(last4))
		masked = strings.TrimSpace(hidden + " " + last4)
	}

	return models.SecuredCardNumber{
		Masked: masked,
		Hash:   HashData(clean),
		Last4:  last4,
	}
}

func maskGroups(n int) string {
	groups := make([]string, 0, n/4+1)
	for n > 0 {
		size := 4
		if n < size {
			size = n
		}
		groups = append(groups, strings.Repeat("*", size))
		n -= size
	}
	return strings.Join(groups, " ")
}

// SecurePaymentData is the securing transform applied to a successful
// gateway response before it is persisted: the card number becomes a
// SecuredCardNumber, the CVV is dropped and everything else passes through.
func SecurePaymentData(tx models.Transaction) models.SecuredTransaction {
	items := make([]models.TransactionItem, len(tx.Items))
	copy(items, tx.Items)

	return models.SecuredTransaction{
		ID:       tx.ID,
		Status:   tx.Status,
		Amount:   tx.Amount,
		Currency: tx.Currency,
		CardInfo: models.SecuredCardInfo{
			Number:     SecureCardNumber(tx.CardInfo.Number),
			ExpiryDate: tx.CardInfo.ExpiryDate,
			HolderName: tx.CardInfo.HolderName,
			CardType:   tx.CardInfo.CardType,
		},
		CardLast4:     tx.CardLast4,
		Timestamp:     tx.Timestamp,
		Items:         items,
		PaymentMethod: tx.PaymentMethod,
		Reference:     tx.Reference,
	}
}

// ValidateTransactionData reports whether a loaded transaction carries the
// fields every consumer relies on.
func ValidateTransactionData(tx *models.SecuredTransaction) bool {
	return tx != nil && tx.ID != "" && tx.Status != "" && !tx.Timestamp.IsZero()
}
