package payment

import (
	"context"
	"time"

	"payquick/internal/models"
	creditcard "payquick/internal/services/credit-card"
	"payquick/internal/utils"
)

const (
	transactionIDPrefix = "TXN_"
	refundIDPrefix      = "REF_"
	idLength            = 9

	StatusVerified = "verified"
	StatusRefunded = "refunded"
)

func validateRequest(req models.PaymentRequest) error {
	c := req.CardInfo
	if c.Number == "" || c.ExpiryDate == "" || c.CVV == "" || c.HolderName == "" {
		return ErrMissingInformation
	}
	return nil
}

// last4 returns the last four digits of a card number, ignoring the
// grouping spaces.
func last4(number string) string {
	s := creditcard.Digits(number)
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}

// newTransaction builds the success response for req. CardInfo is echoed
// back unchanged, CVV included.
func newTransaction(req models.PaymentRequest, id string, now time.Time) *models.Transaction {
	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}
	cardType := req.CardInfo.CardType
	if cardType == "" {
		cardType = models.CardTypeUnknown
	}

	items := make([]models.TransactionItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.TransactionItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return &models.Transaction{
		ID:        id,
		Status:    models.TransactionStatusSuccess,
		Amount:    req.Total,
		Currency:  currency,
		CardInfo:  req.CardInfo,
		CardLast4: last4(req.CardInfo.Number),
		Timestamp: now,
		Items:     items,
		PaymentMethod: models.PaymentMethod{
			Type:     models.PaymentMethodCreditCard,
			CardType: cardType,
			Last4:    last4(req.CardInfo.Number),
		},
	}
}

func newTransactionID() (string, error) {
	return utils.RandomID(transactionIDPrefix, idLength)
}

func newRefundID() (string, error) {
	return utils.RandomID(refundIDPrefix, idLength)
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
