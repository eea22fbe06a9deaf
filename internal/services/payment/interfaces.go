package payment

import (
	"context"

	"payquick/internal/models"
)

// Gateway is the payment processor the checkout talks to.
type Gateway interface {
	// ProcessPayment charges the card. Failures are *Error values carrying
	// a user-facing message.
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Transaction, error)
	VerifyPayment(ctx context.Context, transactionID string) (*models.VerifyResult, error)
	RefundPayment(ctx context.Context, transactionID string, amount float64) (*models.RefundResult, error)
}

// ReferenceBinder is implemented by gateways that address a transaction by
// their own reference. BindReference restores that mapping from a
// persisted transaction, e.g. after a restart.
type ReferenceBinder interface {
	BindReference(transactionID, reference string)
}

// BindReference hands the stored reference of tx to g when g needs it.
func BindReference(g Gateway, tx *models.SecuredTransaction) {
	if b, ok := g.(ReferenceBinder); ok && tx != nil && tx.Reference != "" {
		b.BindReference(tx.ID, tx.Reference)
	}
}

// OutcomeSource draws the number in [0, 1) that decides a simulated
// outcome.
type OutcomeSource interface {
	Roll() float64
}
