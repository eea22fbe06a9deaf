package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"payquick/internal/logging"
	"payquick/internal/models"
	creditcard "payquick/internal/services/credit-card"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
	"github.com/stripe/stripe-go/v72/refund"
)

const declineInsufficientFunds = "insufficient_funds"

// StripeGateway charges cards through Stripe in test mode. Card numbers
// never leave the process: they are mapped to Stripe test tokens first.
type StripeGateway struct {
	chargeClient charge.Client
	refundClient refund.Client
	tokenizer    creditcard.Tokenizer
	now          func() time.Time
	log          logging.Logger

	mu        sync.RWMutex
	chargeIDs map[string]string // transaction ID -> charge ID
}

// NewStripeGateway uses backend when it is not nil, otherwise the default
// Stripe API backend.
func NewStripeGateway(key string, backend stripe.Backend, tokenizer creditcard.Tokenizer, log logging.Logger) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeGateway{
		chargeClient: charge.Client{B: backend, Key: key},
		refundClient: refund.Client{B: backend, Key: key},
		tokenizer:    tokenizer,
		now:          time.Now,
		log:          log,
		chargeIDs:    make(map[string]string),
	}
}

func toCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

func (g *StripeGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Transaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tok, err := g.tokenizer.Tokenize(req.CardInfo.Number)
	if err != nil {
		g.log.Warn(ctx, "stripe: card has no test token", "card_type", req.CardInfo.CardType)
		return nil, ErrInvalidCard
	}

	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(toCents(req.Total)),
		Currency:    stripe.String(strings.ToLower(currency)),
		Description: stripe.String("PayQuick checkout"),
	}
	params.Context = ctx
	if err := params.SetSource(tok); err != nil {
		return nil, ErrInvalidCard
	}

	ch, err := g.chargeClient.New(params)
	if err != nil {
		return nil, g.mapError(ctx, err)
	}

	id, err := newTransactionID()
	if err != nil {
		return nil, fmt.Errorf("generate transaction id: %w", err)
	}
	tx := newTransaction(req, id, g.now().UTC())
	tx.Reference = ch.ID

	g.BindReference(tx.ID, ch.ID)

	g.log.Info(ctx, "stripe charge created", "transaction_id", tx.ID, "charge_id", ch.ID, "amount", tx.Amount)
	return tx, nil
}

// mapError turns a Stripe failure into one of the gateway errors.
func (g *StripeGateway) mapError(ctx context.Context, err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		g.log.Error(ctx, "stripe request failed", "error", err)
		return ErrNetwork
	}

	g.log.Warn(ctx, "stripe charge refused",
		"type", stripeErr.Type,
		"code", stripeErr.Code,
		"decline_code", stripeErr.DeclineCode,
		"status", stripeErr.HTTPStatusCode,
	)

	if stripeErr.Type != stripe.ErrorTypeCard {
		return ErrNetwork
	}
	if string(stripeErr.DeclineCode) == declineInsufficientFunds || stripeErr.Code == stripe.ErrorCodeCardDeclined {
		return ErrInsufficientFunds
	}
	return ErrInvalidCard
}

// BindReference records chargeID as the Stripe charge of transactionID.
func (g *StripeGateway) BindReference(transactionID, chargeID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chargeIDs[transactionID] = chargeID
}

func (g *StripeGateway) chargeID(transactionID string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.chargeIDs[transactionID]
	return id, ok
}

func (g *StripeGateway) VerifyPayment(ctx context.Context, transactionID string) (*models.VerifyResult, error) {
	chID, ok := g.chargeID(transactionID)
	if !ok {
		return nil, ErrUnknownTransaction
	}

	params := &stripe.ChargeParams{}
	params.Context = ctx
	ch, err := g.chargeClient.Get(chID, params)
	if err != nil {
		return nil, g.mapError(ctx, err)
	}
	if !ch.Paid || ch.Refunded {
		return nil, ErrNotVerified
	}

	return &models.VerifyResult{
		TransactionID: transactionID,
		Status:        StatusVerified,
		Timestamp:     g.now().UTC(),
	}, nil
}

func (g *StripeGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (*models.RefundResult, error) {
	chID, ok := g.chargeID(transactionID)
	if !ok {
		return nil, ErrRefundNotFound
	}

	params := &stripe.RefundParams{
		Charge: stripe.String(chID),
		Amount: stripe.Int64(toCents(amount)),
	}
	params.Context = ctx
	re, err := g.refundClient.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return nil, ErrRefundNotFound
		}
		g.log.Error(ctx, "stripe refund failed", "transaction_id", transactionID, "error", err)
		return nil, ErrNetwork
	}

	id, err := newRefundID()
	if err != nil {
		return nil, fmt.Errorf("generate refund id: %w", err)
	}
	g.log.Info(ctx, "stripe refund created", "transaction_id", transactionID, "refund_id", re.ID)
	return &models.RefundResult{
		RefundID:              id,
		OriginalTransactionID: transactionID,
		Amount:                amount,
		Status:                StatusRefunded,
		Timestamp:             g.now().UTC(),
	}, nil
}
