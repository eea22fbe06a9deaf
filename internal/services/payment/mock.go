package payment

import (
	"context"
	"fmt"
	"time"

	"payquick/internal/logging"
	"payquick/internal/models"
)

// MockConfig holds the simulated latencies of MockGateway.
type MockConfig struct {
	ProcessDelay time.Duration
	VerifyDelay  time.Duration
	RefundDelay  time.Duration
}

func DefaultMockConfig() MockConfig {
	return MockConfig{
		ProcessDelay: 2 * time.Second,
		VerifyDelay:  time.Second,
		RefundDelay:  1500 * time.Millisecond,
	}
}

// MockGateway simulates a remote processor. After its delay a charge fails
// 20% of the time, split between insufficient funds, network and invalid
// card errors, as decided by the outcome source.
type MockGateway struct {
	cfg    MockConfig
	source OutcomeSource
	now    func() time.Time
	log    logging.Logger
}

func NewMockGateway(cfg MockConfig, source OutcomeSource, log logging.Logger) *MockGateway {
	if source == nil {
		source = RandomOutcome{}
	}
	return &MockGateway{
		cfg:    cfg,
		source: source,
		now:    time.Now,
		log:    log,
	}
}

func (g *MockGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Transaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := wait(ctx, g.cfg.ProcessDelay); err != nil {
		return nil, err
	}

	if err := calcOutcome(g.source.Roll()); err != nil {
		g.log.Info(ctx, "mock payment failed", "reason", err.Error(), "amount", req.Total)
		return nil, err
	}

	id, err := newTransactionID()
	if err != nil {
		return nil, fmt.Errorf("generate transaction id: %w", err)
	}
	tx := newTransaction(req, id, g.now().UTC())
	g.log.Info(ctx, "mock payment succeeded", "transaction_id", tx.ID, "amount", tx.Amount, "currency", tx.Currency)
	return tx, nil
}

// VerifyPayment always succeeds.
func (g *MockGateway) VerifyPayment(ctx context.Context, transactionID string) (*models.VerifyResult, error) {
	if err := wait(ctx, g.cfg.VerifyDelay); err != nil {
		return nil, err
	}
	return &models.VerifyResult{
		TransactionID: transactionID,
		Status:        StatusVerified,
		Timestamp:     g.now().UTC(),
	}, nil
}

// RefundPayment fails 5% of the time with ErrRefundNotFound.
func (g *MockGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (*models.RefundResult, error) {
	if err := wait(ctx, g.cfg.RefundDelay); err != nil {
		return nil, err
	}
	if err := calcRefundOutcome(g.source.Roll()); err != nil {
		return nil, err
	}

	id, err := newRefundID()
	if err != nil {
		return nil, fmt.Errorf("generate refund id: %w", err)
	}
	return &models.RefundResult{
		RefundID:              id,
		OriginalTransactionID: transactionID,
		Amount:                amount,
		Status:                StatusRefunded,
		Timestamp:             g.now().UTC(),
	}, nil
}
