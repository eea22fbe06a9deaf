package payment

import "math/rand"

// RandomOutcome rolls with math/rand.
type RandomOutcome struct{}

func (RandomOutcome) Roll() float64 {
	return rand.Float64()
}

// FixedOutcome always rolls the same value. Useful in tests and demos.
type FixedOutcome float64

func (f FixedOutcome) Roll() float64 {
	return float64(f)
}

// Cumulative thresholds: 10% declined, 5% network, 5% invalid card.
const (
	declineThreshold     = 0.10
	networkThreshold     = 0.15
	invalidCardThreshold = 0.20

	refundFailureThreshold = 0.05
)

func calcOutcome(roll float64) error {
	switch {
	case roll < declineThreshold:
		return ErrInsufficientFunds
	case roll < networkThreshold:
		return ErrNetwork
	case roll < invalidCardThreshold:
		return ErrInvalidCard
	default:
		return nil
	}
}

func calcRefundOutcome(roll float64) error {
	if roll < refundFailureThreshold {
		return ErrRefundNotFound
	}
	return nil
}
