package checkout

import (
	"context"
	"time"

	"payquick/internal/logging"
	"payquick/internal/models"
	"payquick/internal/services/cart"
	creditcard "payquick/internal/services/credit-card"
	"payquick/internal/services/payment"

	"github.com/shopspring/decimal"
)

// Step is the position of a session in the checkout flow.
type Step string

const (
	StepCard    Step = "card"
	StepSummary Step = "summary"
	StepDone    Step = "done"
)

// Store persists encrypted values for one client.
type Store interface {
	Save(ctx context.Context, key string, v any) bool
	Retrieve(ctx context.Context, key string, dst any) bool
}

// Dependencies are shared by every session of a Manager.
type Dependencies struct {
	Validator *creditcard.Validator
	Gateway   payment.Gateway
	TaxRate   decimal.Decimal
	Currency  string
	Log       logging.Logger
}

// CardView is the card form as the client should render it.
type CardView struct {
	models.CardInfo
	CardType        models.CardType `json:"cardType"`
	CardTypeName    string          `json:"cardTypeName"`
	MaxNumberLength int             `json:"maxNumberLength"`
	CVVLength       int             `json:"cvvLength"`
}

// Summary is the review shown before payment. It never carries more than
// the last four digits of the number.
type Summary struct {
	MaskedNumber string      `json:"maskedNumber"`
	HolderName   string      `json:"holderName"`
	CardType     string      `json:"cardType"`
	Totals       cart.Totals `json:"totals"`
}

// State is a read-only view of a session.
type State struct {
	SessionID       string                     `json:"sessionId"`
	Step            Step                       `json:"step"`
	Card            CardView                   `json:"card"`
	Errors          creditcard.FieldErrors     `json:"errors"`
	IsValid         bool                       `json:"isValid"`
	Processing      bool                       `json:"processing"`
	Error           string                     `json:"error,omitempty"`
	Summary         *Summary                   `json:"summary,omitempty"`
	Cart            models.Cart                `json:"cart"`
	Totals          cart.Totals                `json:"totals"`
	LastTransaction *models.SecuredTransaction `json:"lastTransaction"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}
