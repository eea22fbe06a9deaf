package models

import "time"

// Transaction statuses
const (
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"
	TransactionStatusError   = "error"
)

// TransactionItem is a purchased line echoed back by the gateway.
type TransactionItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type PaymentMethod struct {
	Type     string   `json:"type"`
	CardType CardType `json:"cardType"`
	Last4    string   `json:"last4"`
}

// Transaction is the gateway's success response. CardInfo is the raw echo
// of the request and must be secured before it is stored anywhere.
type Transaction struct {
	ID            string            `json:"id"`
	Status        string            `json:"status"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	CardInfo      PaymentCardInfo   `json:"cardInfo"`
	CardLast4     string            `json:"cardLast4"`
	Timestamp     time.Time         `json:"timestamp"`
	Items         []TransactionItem `json:"items"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	Reference     string            `json:"reference,omitempty"` // Gateway-side reference, e.g. a Stripe charge ID
}

// SecuredTransaction is the only transaction form that reaches storage.
type SecuredTransaction struct {
	ID            string            `json:"id"`
	Status        string            `json:"status"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	CardInfo      SecuredCardInfo   `json:"cardInfo"`
	CardLast4     string            `json:"cardLast4"`
	Timestamp     time.Time         `json:"timestamp"`
	Items         []TransactionItem `json:"items"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	Reference     string            `json:"reference,omitempty"`
}

type VerifyResult struct {
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

type RefundResult struct {
	RefundID              string    `json:"refundId"`
	OriginalTransactionID string    `json:"originalTransactionId"`
	Amount                float64   `json:"amount"`
	Status                string    `json:"status"`
	Timestamp             time.Time `json:"timestamp"`
}
