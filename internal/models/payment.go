package models

// PaymentItem is a cart line as sent to the payment gateway.
type PaymentItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// PaymentRequest is the gateway request body.
type PaymentRequest struct {
	CardInfo PaymentCardInfo `json:"cardInfo"`
	Items    []PaymentItem   `json:"items"`
	Total    float64         `json:"total"`
	Currency string          `json:"currency,omitempty"`
}

const (
	PaymentMethodCreditCard = "credit_card"
	DefaultCurrency         = "USD"
)
