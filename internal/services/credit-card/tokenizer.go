package creditcard

import (
	"errors"

	"payquick/internal/models"
)

var ErrNoTestToken = errors.New("no test token for card")

// Tokenizer maps a card number to a processor token.
type Tokenizer interface {
	Tokenize(number string) (string, error)
}

// TestTokenizer resolves Stripe test-mode tokens. Well-known test numbers
// map to their exact token; any other number maps to its network's
// generic token.
type TestTokenizer struct {
	testCards map[string]string
	byNetwork map[models.CardType]string
}

func NewTestTokenizer() *TestTokenizer {
	return &TestTokenizer{
		testCards: map[string]string{
			"4242424242424242": "tok_visa",
			"4000056655665556": "tok_visa_debit",
			"5555555555554444": "tok_mastercard",
			"2223003122003222": "tok_mastercard",
			"5200828282828210": "tok_mastercard_debit",
			"378282246310005":  "tok_amex",
			"371449635398431":  "tok_amex",
			"4000000000000002": "tok_chargeDeclined",
			"4000000000009995": "tok_chargeDeclinedInsufficientFunds",
		},
		byNetwork: map[models.CardType]string{
			models.CardTypeVisa:       "tok_visa",
			models.CardTypeMasterCard: "tok_mastercard",
			models.CardTypeAmex:       "tok_amex",
		},
	}
}

func (t *TestTokenizer) Tokenize(number string) (string, error) {
	d := Digits(number)
	if tok, ok := t.testCards[d]; ok {
		return tok, nil
	}
	if tok, ok := t.byNetwork[DetectCardType(d)]; ok {
		return tok, nil
	}
	return "", ErrNoTestToken
}
