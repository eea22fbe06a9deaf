package payment

import "errors"

// Error is a gateway failure. Message is shown to the user as is.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrMissingInformation = &Error{Message: "Missing required payment information"}
	ErrInsufficientFunds  = &Error{Message: "Payment declined: Insufficient funds"}
	ErrNetwork            = &Error{Message: "Network error: Please try again"}
	ErrInvalidCard        = &Error{Message: "Invalid card information"}
	ErrRefundNotFound     = &Error{Message: "Refund failed: Transaction not found"}
)

var (
	ErrUnknownTransaction = errors.New("transaction not found")
	ErrNotVerified        = errors.New("transaction could not be verified")
)

// IsGatewayError reports whether err is one of the gateway failures above.
func IsGatewayError(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr)
}
