package checkout

import "errors"

var (
	ErrInvalidCard       = errors.New("card details are invalid")
	ErrPaymentInProgress = errors.New("payment already in progress")
	ErrWrongStep         = errors.New("operation not allowed at this checkout step")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrUnknownField      = errors.New("unknown card field")
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrNoTransaction     = errors.New("no transaction recorded")
)
