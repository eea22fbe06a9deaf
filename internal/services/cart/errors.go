package cart

import "errors"

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrItemNotFound   = errors.New("item not in cart")
)
