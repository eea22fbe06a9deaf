// Package creditcard classifies, formats and validates card form input.
//
// Every function here is pure and total: inputs are reduced to their digit
// (or trimmed) projection first and no function returns an error.
package creditcard

// Field names one input of the card form.
type Field string

const (
	FieldNumber     Field = "number"
	FieldExpiryDate Field = "expiryDate"
	FieldCVV        Field = "cvv"
	FieldHolderName Field = "holderName"
)

// Fields lists every card form field in display order.
var Fields = []Field{FieldNumber, FieldExpiryDate, FieldCVV, FieldHolderName}

// Length limits
const (
	MinCardDigits  = 13
	MaxCardDigits  = 19
	AmexCardDigits = 15

	// With separators: 16 digits + 3 spaces, 15 digits + 2 spaces.
	MaxCardInputLength     = 19
	MaxAmexCardInputLength = 17

	ExpiryMaxLength = 5 // MM/YY
	ExpiryDigits    = 4

	CVVDigits     = 3
	AmexCVVDigits = 4

	MinHolderNameLength = 2
)

// Error messages shown next to invalid fields.
const (
	MsgInvalidNumber     = "Invalid card number"
	MsgInvalidExpiryDate = "Invalid expiry date"
	MsgInvalidCVV        = "Invalid CVV"
	MsgInvalidHolderName = "Invalid cardholder name"
)
