package creditcard

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"payquick/internal/models"
)

var holderNameRegex = regexp.MustCompile(`^[\p{L}' -]+$`)

// ValidateCardNumber checks the digit count is within 13..19.
// There is no checksum check here; see LuhnValid.
func ValidateCardNumber(number string) bool {
	n := len(Digits(number))
	return n >= MinCardDigits && n <= MaxCardDigits
}

// LuhnValid reports whether the digits of number pass the Luhn checksum.
func LuhnValid(number string) bool {
	d := Digits(number)
	if d == "" {
		return false
	}

	var sum int
	shouldDouble := false
	for i := len(d) - 1; i >= 0; i-- {
		digit := int(d[i] - '0')
		if shouldDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		shouldDouble = !shouldDouble
	}
	return sum%10 == 0
}

// ValidateExpiryDate checks an MM/YY value against the wall clock now.
// The card is good through the whole of its expiry month.
func ValidateExpiryDate(expiry string, now time.Time) bool {
	d := Digits(expiry)
	if len(d) != ExpiryDigits {
		return false
	}

	month, err := strconv.Atoi(d[:2])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi("20" + d[2:])
	if err != nil {
		return false
	}

	currentYear, currentMonth, _ := now.Date()
	if year < currentYear || (year == currentYear && month < int(currentMonth)) {
		return false
	}
	return true
}

// ValidateCVV checks the code has 4 digits for Amex and 3 otherwise.
func ValidateCVV(cvv string, t models.CardType) bool {
	return len(Digits(cvv)) == CVVLength(t)
}

// ValidateHolderName accepts at least two letters, spaces, apostrophes or
// hyphens after trimming.
func ValidateHolderName(name string) bool {
	n := strings.TrimSpace(name)
	if utf8.RuneCountInString(n) < MinHolderNameLength {
		return false
	}
	return holderNameRegex.MatchString(n)
}

// Validator runs every field check over a card form.
type Validator struct {
	// Now is the wall clock; defaults to time.Now.
	Now func() time.Time
	// Luhn additionally requires the card number to pass the checksum.
	Luhn bool
}

func NewValidator(luhn bool) *Validator {
	return &Validator{Now: time.Now, Luhn: luhn}
}

// Validate recomputes the error of every field from scratch.
func (v *Validator) Validate(card models.CardInfo, t models.CardType) FieldErrors {
	now := time.Now
	if v != nil && v.Now != nil {
		now = v.Now
	}

	errs := FieldErrors{}
	numberOK := ValidateCardNumber(card.Number)
	if numberOK && v != nil && v.Luhn {
		numberOK = LuhnValid(card.Number)
	}
	errs.Check(numberOK, FieldNumber, MsgInvalidNumber)
	errs.Check(ValidateExpiryDate(card.ExpiryDate, now()), FieldExpiryDate, MsgInvalidExpiryDate)
	errs.Check(ValidateCVV(card.CVV, t), FieldCVV, MsgInvalidCVV)
	errs.Check(ValidateHolderName(card.HolderName), FieldHolderName, MsgInvalidHolderName)
	return errs
}
