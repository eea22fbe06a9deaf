package creditcard

import (
	"strconv"
	"strings"

	"payquick/internal/models"
)

// FormatCardNumber groups digits for display: Amex as 4-6-5 (at most 15
// digits), everything else in groups of 4 (at most 19 digits). It does not
// validate.
func FormatCardNumber(number string) string {
	d := Digits(number)

	if DetectCardType(d) == models.CardTypeAmex {
		d = truncate(d, AmexCardDigits)
		return joinGroups(d, 4, 6, 5)
	}

	d = truncate(d, MaxCardDigits)
	groups := make([]string, 0, len(d)/4+1)
	for len(d) > 4 {
		groups = append(groups, d[:4])
		d = d[4:]
	}
	if d != "" {
		groups = append(groups, d)
	}
	return strings.Join(groups, " ")
}

func joinGroups(d string, sizes ...int) string {
	groups := make([]string, 0, len(sizes))
	for _, n := range sizes {
		if d == "" {
			break
		}
		part := truncate(d, n)
		groups = append(groups, part)
		d = d[len(part):]
	}
	return strings.Join(groups, " ")
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// FormatExpiryDate inserts the MM/YY separator once two digits are present.
// Month range is not checked here.
func FormatExpiryDate(expiry string) string {
	d := Digits(expiry)
	if len(d) < 2 {
		return d
	}
	return d[:2] + "/" + truncate(d[2:], 2)
}

// NormalizeExpiryInput turns the raw text of the expiry field into its
// display value. A leading digit above 1 cannot start a month and gets a
// 0 prefix; a two-digit month above 12 is clamped to 12.
func NormalizeExpiryInput(text string) string {
	d := truncate(Digits(text), ExpiryDigits)

	next := d
	if len(d) >= 3 {
		next = d[:2] + "/" + d[2:]
	}
	if len(d) >= 1 && d[0] > '1' {
		next = "0" + d[:1]
		if len(d) > 1 {
			next += "/" + truncate(d[1:], 2)
		}
	}
	if len(d) >= 2 {
		if mm, err := strconv.Atoi(next[:2]); err == nil && mm > 12 {
			next = "12" + next[2:]
		}
	}
	return next
}

// NormalizeCVV keeps digits only, up to the network's code length.
func NormalizeCVV(text string, t models.CardType) string {
	return truncate(Digits(text), CVVLength(t))
}

// Backspace deletes the last character of a formatted value. A separator
// left dangling at the end is deleted with it, so backspacing across
// "12/" or "4111 " never leaves the cursor stuck behind the separator.
func Backspace(value string) string {
	if value == "" {
		return value
	}
	value = value[:len(value)-1]
	return strings.TrimRight(value, " /")
}
