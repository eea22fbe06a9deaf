package utils

import (
	"crypto/rand"
	"errors"
	"io"
)

const upperAlphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var ErrInvalidLength = errors.New("length must be positive")

// RandomID returns prefix followed by n characters drawn uniformly from
// A-Z and 0-9, e.g. RandomID("TXN_", 9).
func RandomID(prefix string, n int) (string, error) {
	return randomIDFrom(rand.Reader, prefix, n)
}

func randomIDFrom(r io.Reader, prefix string, n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidLength
	}

	// Reject bytes past the largest multiple of the alphabet size so every
	// character is equally likely.
	const limit = 256 - 256%len(upperAlphanumeric)
	out := make([]byte, 0, len(prefix)+n)
	out = append(out, prefix...)
	buf := make([]byte, n)
	for len(out) < len(prefix)+n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, upperAlphanumeric[int(b)%len(upperAlphanumeric)])
			if len(out) == len(prefix)+n {
				break
			}
		}
	}
	return string(out), nil
}
