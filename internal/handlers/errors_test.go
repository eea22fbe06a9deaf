package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"payquick/internal/services/cart"
	"payquick/internal/services/checkout"
	"payquick/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{checkout.ErrInvalidCard, fiber.StatusUnprocessableEntity},
		{checkout.ErrEmptyCart, fiber.StatusUnprocessableEntity},
		{checkout.ErrPaymentInProgress, fiber.StatusConflict},
		{checkout.ErrWrongStep, fiber.StatusConflict},
		{checkout.ErrUnknownField, fiber.StatusBadRequest},
		{cart.ErrInvalidProduct, fiber.StatusBadRequest},
		{cart.ErrItemNotFound, fiber.StatusNotFound},
		{checkout.ErrNoTransaction, fiber.StatusNotFound},
		{payment.ErrRefundNotFound, fiber.StatusNotFound},
		{payment.ErrInsufficientFunds, fiber.StatusPaymentRequired},
		{payment.ErrNetwork, fiber.StatusPaymentRequired},
		{payment.ErrNotVerified, fiber.StatusConflict},
		{fmt.Errorf("charge: %w", context.DeadlineExceeded), fiber.StatusGatewayTimeout},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestMessageFor_HidesInternalErrors(t *testing.T) {
	err := errors.New("pq: connection refused")
	assert.Equal(t, "Internal server error", messageFor(err, statusFor(err)))
	assert.Equal(t, payment.ErrInvalidCard.Error(), messageFor(payment.ErrInvalidCard, statusFor(payment.ErrInvalidCard)))
}
