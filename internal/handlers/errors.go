package handlers

import (
	"context"
	"errors"

	"payquick/internal/services/cart"
	"payquick/internal/services/checkout"
	"payquick/internal/services/payment"
	"payquick/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a domain error to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, checkout.ErrInvalidCard), errors.Is(err, checkout.ErrEmptyCart):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, checkout.ErrPaymentInProgress), errors.Is(err, checkout.ErrWrongStep):
		return fiber.StatusConflict
	case errors.Is(err, checkout.ErrUnknownField), errors.Is(err, cart.ErrInvalidProduct):
		return fiber.StatusBadRequest
	case errors.Is(err, cart.ErrItemNotFound), errors.Is(err, checkout.ErrNoTransaction),
		errors.Is(err, payment.ErrUnknownTransaction), errors.Is(err, payment.ErrRefundNotFound):
		return fiber.StatusNotFound
	case payment.IsGatewayError(err):
		return fiber.StatusPaymentRequired
	case errors.Is(err, payment.ErrNotVerified):
		return fiber.StatusConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(err error, status int) string {
	switch status {
	case fiber.StatusInternalServerError:
		return "Internal server error"
	case fiber.StatusGatewayTimeout:
		return "Payment gateway timed out"
	default:
		return err.Error()
	}
}

func domainError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	return response.Error(c, status, messageFor(err, status))
}

func domainErrorWithState(c *fiber.Ctx, err error, state checkout.State) error {
	status := statusFor(err)
	return response.ErrorWithData(c, status, messageFor(err, status), state)
}
