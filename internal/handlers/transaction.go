package handlers

import (
	"payquick/internal/logging"
	"payquick/internal/middleware"
	"payquick/internal/models"
	"payquick/internal/services/checkout"
	"payquick/internal/services/payment"
	"payquick/internal/utils/response"
	"payquick/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	gateway payment.Gateway
	log     logging.Logger
}

func NewTransactionHandler(gateway payment.Gateway, log logging.Logger) *TransactionHandler {
	return &TransactionHandler{gateway: gateway, log: log}
}

type refundRequest struct {
	Amount *float64 `json:"amount" validate:"omitnil,gt=0"`
}

func (h *TransactionHandler) GetLast(c *fiber.Ctx) error {
	tx := middleware.Session(c).LastTransaction()
	if tx == nil {
		return domainError(c, checkout.ErrNoTransaction)
	}
	return response.Success(c, "Last transaction", tx)
}

func (h *TransactionHandler) ClearLast(c *fiber.Ctx) error {
	middleware.Session(c).ClearTransaction(c.UserContext())
	return response.Success(c, "Transaction cleared", nil)
}

// own returns the caller's last transaction when its ID is id, with its
// gateway reference bound for gateways that need it.
func (h *TransactionHandler) own(c *fiber.Ctx) (*models.SecuredTransaction, bool) {
	tx := middleware.Session(c).LastTransaction()
	if tx == nil || tx.ID != c.Params("id") {
		return nil, false
	}
	payment.BindReference(h.gateway, tx)
	return tx, true
}

func (h *TransactionHandler) Verify(c *fiber.Ctx) error {
	tx, ok := h.own(c)
	if !ok {
		return domainError(c, checkout.ErrNoTransaction)
	}

	res, err := h.gateway.VerifyPayment(c.UserContext(), tx.ID)
	if err != nil {
		h.log.Warn(c.UserContext(), "verification failed", "transaction_id", tx.ID, "error", err)
		return domainError(c, err)
	}
	return response.Success(c, "Transaction verified", res)
}

// Refund defaults to the full amount of the transaction.
func (h *TransactionHandler) Refund(c *fiber.Ctx) error {
	tx, ok := h.own(c)
	if !ok {
		return domainError(c, checkout.ErrNoTransaction)
	}

	var input refundRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request format")
		}
	}
	v := validation.Struct(input)
	amount := tx.Amount
	if input.Amount != nil {
		amount = *input.Amount
		v.Check(amount <= tx.Amount, "amount", "must not exceed the transaction amount")
	}
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	res, err := h.gateway.RefundPayment(c.UserContext(), tx.ID, amount)
	if err != nil {
		h.log.Warn(c.UserContext(), "refund failed", "transaction_id", tx.ID, "error", err)
		return domainError(c, err)
	}
	h.log.Info(c.UserContext(), "refund issued", "transaction_id", tx.ID, "refund_id", res.RefundID)
	return response.Success(c, "Refund issued", res)
}
