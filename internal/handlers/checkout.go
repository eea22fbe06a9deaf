package handlers

import (
	"payquick/internal/middleware"
	"payquick/internal/models"
	"payquick/internal/services/checkout"
	creditcard "payquick/internal/services/credit-card"
	"payquick/internal/utils/response"
	"payquick/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

type updateCardRequest struct {
	Number     *string `json:"number" validate:"omitnil,max=32"`
	ExpiryDate *string `json:"expiryDate" validate:"omitnil,max=16"`
	CVV        *string `json:"cvv" validate:"omitnil,max=8"`
	HolderName *string `json:"holderName" validate:"omitnil,max=128"`
}

func (h *CheckoutHandler) GetState(c *fiber.Ctx) error {
	return response.Success(c, "Checkout state", middleware.Session(c).State())
}

func (h *CheckoutHandler) UpdateCard(c *fiber.Ctx) error {
	var input updateCardRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if v := validation.Struct(input); !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	return h.reply(c, "Card updated")(middleware.Session(c).UpdateCardInfo(models.CardInfoPatch{
		Number:     input.Number,
		ExpiryDate: input.ExpiryDate,
		CVV:        input.CVV,
		HolderName: input.HolderName,
	}))
}

func (h *CheckoutHandler) Touch(c *fiber.Ctx) error {
	field := creditcard.Field(c.Params("field"))
	return h.reply(c, "Field touched")(middleware.Session(c).Touch(field))
}

func (h *CheckoutHandler) Backspace(c *fiber.Ctx) error {
	field := creditcard.Field(c.Params("field"))
	return h.reply(c, "Field updated")(middleware.Session(c).Backspace(field))
}

func (h *CheckoutHandler) Continue(c *fiber.Ctx) error {
	return h.reply(c, "Review your payment")(middleware.Session(c).Continue())
}

func (h *CheckoutHandler) Back(c *fiber.Ctx) error {
	return h.reply(c, "Back to card details")(middleware.Session(c).Back())
}

func (h *CheckoutHandler) Reset(c *fiber.Ctx) error {
	return h.reply(c, "Checkout reset")(middleware.Session(c).Reset())
}

// Submit blocks until the gateway answers.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	s := middleware.Session(c)
	tx, err := s.Submit(c.UserContext())
	if err != nil {
		return domainErrorWithState(c, err, s.State())
	}
	return response.Success(c, "Payment successful", fiber.Map{
		"transaction": tx,
		"state":       s.State(),
	})
}

// reply writes the state returned by a session transition.
func (h *CheckoutHandler) reply(c *fiber.Ctx, message string) func(checkout.State, error) error {
	return func(state checkout.State, err error) error {
		if err != nil {
			return domainErrorWithState(c, err, state)
		}
		return response.Success(c, message, state)
	}
}
