package handlers

import (
	"payquick/internal/middleware"
	"payquick/internal/models"
	"payquick/internal/utils/response"
	"payquick/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

type productInput struct {
	ID          string  `json:"id" validate:"required,max=64"`
	Name        string  `json:"name" validate:"required,max=256"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type addItemRequest struct {
	Product productInput `json:"product"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"lte=999"`
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	return response.Success(c, "Cart retrieved", middleware.Session(c).Cart())
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	s := middleware.Session(c)

	var input addItemRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if v := validation.Struct(input); !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	p := input.Product
	snap, err := s.AddItem(c.UserContext(), models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		Rating:      p.Rating,
		Stock:       p.Stock,
	})
	if err != nil {
		return domainError(c, err)
	}
	return response.Success(c, "Item added to cart", snap)
}

// UpdateItem sets the quantity of a line; zero or less removes it.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	s := middleware.Session(c)

	var input updateQuantityRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if v := validation.Struct(input); !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	snap, err := s.UpdateItemQuantity(c.UserContext(), c.Params("id"), input.Quantity)
	if err != nil {
		return domainError(c, err)
	}
	return response.Success(c, "Cart updated", snap)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	s := middleware.Session(c)

	snap, err := s.RemoveItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return response.Success(c, "Item removed from cart", snap)
}

func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	snap, err := middleware.Session(c).ClearCart(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return response.Success(c, "Cart cleared", snap)
}
