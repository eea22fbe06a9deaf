// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"payquick/internal/handlers"
	"payquick/internal/logging"
	"payquick/internal/middleware"
	"payquick/internal/services/auth"
	"payquick/internal/services/checkout"
	"payquick/internal/services/payment"

	"github.com/gofiber/fiber/v2"
)

// Dependencies are the services the routes are wired to.
type Dependencies struct {
	Auth     *auth.Service
	Sessions *checkout.Manager
	Gateway  payment.Gateway
	Health   map[string]handlers.HealthCheck
	Log      logging.Logger
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.Sessions, deps.Health)
	sessionHandler := handlers.NewSessionHandler(deps.Auth, deps.Sessions, deps.Log)
	checkoutHandler := handlers.NewCheckoutHandler()
	cartHandler := handlers.NewCartHandler()
	transactionHandler := handlers.NewTransactionHandler(deps.Gateway, deps.Log)

	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/sessions", sessionHandler.CreateSession)

	sessionMiddleware := middleware.NewSessionMiddleware(deps.Auth, deps.Sessions, deps.Log)
	protected := api.Group("", sessionMiddleware.Handler)

	protected.Post("/sessions/refresh", sessionHandler.RefreshSession)

	setupCheckoutRoutes(protected, checkoutHandler)
	setupCartRoutes(protected, cartHandler)
	setupTransactionRoutes(protected, transactionHandler)
}

func setupCheckoutRoutes(router fiber.Router, h *handlers.CheckoutHandler) {
	flow := router.Group("/checkout")
	flow.Get("/", h.GetState)
	flow.Patch("/card", h.UpdateCard)
	flow.Post("/touch/:field", h.Touch)
	flow.Post("/backspace/:field", h.Backspace)
	flow.Post("/continue", h.Continue)
	flow.Post("/back", h.Back)
	flow.Post("/submit", h.Submit)
	flow.Post("/reset", h.Reset)
}

func setupCartRoutes(router fiber.Router, h *handlers.CartHandler) {
	cart := router.Group("/cart")
	cart.Get("/", h.GetCart)
	cart.Delete("/", h.ClearCart)
	cart.Post("/items", h.AddItem)
	cart.Patch("/items/:id", h.UpdateItem)
	cart.Delete("/items/:id", h.RemoveItem)
}

func setupTransactionRoutes(router fiber.Router, h *handlers.TransactionHandler) {
	tx := router.Group("/transactions")
	tx.Get("/last", h.GetLast)
	tx.Delete("/last", h.ClearLast)
	tx.Post("/:id/verify", h.Verify)
	tx.Post("/:id/refund", h.Refund)
}
