package routes

import (
	"errors"
	"time"

	"payquick/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type AppConfig struct {
	AllowOrigins string
	// SessionsPerMinute caps session creation per client IP. Zero disables
	// the limit.
	SessionsPerMinute int
	AccessLog         bool
}

// NewApp builds the Fiber app with middleware and routes. Panics and
// unhandled errors never expose their details to the client.
func NewApp(cfg AppConfig, deps Dependencies) *fiber.App {
	log := deps.Log
	if log == nil {
		log = logging.Discard()
		deps.Log = log
	}

	app := fiber.New(fiber.Config{
		AppName: "PayQuick",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
				message = fe.Message
			} else {
				log.Error(c.UserContext(), "unhandled error", "path", c.Path(), "error", err)
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(recover.New())

	if cfg.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,HEAD,DELETE,PATCH",
		}))
	}

	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	if cfg.SessionsPerMinute > 0 {
		app.Use("/api/sessions", limiter.New(limiter.Config{
			Max:        cfg.SessionsPerMinute,
			Expiration: 1 * time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Method() != fiber.MethodPost || c.Path() != "/api/sessions"
			},
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	SetupRoutes(app, deps)
	return app
}
