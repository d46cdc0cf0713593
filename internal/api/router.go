package api

import (
	"pocket-ledger/internal/api/handlers"
	"pocket-ledger/pkg/config"
	"pocket-ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	txHandler *handlers.TransactionHandler,
	sessionCfg config.SessionConfig,
	serverCfg config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Cookie",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	sessionGuard := middleware.SessionRequired(sessionCfg.CookieName, appLogger)

	transactions := app.Group("/transactions")
	transactions.Post("", txHandler.Create)
	transactions.Get("", sessionGuard, txHandler.List)
	// /summary must register before /:id or Fiber routes it as an id
	transactions.Get("/summary", sessionGuard, txHandler.Summary)
	transactions.Get("/:id", sessionGuard, txHandler.Get)

	return app
}
