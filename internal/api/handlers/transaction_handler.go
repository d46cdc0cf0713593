package handlers

import (
	"errors"
	"time"

	"pocket-ledger/internal/dto"
	"pocket-ledger/internal/service"
	"pocket-ledger/pkg/config"
	"pocket-ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	session   config.SessionConfig
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, session config.SessionConfig, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		session:   session,
		logger:    logger,
	}
}

// Create godoc
// @Summary Create a transaction
// @Description Record a credit or debit; mints a session cookie when the request carries none
// @Tags transactions
// @Accept json
// @Param request body dto.CreateTransactionRequest true "Transaction payload"
// @Success 201
// @Failure 400 {object} map[string]interface{}
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sessionID := c.Cookies(h.session.CookieName)
	minted := sessionID == ""
	if minted {
		sessionID = uuid.NewString()
	}

	if err := h.txService.Create(c.Context(), sessionID, &req); err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Validation failed",
				"details": vErr.Fields,
			})
		}
		h.logger.Error("Failed to create transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create transaction",
		})
	}

	// The minted token rides back on the response so the client can
	// authenticate its later reads
	if minted {
		c.Cookie(&fiber.Cookie{
			Name:    h.session.CookieName,
			Value:   sessionID,
			Path:    "/",
			MaxAge:  int(h.session.TTL.Seconds()),
			Expires: time.Now().Add(h.session.TTL),
		})
	}

	return c.SendStatus(fiber.StatusCreated)
}

// List godoc
// @Summary List the session's transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	sessionID := middleware.SessionFromCtx(c)

	resp, err := h.txService.List(c.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list transactions",
		})
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get one transaction by id
// @Description The transaction field is null when no row matches the session and id
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Success 200 {object} dto.GetTransactionResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	sessionID := middleware.SessionFromCtx(c)

	resp, err := h.txService.Get(c.Context(), sessionID, c.Params("id"))
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Validation failed",
				"details": vErr.Fields,
			})
		}
		h.logger.Error("Failed to get transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get transaction",
		})
	}

	return c.JSON(resp)
}

// Summary godoc
// @Summary Net balance of the session
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 401 {object} map[string]string
// @Router /transactions/summary [get]
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	sessionID := middleware.SessionFromCtx(c)

	resp, err := h.txService.Summary(c.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to compute summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute summary",
		})
	}

	return c.JSON(resp)
}
