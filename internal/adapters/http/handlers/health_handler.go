package handlers

import (
	"libralend/internal/adapters/memstore"
	"libralend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	books   *memstore.BookStore
	members *memstore.MemberStore
	history *memstore.HistoryStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(books *memstore.BookStore, members *memstore.MemberStore, history *memstore.HistoryStore) *HealthHandler {
	return &HealthHandler{books: books, members: members, history: history}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Tags Health
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 LibraLend API v1.0 is running",
		"mode":    config.AppConfig.AppMode,
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Tags Health
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api": "healthy",
		},
		"stats": fiber.Map{
			"books":        h.books.Count(),
			"members":      h.members.Count(),
			"issuances":    h.history.IssuanceCount(),
			"reservations": h.history.ReservationCount(),
		},
	})
}
