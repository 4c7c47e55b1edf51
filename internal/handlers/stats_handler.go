package handlers

import (
	"showcase/internal/middleware"
	"showcase/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StatsHandler serves catalog aggregates.
type StatsHandler struct {
	service *services.StatsService
	logger  zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  log.With().Str("handler", "stats").Logger(),
	}
}

// RegisterRoutes registers the public and admin stats routes.
func (h *StatsHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/stats", h.HandleGetStats)
	router.Get("/admin/stats", auth, h.HandleGetAdminStats)
}

func (h *StatsHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(stats)
}

func (h *StatsHandler) HandleGetAdminStats(c *fiber.Ctx) error {
	stats, err := h.service.GetAdminStats(c.UserContext(), middleware.CurrentAccountID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(stats)
}
