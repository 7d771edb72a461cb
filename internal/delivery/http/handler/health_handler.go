package handler

import (
	"context"
	"time"

	"skillswap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything with a liveness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler takes the database and an optional cache. Only the
// database decides the status code; the service runs without the cache.
func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	data := fiber.Map{"database": "ok", "cache": "disabled"}
	status := fiber.StatusOK

	if h.db == nil || h.db.Ping(ctx) != nil {
		data["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache != nil {
		data["cache"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			data["cache"] = "unavailable"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "", data)
	}
	return response.Success(c, status, response.MessageOK, data)
}
