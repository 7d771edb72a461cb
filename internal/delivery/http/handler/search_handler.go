package handler

import (
	"context"
	"errors"

	"skillswap/internal/pkg/response"
	"skillswap/internal/search"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SearchHandler struct {
	uc usecase.SearchUsecase
}

func NewSearchHandler(uc usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/search", h.Search)
}

// Search answers one query immediately. Debouncing belongs to the live
// search socket.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	results, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return internalError(err)
	}
	if results == nil {
		results = []search.Result{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, results)
}
