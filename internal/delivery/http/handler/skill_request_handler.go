package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/exchange"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillRequestHandler struct {
	uc usecase.SkillRequestUsecase
}

type createSkillRequestRequest struct {
	ProviderID       uuid.UUID  `json:"provider_id"`
	RequestedSkillID uuid.UUID  `json:"requested_skill_id"`
	OfferedSkillID   *uuid.UUID `json:"offered_skill_id"`
	Message          string     `json:"message"`
}

type updateSkillRequestStatusRequest struct {
	Status string `json:"status"`
}

func NewSkillRequestHandler(uc usecase.SkillRequestUsecase) *SkillRequestHandler {
	return &SkillRequestHandler{uc: uc}
}

// RegisterRoutes expects r to run the auth middleware.
func (h *SkillRequestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/requests")
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Patch("/:id", h.UpdateStatus)
}

func (h *SkillRequestHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createSkillRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateSkillRequestInput{
		ProviderID:       req.ProviderID,
		RequestedSkillID: req.RequestedSkillID,
		OfferedSkillID:   req.OfferedSkillID,
		Message:          req.Message,
	})
	if err != nil {
		return mapSkillRequestUsecaseError(err)
	}
	return response.Created(c, "Request sent", dto.NewSkillRequestResponse(created))
}

// List serves GET /requests?box=incoming|outgoing.
func (h *SkillRequestHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, c.Query("box"))
	if err != nil {
		return mapSkillRequestUsecaseError(err)
	}

	res := make([]dto.SkillRequestResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewSkillRequestResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillRequestHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateSkillRequestStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.uc.UpdateStatus(c.Context(), userID, id, req.Status)
	if err != nil {
		return mapSkillRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Request "+string(updated.Status), dto.NewSkillRequestResponse(updated))
}

func mapSkillRequestUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrSelfRequest):
		return middleware.NewAppError(fiber.StatusBadRequest, "You cannot request an exchange with yourself", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", fiber.Map{"allowed": []exchange.Status{
			exchange.StatusAccepted, exchange.StatusDeclined, exchange.StatusCompleted, exchange.StatusCancelled,
		}}, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Status change not allowed", nil, err)
	default:
		return internalError(err)
	}
}
