package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

type createReviewRequest struct {
	RevieweeID     uuid.UUID  `json:"reviewee_id"`
	SkillRequestID *uuid.UUID `json:"skill_request_id"`
	Rating         int16      `json:"rating"`
	Comment        string     `json:"comment"`
}

func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profiles/:username/reviews", h.ListForProfile)
}

func (h *ReviewHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/reviews", h.Create)
}

func (h *ReviewHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateReviewInput{
		RevieweeID:     req.RevieweeID,
		SkillRequestID: req.SkillRequestID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	})
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Created(c, "Review submitted", dto.NewReviewResponse(created))
}

func (h *ReviewHandler) ListForProfile(c fiber.Ctx) error {
	items, err := h.uc.ListForUsername(c.Context(), c.Params("username"))
	if err != nil {
		return mapReviewUsecaseError(err)
	}

	res := make([]dto.ReviewResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewReviewResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapReviewUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrSelfReview):
		return middleware.NewAppError(fiber.StatusBadRequest, "You cannot review yourself", nil, err)
	case errors.Is(err, usecase.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Rating must be between 1 and 5", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", nil, err)
	case errors.Is(err, usecase.ErrReviewNotAllowed):
		return middleware.NewAppError(fiber.StatusForbidden, "Reviews need a completed exchange between you both", nil, err)
	case errors.Is(err, usecase.ErrReviewAlreadyMade):
		return middleware.NewAppError(fiber.StatusConflict, "Review already submitted", nil, err)
	default:
		return internalError(err)
	}
}
