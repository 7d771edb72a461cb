package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	directory usecase.DirectoryUsecase
	profiles  usecase.ProfileUsecase
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Location  *string `json:"location"`
}

func NewProfileHandler(directory usecase.DirectoryUsecase, profiles usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{directory: directory, profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/profiles")
	grp.Get("/", h.List)
	grp.Get("/:username", h.Get)
}

func (h *ProfileHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

// List serves the directory: GET /profiles?page=&q=&skill=
func (h *ProfileHandler) List(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid page", nil, err)
	}

	res, err := h.directory.ListProfiles(c.Context(), usecase.DirectoryParams{
		Page:  page,
		Query: c.Query("q"),
		Skill: c.Query("skill"),
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDirectoryResponse(res))
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	detail, err := h.profiles.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileDetailResponse(detail))
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	detail, err := h.profiles.GetMe(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileDetailResponse(detail))
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.profiles.UpdateMe(c.Context(), userID, usecase.UpdateProfileInput{
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Location:  req.Location,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", dto.NewProfileResponse(updated))
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := validationAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	default:
		return internalError(err)
	}
}
