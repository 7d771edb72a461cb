package handler

import (
	"errors"
	"strconv"

	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func parseUUIDParam(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// validationAppError reports the first invalid field with its message.
func validationAppError(err error) (*middleware.AppError, bool) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return nil, false
	}
	return middleware.NewAppError(fiber.StatusBadRequest, verr.Message, fiber.Map{"field": verr.Field}, err), true
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}

func internalError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
}
