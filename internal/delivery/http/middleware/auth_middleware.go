package middleware

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/session"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey      = "user_id"
	CtxEmailKey       = "email"
	CtxAccessTokenKey = "access_token"
)

// Authenticator resolves a bearer token. session.Manager implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (session.Identity, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		id, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrTokenRevoked):
				return NewAppError(fiber.StatusUnauthorized, "Session has ended", nil, err)
			case errors.Is(err, session.ErrInternal):
				return NewAppError(fiber.StatusInternalServerError, "", nil, err)
			default:
				return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
			}
		}

		c.Locals(CtxUserIDKey, id.UserID)
		c.Locals(CtxEmailKey, id.Email)
		c.Locals(CtxAccessTokenKey, token)

		return c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
