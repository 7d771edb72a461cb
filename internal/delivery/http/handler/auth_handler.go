package handler

import (
	"context"
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/response"
	"skillswap/internal/session"
	ucauth "skillswap/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

// SessionService is the part of session.Manager the auth routes use.
type SessionService interface {
	SignUp(ctx context.Context, in ucauth.SignUpInput) (user.User, session.Tokens, error)
	SignIn(ctx context.Context, in ucauth.SignInInput) (user.User, session.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (session.Tokens, error)
	SignOut(ctx context.Context, accessToken, refreshToken string) error
}

type AuthHandler struct {
	sessions SessionService
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(sessions SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.SignUp)
	r.Post("/signin", h.SignIn)
	r.Post("/refresh", h.Refresh)
}

// RegisterProtectedRoutes expects r to run the auth middleware.
func (h *AuthHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signout", h.SignOut)
}

func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	var req signUpRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	usr, tokens, err := h.sessions.SignUp(c.Context(), ucauth.SignUpInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return mapSignUpError(err)
	}

	return response.Created(c, "Account created", dto.AuthResponse{
		User:          dto.NewUserResponse(usr),
		TokenResponse: dto.NewTokenResponse(tokens),
	})
}

func (h *AuthHandler) SignIn(c fiber.Ctx) error {
	var req signInRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	usr, tokens, err := h.sessions.SignIn(c.Context(), ucauth.SignInInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{
		User:          dto.NewUserResponse(usr),
		TokenResponse: dto.NewTokenResponse(tokens),
	})
}

// Refresh takes the refresh token from the body, falling back to the
// Authorization header.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest(err)
		}
	}
	tok := req.RefreshToken
	if tok == "" {
		tok, _ = middleware.BearerToken(c.Get("Authorization"))
	}
	if tok == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	tokens, err := h.sessions.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTokenResponse(tokens))
}

func (h *AuthHandler) SignOut(c fiber.Ctx) error {
	access, _ := c.Locals(middleware.CtxAccessTokenKey).(string)

	var req refreshRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest(err)
		}
	}

	if err := h.sessions.SignOut(c.Context(), access, req.RefreshToken); err != nil {
		return mapAuthError(err)
	}
	return response.Success(c, fiber.StatusOK, "Signed out", nil)
}

// mapSignUpError shows the user-facing copy for every sign-up failure the
// user can act on.
func mapSignUpError(err error) error {
	if appErr, ok := validationAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, ucauth.ErrWeakPassword):
		return middleware.NewAppError(fiber.StatusBadRequest, ucauth.SignUpMessage(err), nil, err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, ucauth.SignUpMessage(err), nil, err)
	case errors.Is(err, ucauth.ErrUsernameTaken):
		return middleware.NewAppError(fiber.StatusConflict, ucauth.SignUpMessage(err), nil, err)
	default:
		return mapAuthError(err)
	}
}

func mapAuthError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, session.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, session.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, session.ErrTokenRevoked):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Session has ended", nil, err)
	case errors.Is(err, session.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, session.ErrClosed):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Service is shutting down", nil, err)
	default:
		return internalError(err)
	}
}
