package auth

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/validation"
)

var (
	ErrEmailAlreadyRegistered = errors.New("User already registered")
	ErrUsernameTaken          = errors.New("This username is already taken")
	ErrWeakPassword           = errors.New("weak password")
	ErrInvalidCredentials     = errors.New("Invalid email or password")
	ErrInternal               = errors.New("internal error")
)

const (
	MsgAlreadyRegistered = "An account with this email already exists. Please sign in instead."
	MsgWeakPassword      = "Password is too weak. Please use at least 8 characters with letters and numbers."
)

// SignUpInput fields are validated in declaration order and only the first
// failure is reported.
type SignUpInput struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=30,username"`
	FullName string `validate:"required"`
	Password string `validate:"min=6"`
}

var signUpMessages = validation.Messages{
	"Email.required":    "Email is required",
	"Email.email":       "Please enter a valid email address",
	"Username.required": "Username is required",
	"Username.min":      "Username must be at least 3 characters long",
	"Username.max":      "Username must be at most 30 characters long",
	"Username.username": "Username can only contain letters, numbers, and underscores",
	"FullName.required": "Full name is required",
	"Password.min":      "Password must be at least 6 characters long",
}

type SignInInput struct {
	Email    string
	Password string
}

type Usecase interface {
	SignUp(ctx context.Context, in SignUpInput) (user.User, error)
	SignIn(ctx context.Context, in SignInInput) (user.User, error)
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

// ValidateSignUp normalizes the input and checks it without touching the
// repository.
func ValidateSignUp(in SignUpInput) (SignUpInput, error) {
	in.Email = normalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.Join(strings.Fields(in.FullName), " ")

	if err := validation.Struct(in, signUpMessages); err != nil {
		return SignUpInput{}, err
	}
	if !isStrongPassword(in.Password) {
		return SignUpInput{}, ErrWeakPassword
	}
	return in, nil
}

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (user.User, error) {
	in, err := ValidateSignUp(in)
	if err != nil {
		return user.User{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}
	taken, err := s.users.UsernameTaken(ctx, in.Username)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if taken {
		return user.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Metadata: user.Metadata{
			Username: in.Username,
			FullName: in.FullName,
		},
	}

	if err := s.users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			return user.User{}, ErrEmailAlreadyRegistered
		case errors.Is(err, user.ErrUsernameUsed):
			return user.User{}, ErrUsernameTaken
		default:
			return user.User{}, ErrInternal
		}
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) SignIn(ctx context.Context, in SignInInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

// SignUpMessage turns a sign-up failure into the text shown to the user.
// Known errors are matched first. Foreign errors fall back to substring
// matching and otherwise pass through verbatim.
func SignUpMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrEmailAlreadyRegistered):
		return MsgAlreadyRegistered
	case errors.Is(err, ErrWeakPassword):
		return MsgWeakPassword
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "already registered"):
		return MsgAlreadyRegistered
	case strings.Contains(lower, "weak password"), strings.Contains(lower, "password should be"):
		return MsgWeakPassword
	}
	return msg
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isStrongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
