package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skillswap/internal/domain/user"
)

type mockUserRepo struct {
	byEmail   map[string]user.User
	usernames map[string]bool
	createErr error
	calls     int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: map[string]user.User{}, usernames: map[string]bool{}}
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	m.calls++
	if m.createErr != nil {
		return m.createErr
	}
	m.byEmail[u.Email] = u
	m.usernames[strings.ToLower(u.Metadata.Username)] = true
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.calls++
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	m.calls++
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.calls++
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) UsernameTaken(_ context.Context, username string) (bool, error) {
	m.calls++
	return m.usernames[strings.ToLower(username)], nil
}

func validInput() SignUpInput {
	return SignUpInput{Email: "ana@example.com", Username: "ana_b", FullName: "Ana B", Password: "secret123"}
}

func TestSignUp_ShortUsernameBlocksBeforeRepository(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	in := validInput()
	in.Username = "ab"
	_, err := svc.SignUp(context.Background(), in)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if got := SignUpMessage(err); got != "Username must be at least 3 characters long" {
		t.Fatalf("unexpected message %q", got)
	}
	if repo.calls != 0 {
		t.Fatalf("expected no repository call, got %d", repo.calls)
	}
}

func TestSignUp_ValidationMessages(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SignUpInput)
		want   string
	}{
		{"email required", func(in *SignUpInput) { in.Email = "  " }, "Email is required"},
		{"email format", func(in *SignUpInput) { in.Email = "ana@" }, "Please enter a valid email address"},
		{"username required", func(in *SignUpInput) { in.Username = "" }, "Username is required"},
		{"username long", func(in *SignUpInput) { in.Username = strings.Repeat("a", 31) }, "Username must be at most 30 characters long"},
		{"username charset", func(in *SignUpInput) { in.Username = "ana-b" }, "Username can only contain letters, numbers, and underscores"},
		{"full name", func(in *SignUpInput) { in.FullName = " " }, "Full name is required"},
		{"password short", func(in *SignUpInput) { in.Password = "abc" }, "Password must be at least 6 characters long"},
		{"password weak", func(in *SignUpInput) { in.Password = "abcdefgh" }, MsgWeakPassword},
		{"first field wins", func(in *SignUpInput) { in.Email = ""; in.Username = "x" }, "Email is required"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newMockUserRepo()
			in := validInput()
			c.mutate(&in)
			_, err := NewService(repo).SignUp(context.Background(), in)
			if got := SignUpMessage(err); got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
			if repo.calls != 0 {
				t.Fatalf("expected no repository call")
			}
		})
	}
}

func TestSignUp_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	in := validInput()
	in.Email = " Ana@Example.com "
	u, err := svc.SignUp(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "ana@example.com" || u.Metadata.Username != "ana_b" {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must not be returned")
	}
	stored := repo.byEmail["ana@example.com"]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestSignUp_DuplicateEmailAndUsername(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	if _, err := svc.SignUp(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := svc.SignUp(context.Background(), validInput())
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
	if SignUpMessage(err) != MsgAlreadyRegistered {
		t.Fatalf("unexpected message %q", SignUpMessage(err))
	}

	in := validInput()
	in.Email = "other@example.com"
	in.Username = "ANA_B"
	_, err = svc.SignUp(context.Background(), in)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestSignUp_RaceOnInsertMapsConstraint(t *testing.T) {
	repo := newMockUserRepo()
	repo.createErr = user.ErrEmailTaken
	_, err := NewService(repo).SignUp(context.Background(), validInput())
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestSignIn(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	if _, err := svc.SignUp(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := svc.SignIn(context.Background(), SignInInput{Email: "ANA@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.SignIn(context.Background(), SignInInput{Email: "ana@example.com", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignIn(context.Background(), SignInInput{Email: "ghost@example.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignUpMessage_ForeignErrors(t *testing.T) {
	cases := map[string]string{
		"User already registered":                   MsgAlreadyRegistered,
		"AuthApiError: email ALREADY REGISTERED":    MsgAlreadyRegistered,
		"weak password: too short":                  MsgWeakPassword,
		"Password should be at least 6 characters.": MsgWeakPassword,
		"Signups not allowed for this instance":     "Signups not allowed for this instance",
	}
	for in, want := range cases {
		if got := SignUpMessage(errors.New(in)); got != want {
			t.Fatalf("SignUpMessage(%q) = %q, want %q", in, got, want)
		}
	}
	if SignUpMessage(nil) != "" {
		t.Fatalf("expected empty message for nil")
	}
}
