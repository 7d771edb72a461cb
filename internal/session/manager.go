package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/jwt"
	ucauth "skillswap/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrClosed              = errors.New("session manager closed")
	ErrInternal            = errors.New("internal error")
)

type EventType string

const (
	EventSignedUp  EventType = "signed_up"
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

type Event struct {
	Type   EventType
	UserID uuid.UUID
	At     time.Time
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Identity is the caller behind a valid access token.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Revocations stores revoked token ids until the tokens would have expired
// anyway.
type Revocations interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Manager owns the authentication lifecycle. One Manager is built at start
// and passed to everything that needs the current caller; nothing reads
// session state from package globals.
type Manager struct {
	auth    ucauth.Usecase
	users   user.Repository
	tokens  jwt.Service
	revoked Revocations
	logger  *log.Logger
	now     func() time.Time

	mu     sync.RWMutex
	subs   map[int]func(Event)
	nextID int
	closed bool
}

func NewManager(auth ucauth.Usecase, users user.Repository, tokens jwt.Service, revoked Revocations, logger *log.Logger) *Manager {
	return &Manager{
		auth:    auth,
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		logger:  logger,
		now:     time.Now,
		subs:    map[int]func(Event){},
	}
}

func (m *Manager) SignUp(ctx context.Context, in ucauth.SignUpInput) (user.User, Tokens, error) {
	if err := m.checkOpen(); err != nil {
		return user.User{}, Tokens{}, err
	}
	usr, err := m.auth.SignUp(ctx, in)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	tokens, err := m.issue(usr.ID, usr.Email)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	m.logf("[Auth] signed up | user_id=%s", usr.ID)
	m.publish(Event{Type: EventSignedUp, UserID: usr.ID, At: m.now().UTC()})
	return usr, tokens, nil
}

func (m *Manager) SignIn(ctx context.Context, in ucauth.SignInInput) (user.User, Tokens, error) {
	if err := m.checkOpen(); err != nil {
		return user.User{}, Tokens{}, err
	}
	usr, err := m.auth.SignIn(ctx, in)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	tokens, err := m.issue(usr.ID, usr.Email)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	m.logf("[Auth] signed in | user_id=%s", usr.ID)
	m.publish(Event{Type: EventSignedIn, UserID: usr.ID, At: m.now().UTC()})
	return usr, tokens, nil
}

// Refresh rotates a refresh token. The presented token is revoked so it
// cannot be replayed.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if err := m.checkOpen(); err != nil {
		return Tokens{}, err
	}
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := m.tokens.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !m.tokens.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}

	revoked, err := m.isRevoked(ctx, claims.TokenID())
	if err != nil {
		return Tokens{}, ErrInternal
	}
	if revoked {
		return Tokens{}, ErrTokenRevoked
	}

	usr, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Tokens{}, ErrInvalidRefreshToken
		}
		return Tokens{}, ErrInternal
	}

	// Only the caller that records the revocation may rotate.
	first, err := m.revoke(ctx, claims)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	if !first {
		return Tokens{}, ErrTokenRevoked
	}
	return m.issue(usr.ID, usr.Email)
}

// SignOut revokes the access token and, when given, the refresh token.
func (m *Manager) SignOut(ctx context.Context, accessToken, refreshToken string) error {
	id, err := m.Authenticate(ctx, accessToken)
	if err != nil {
		return err
	}

	claims, err := m.tokens.ValidateToken(accessToken)
	if err == nil {
		_, _ = m.revoke(ctx, claims)
	}
	if refreshToken != "" {
		if rc, err := m.tokens.ValidateToken(refreshToken); err == nil && m.tokens.IsRefreshToken(rc) && rc.UserID == id.UserID {
			_, _ = m.revoke(ctx, rc)
		}
	}

	m.logf("[Auth] signed out | user_id=%s", id.UserID)
	m.publish(Event{Type: EventSignedOut, UserID: id.UserID, At: m.now().UTC()})
	return nil
}

// Authenticate resolves an access token to its identity.
func (m *Manager) Authenticate(ctx context.Context, accessToken string) (Identity, error) {
	if accessToken == "" {
		return Identity{}, ErrUnauthorized
	}
	claims, err := m.tokens.ValidateToken(accessToken)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return Identity{}, ErrUnauthorized
	}

	revoked, err := m.isRevoked(ctx, claims.TokenID())
	if err != nil {
		return Identity{}, ErrInternal
	}
	if revoked {
		return Identity{}, ErrTokenRevoked
	}

	return Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		TokenID:   claims.TokenID(),
		ExpiresAt: claims.ExpiredAt,
	}, nil
}

// Subscribe registers fn for auth events and returns a function that
// removes it. fn runs on the caller's goroutine and must not block.
func (m *Manager) Subscribe(fn func(Event)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || fn == nil {
		return func() {}
	}
	id := m.nextID
	m.nextID++
	m.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// Close drops all subscribers. Later sign-ups and sign-ins fail with
// ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.subs = map[int]func(Event){}
}

func (m *Manager) checkOpen() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *Manager) publish(ev Event) {
	m.mu.RLock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (m *Manager) issue(userID uuid.UUID, email string) (Tokens, error) {
	access, err := m.tokens.GenerateAccessToken(userID, email)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := m.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{AccessToken: access, RefreshToken: refresh, ExpiresIn: m.tokens.AccessExpiresIn()}, nil
}

func revokedKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

func (m *Manager) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.revoked == nil || tokenID == "" {
		return false, nil
	}
	ok, err := m.revoked.Exists(ctx, revokedKey(tokenID))
	if err != nil {
		m.logf("[Auth] revocation lookup failed | jti=%s error=%v", tokenID, err)
		return false, err
	}
	return ok, nil
}

// revoke records the token id and reports whether this call was the one
// that recorded it. Without a store every call is first.
func (m *Manager) revoke(ctx context.Context, claims jwt.Claims) (bool, error) {
	if m.revoked == nil || claims.TokenID() == "" {
		return true, nil
	}
	if e, ok := m.revoked.(interface{ Enabled() bool }); ok && !e.Enabled() {
		return true, nil
	}
	ttl := time.Until(claims.ExpiredAt)
	if ttl <= 0 {
		return true, nil
	}
	ok, err := m.revoked.SetIfNotExists(ctx, revokedKey(claims.TokenID()), "1", ttl)
	if err != nil {
		m.logf("[Auth] revoke failed | jti=%s error=%v", claims.TokenID(), err)
		return false, err
	}
	return ok, nil
}

func (m *Manager) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}
