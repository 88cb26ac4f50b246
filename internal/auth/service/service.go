// Package service implements registration, login, external session exchange,
// logout, and credential resolution for the API.
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"grameengo/backend/internal/auth/exchange"
	"grameengo/backend/internal/security"
	sessiondomain "grameengo/backend/internal/session/domain"
	userdomain "grameengo/backend/internal/user/domain"
)

// Sentinel errors for the auth service; handlers map them to HTTP status codes.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// AuthResult holds the outcome of Register or Login: the user plus a bearer token.
type AuthResult struct {
	User      *userdomain.User
	Token     string
	ExpiresAt time.Time
}

// SessionResult holds the outcome of ExchangeSession: the (possibly just
// provisioned) user plus the stored opaque session token.
type SessionResult struct {
	User         *userdomain.User
	SessionToken string
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
}

// SessionRepo is the minimal session repository needed by the auth service.
type SessionRepo interface {
	GetByToken(ctx context.Context, token string) (*sessiondomain.Session, error)
	Create(ctx context.Context, s *sessiondomain.Session) error
	Delete(ctx context.Context, token string) error
}

// Exchanger resolves an upstream session id into user data and a session token.
type Exchanger interface {
	Exchange(ctx context.Context, sessionID string) (*exchange.SessionData, error)
}

// Service implements password register/login, external session exchange,
// logout, and Resolve. It holds no mutable state and is safe for concurrent use.
type Service struct {
	users      UserRepo
	sessions   SessionRepo
	exchanger  Exchanger
	hasher     *security.Hasher
	tokens     *security.TokenProvider
	sessionTTL time.Duration
}

// NewService returns an auth Service with the given dependencies.
func NewService(
	users UserRepo,
	sessions SessionRepo,
	exchanger Exchanger,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	sessionTTL time.Duration,
) *Service {
	if sessionTTL <= 0 {
		sessionTTL = security.DefaultTokenTTL
	}
	return &Service{
		users:      users,
		sessions:   sessions,
		exchanger:  exchanger,
		hasher:     hasher,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

// Register creates a user with a hashed password and issues a bearer token.
// Returns ErrEmailAlreadyRegistered when the email is taken.
func (s *Service) Register(ctx context.Context, email, password, name string, role userdomain.Role) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hashed,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Login authenticates with email/password and issues a bearer token.
// Unknown email, missing local password, and hash mismatch are all ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// ExchangeSession resolves an upstream session id, provisions the user on
// first sight (role borrower, no local password), and stores the session
// record with the configured TTL.
func (s *Service) ExchangeSession(ctx context.Context, sessionID string) (*SessionResult, error) {
	data, err := s.exchanger.Exchange(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(strings.ToLower(data.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &userdomain.User{
			ID:        uuid.New().String(),
			Email:     email,
			Name:      data.Name,
			Role:      userdomain.RoleBorrower,
			Picture:   data.Picture,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	sess := &sessiondomain.Session{
		Token:     data.SessionToken,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return &SessionResult{User: user, SessionToken: data.SessionToken}, nil
}

// Logout deletes the session record for token. Bearer tokens stay valid until
// exp; only the stored session is removed. Empty token is a no-op.
func (s *Service) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionToken)
}

// Resolve returns the user for the supplied credentials, or nil when neither
// resolves. The session token wins over the bearer token when both are
// supplied; an expired or unknown session falls through to the bearer path.
// A token asserting a user id that no longer exists resolves to nil, not an error.
func (s *Service) Resolve(ctx context.Context, bearerToken, sessionToken string) (*userdomain.User, error) {
	if sessionToken != "" {
		sess, err := s.sessions.GetByToken(ctx, sessionToken)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			user, err := s.users.GetByID(ctx, sess.UserID)
			if err != nil {
				return nil, err
			}
			if user != nil {
				return user, nil
			}
		}
	}
	if bearerToken != "" {
		userID, err := s.tokens.Validate(bearerToken)
		if err != nil {
			// Malformed and expired tokens resolve to unauthenticated.
			return nil, nil
		}
		return s.users.GetByID(ctx, userID)
	}
	return nil, nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	const simpleEmail = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	ok, _ := regexp.MatchString(simpleEmail, email)
	if !ok {
		return errors.New("invalid email format")
	}
	return nil
}
