// Package auth implements the authentication collaborator: sign up, sign in,
// bearer token resolution and revocation. The article core only sees the
// resolved user id.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blog-api/internal/domain/entity"
	"blog-api/internal/repository"
)

// DefaultMinPasswordLength is used when Service.MinPasswordLength is zero.
const DefaultMinPasswordLength = 6

// Identity is the caller a bearer token resolved to.
type Identity struct {
	User    *entity.User
	TokenID string
}

// Session is a freshly issued credential.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// AuthService handles authentication business logic.
// This service is framework-agnostic and can be used with any HTTP framework or CLI.
type AuthService struct {
	users             repository.UserRepository
	sessions          repository.SessionRepository
	tokens            *TokenService
	hasher            PasswordHasher
	minPasswordLength int
	now               func() time.Time
}

// Option configures an AuthService.
type Option func(*AuthService)

// WithMinPasswordLength overrides DefaultMinPasswordLength.
func WithMinPasswordLength(n int) Option {
	return func(s *AuthService) {
		if n > 0 {
			s.minPasswordLength = n
		}
	}
}

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *AuthService) { s.hasher.Cost = cost }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) {
		s.now = now
		if s.tokens != nil {
			s.tokens.now = now
		}
	}
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, tokens *TokenService, opts ...Option) *AuthService {
	s := &AuthService{
		users:             users,
		sessions:          sessions,
		tokens:            tokens,
		minPasswordLength: DefaultMinPasswordLength,
		now:               time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SignUp registers a user and signs them in.
// Invalid input and taken names or emails are returned as entity.ValidationErrors.
func (s *AuthService) SignUp(ctx context.Context, reg entity.Registration) (*Session, error) {
	reg = reg.Normalize()
	if err := reg.Validate(s.minPasswordLength); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	u := &entity.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		var dup *entity.DuplicateError
		if errors.As(err, &dup) {
			return nil, fmt.Errorf("sign up: %w", entity.ValidationErrors{
				{Field: dup.Field, Message: "has already been taken"},
			})
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}

	slog.Info("user registered", slog.Int64("user_id", u.ID))
	return s.issue(ctx, u)
}

// SignIn verifies email and password and opens a new session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	reg := entity.Registration{Email: email}.Normalize()
	u, err := s.users.GetByEmail(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if u == nil || !s.hasher.Compare(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, u)
}

// Resolve maps a bearer token to its user. The token must verify and its
// session must exist and be unexpired.
func (s *AuthService) Resolve(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	if sess == nil || sess.UserID != claims.UserID || sess.Expired(s.now()) {
		return nil, fmt.Errorf("%w: session revoked or expired", ErrInvalidToken)
	}

	u, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user no longer exists", ErrInvalidToken)
	}
	return &Identity{User: u, TokenID: claims.TokenID}, nil
}

// Revoke ends the session behind a token id.
func (s *AuthService) Revoke(ctx context.Context, tokenID string) error {
	if err := s.sessions.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions that have expired and returns how many.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return n, nil
}

func (s *AuthService) issue(ctx context.Context, u *entity.User) (*Session, error) {
	token, claims, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	sess := &entity.Session{
		ID:        claims.TokenID,
		UserID:    u.ID,
		ExpiresAt: claims.ExpiresAt,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: claims.ExpiresAt}, nil
}
