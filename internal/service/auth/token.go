package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLength is the minimum accepted HS256 secret length in bytes.
const MinSecretLength = 32

// Claims is what a verified token carries.
type Claims struct {
	TokenID   string
	UserID    int64
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256 bearer tokens.
// Each token gets a random jti that keys its server-side session.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a TokenService. The secret must be at least
// MinSecretLength bytes and the ttl positive.
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue signs a new token for userID.
func (s *TokenService) Issue(userID int64) (string, Claims, error) {
	now := s.now().UTC().Truncate(time.Second)
	c := Claims{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        c.TokenID,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, c, nil
}

// Parse verifies signature, algorithm and expiry and returns the claims.
// Every failure is reported as ErrInvalidToken.
func (s *TokenService) Parse(raw string) (Claims, error) {
	var rc jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &rc, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(rc.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Claims{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	if _, err := uuid.Parse(rc.ID); err != nil {
		return Claims{}, fmt.Errorf("%w: bad token id", ErrInvalidToken)
	}
	return Claims{TokenID: rc.ID, UserID: userID, ExpiresAt: rc.ExpiresAt.Time}, nil
}
