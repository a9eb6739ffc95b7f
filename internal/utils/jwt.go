package utils // package utils provides token issuing/verification and password hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingSecret is returned by NewTokenService for an empty secret.
	// The server cannot start without one.
	ErrMissingSecret = errors.New("auth token secret is not configured")
	// ErrInvalidToken covers every verification failure: bad signature,
	// unexpected algorithm, malformed payload, missing subject or expiry.
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is what a token asserts about its bearer.
type Identity struct {
	UserID  uuid.UUID
	Name    string
	IsAdmin bool
}

// Claims is the decoded payload of a verified token.
type Claims struct {
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService signs and verifies HS256 tokens with a secret that is fixed
// at construction.  It holds no other state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService.  A ttl of zero issues tokens with no
// exp claim; those stay valid until the secret is rotated.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for id.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		Name:    id.Name,
		IsAdmin: id.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id.UserID.String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and decodes the claims of raw.  Any failure is
// reported as ErrInvalidToken.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
