package auth

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
)

// MinSecretLength is the minimum HMAC secret size in bytes.
const MinSecretLength = 16

// Claims are the JWT claims issued to users. The user id travels in "sub".
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}

// Principal converts the claims to the caller identity.
func (c *Claims) Principal() Principal {
	return Principal{
		UserID:   c.Subject,
		Email:    c.Email,
		Username: c.Username,
		Role:     c.Role,
	}
}

// TokenIssuer signs tokens for a principal.
type TokenIssuer interface {
	Issue(p Principal) (string, time.Time, error)
}

// TokenVerifier parses and validates tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// TokenManager implements TokenIssuer and TokenVerifier with HS256.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	}
	if issuer == "" {
		return nil, fmt.Errorf("jwt issuer is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for p that expires after the configured TTL.
func (m *TokenManager) Issue(p Principal) (string, time.Time, error) {
	return m.IssueWithTTL(p, m.ttl)
}

// IssueWithTTL signs a token for p that expires after ttl.
func (m *TokenManager) IssueWithTTL(p Principal, ttl time.Duration) (string, time.Time, error) {
	if p.UserID == "" {
		return "", time.Time{}, apperr.Invalid("token subject is required")
	}
	if ttl <= 0 {
		return "", time.Time{}, apperr.Invalid("token ttl must be positive")
	}

	now := m.now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Email:    p.Email,
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature, algorithm, issuer and expiry of token.
func (m *TokenManager) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, apperr.Unauthorized("invalid token: %v", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, apperr.Unauthorized("invalid token")
	}
	return claims, nil
}
