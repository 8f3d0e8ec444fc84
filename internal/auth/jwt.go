package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"tradeReportBackend/internal/apperr"
	"tradeReportBackend/models"
)

// DefaultTokenTTL is the session lifetime used when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the session token payload.
type Claims struct {
	UserID int64       `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Expired reports whether the token is past its expiry at now (now >= exp).
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !now.Before(c.ExpiresAt.Time)
}

// TokenService issues and verifies HS256 session tokens. It is stateless.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a service signing with secret. A zero ttl means DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Now is the service clock, also used by callers applying expiry policy.
func (s *TokenService) Now() time.Time { return s.now() }

// Issue signs a token for the user with iat = now and exp = now + ttl.
func (s *TokenService) Issue(userID int64, role models.Role) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and the shape of the payload. It does not
// reject expired tokens; use Claims.Expired for that.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	c, err := parseJWT(tokenStr, s.secret)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindUnauthorized, Msg: "Invalid token", Err: err}
	}
	return c, nil
}

// parseJWT validates and extracts claims from a JWT token.
func parseJWT(tokenStr string, secret []byte) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*Claims)
	if c == nil || c.UserID <= 0 || !c.Role.Valid() || c.ExpiresAt == nil {
		return nil, errors.New("invalid claims")
	}
	return c, nil
}
