package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/rostersync/internal/model"
)

// DefaultTTL is the admin token lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

const (
	issuer    = "rostersync"
	typeAdmin = "admin"
)

// Claims represents JWT claims with the token type.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{
		secretKey: secretKey,
		ttl:       ttl,
		now:       time.Now,
	}
}

// GenerateAdminToken creates an admin API token for subject.
func (j *JWT) GenerateAdminToken(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty token subject", model.ErrInvalidArgument)
	}
	if j.secretKey == "" {
		return "", errors.New("token secret is not configured")
	}

	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		TokenType: typeAdmin,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}

	return tokenString, nil
}

// ParseAdminToken validates an admin token and returns its subject.
func (j *JWT) ParseAdminToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(j.now))
	if err != nil {
		return "", fmt.Errorf("failed to parse admin token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("admin token is invalid")
	}
	if claims.TokenType != typeAdmin {
		return "", fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("admin token has no subject")
	}
	return claims.Subject, nil
}
