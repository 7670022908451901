// Package auth validates the bearer tokens issued by the business backend.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appctx "storeadmin/internal/core/context"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	// Secret is shared with the backend that signs the tokens (HS256).
	Secret string
	// Leeway tolerates clock skew between this service and the backend.
	Leeway time.Duration
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret: secret,
		Leeway: 30 * time.Second,
	}
}

// Claims represents JWT claims. The user name travels in "sub".
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

var (
	ErrMissingSubject = errors.New("token has no subject")
	ErrUnknownRole    = errors.New("token role is not recognized")
)

// JWTService handles JWT operations.
type JWTService struct {
	config JWTConfig
	parser *jwt.Parser
}

// NewJWTService creates a new JWT service.
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(config.Leeway),
		),
	}
}

// GenerateAccessToken signs a token the way the backend does. Used by tests
// and local tooling.
func (s *JWTService) GenerateAccessToken(userName, role string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates JWT and returns user context.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	token, err := s.parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	switch claims.Role {
	case appctx.RoleAdministrator, appctx.RoleEmployee:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}

	return &appctx.UserContext{
		UserName: claims.Subject,
		Role:     claims.Role,
		Token:    tokenString,
	}, nil
}
