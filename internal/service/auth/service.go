// Package auth authenticates the single administrator and verifies the
// access tokens it is issued.
package auth

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/extrato-backend/internal/auth"
	"github.com/heartmarshall/extrato-backend/internal/config"
)

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(subject, role string) (string, error)
	ValidateAccessToken(token string) (auth.Identity, error)
}

// Service implements admin authentication.
type Service struct {
	log          *slog.Logger
	jwt          jwtManager
	username     string
	passwordHash []byte
}

// NewService creates a new auth service. The configured admin password is
// hashed once here and the plaintext is not retained.
func NewService(logger *slog.Logger, jwt jwtManager, cfg config.AuthConfig) (*Service, error) {
	cost := cfg.PasswordHashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &Service{
		log:          logger.With("service", "auth"),
		jwt:          jwt,
		username:     cfg.AdminUsername,
		passwordHash: hash,
	}, nil
}
