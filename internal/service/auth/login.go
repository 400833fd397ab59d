package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/extrato-backend/internal/auth"
	"github.com/heartmarshall/extrato-backend/internal/domain"
)

// Login checks the administrator credentials and issues an access token.
// Returns ErrUnauthorized if the username or password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Username = strings.TrimSpace(input.Username)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// bcrypt runs even when the username is wrong.
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password))
	if !userOK || passErr != nil {
		s.log.WarnContext(ctx, "admin login rejected", slog.String("username", input.Username))
		return nil, domain.ErrUnauthorized
	}

	token, err := s.jwt.GenerateAccessToken(s.username, auth.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate access token: %w", err)
	}

	// Expiry is taken from the signed token.
	identity, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("auth.Login read access token: %w", err)
	}

	s.log.InfoContext(ctx, "admin logged in", slog.String("username", s.username))

	return &LoginResult{AccessToken: token, ExpiresAt: identity.ExpiresAt}, nil
}

// ValidateToken verifies an access token and returns its identity.
// Any invalid or expired token yields ErrUnauthorized.
func (s *Service) ValidateToken(ctx context.Context, token string) (auth.Identity, error) {
	identity, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "access token rejected", slog.String("error", err.Error()))
		return auth.Identity{}, domain.ErrUnauthorized
	}
	return identity, nil
}
