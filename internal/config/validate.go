package config

import (
	"fmt"
	"strings"
)

// minSecretBytes is the minimum HS256 key length accepted.
const minSecretBytes = 32

// Bounds of the bcrypt cost.
const (
	minHashCost = 4
	maxHashCost = 31
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if c.RateLimit.StatementPerSecond <= 0 {
		return fmt.Errorf("ratelimit.statement_per_second must be > 0 (got %d)", c.RateLimit.StatementPerSecond)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("ratelimit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}
	if c.Import.MaxUploadBytes <= 0 {
		return fmt.Errorf("import.max_upload_bytes must be > 0 (got %d)", c.Import.MaxUploadBytes)
	}
	if c.Import.MaxTokenAttempts <= 0 {
		return fmt.Errorf("import.max_token_attempts must be > 0 (got %d)", c.Import.MaxTokenAttempts)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (a *AuthConfig) validate() error {
	if strings.TrimSpace(a.AdminUsername) == "" {
		return fmt.Errorf("admin_username is required")
	}
	if a.AdminPassword == "" {
		return fmt.Errorf("admin_password is required")
	}
	if len(a.AdminPassword) > 72 {
		return fmt.Errorf("admin_password must be at most 72 bytes (got %d)", len(a.AdminPassword))
	}
	if a.PasswordHashCost < minHashCost || a.PasswordHashCost > maxHashCost {
		return fmt.Errorf("password_hash_cost must be between %d and %d (got %d)", minHashCost, maxHashCost, a.PasswordHashCost)
	}

	key, err := a.SecretKey()
	if err != nil {
		return err
	}
	if len(key) < minSecretBytes {
		return fmt.Errorf("jwt_secret must be at least %d bytes (got %d)", minSecretBytes, len(key))
	}
	return nil
}
