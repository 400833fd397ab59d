package auth

import "time"

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
}
