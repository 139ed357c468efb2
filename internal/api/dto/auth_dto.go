package dto

import (
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token and its identity claim.
type LoginResponse struct {
	Token     string          `json:"token"`
	Identity  domain.Identity `json:"identity"`
	ExpiresAt time.Time       `json:"expires_at"`
}
