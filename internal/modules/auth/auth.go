package auth

import (
	"context"
	"time"

	"github.com/kuma-mall/admin-backend/internal/modules/access"
)

// Session is the result of a successful login.
type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Admin     access.Identity `json:"admin"`
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, username, password string) (*Session, error)
}
