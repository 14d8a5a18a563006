package admin

import (
	"time"

	"github.com/kuma-mall/admin-backend/internal/modules/access"
)

// Admin is an administrator account. The password hash is never serialized.
type Admin struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Role         access.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Identity returns the session identity for a.
func (a *Admin) Identity() access.Identity {
	return access.Identity{ID: a.ID, Username: a.Username, Role: a.Role}
}

// CreateAdminRequest is the payload for creating an administrator.
type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN SUPER_ADMIN"`
}

// UpdateAdminRequest changes an administrator's password and/or role. Omitted fields
// are left unchanged.
type UpdateAdminRequest struct {
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN SUPER_ADMIN"`
}
