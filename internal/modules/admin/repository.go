package admin

import (
	"context"

	"github.com/kuma-mall/admin-backend/internal/apperr"
)

var (
	ErrAdminNotFound    = apperr.NotFound("admin not found")
	ErrUsernameTaken    = apperr.Conflict("username already exists")
	ErrSelfDelete       = apperr.Validation("you cannot delete your own account")
	ErrInvalidRole      = apperr.Validation("role must be ADMIN or SUPER_ADMIN")
	ErrPasswordRequired = apperr.Validation("password is required")
)

// Repository defines the interface for administrator storage.
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByID(ctx context.Context, id int64) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	List(ctx context.Context) ([]*Admin, error)
	Update(ctx context.Context, a *Admin) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
