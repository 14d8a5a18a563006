package product

import (
	"context"

	"github.com/kuma-mall/admin-backend/internal/apperr"
)

var ErrProductNotFound = apperr.NotFound("product not found")

// Repository defines the interface for standalone product storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
