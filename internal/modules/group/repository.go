package group

import (
	"context"

	"github.com/google/uuid"
	"github.com/kuma-mall/admin-backend/internal/apperr"
)

var (
	ErrGroupNotFound   = apperr.NotFound("group not found")
	ErrItemNotFound    = apperr.NotFound("item not found")
	ErrGroupIncomplete = apperr.Validation("group name and at least one product are required")
	ErrNoProducts      = apperr.Validation("at least one product is required")
)

// Repository stores groups and their items. InTx runs fn against a repository bound to
// a single transaction; calling InTx on such a repository reuses it.
type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error

	CreateGroup(ctx context.Context, g *Group) error
	GetGroup(ctx context.Context, id uuid.UUID) (*Group, error)
	ListGroups(ctx context.Context) ([]*Group, error)
	UpdateGroup(ctx context.Context, g *Group) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, groupID uuid.UUID) ([]*Item, error)
	// FindItem returns the oldest item of the group carrying sku.
	FindItem(ctx context.Context, groupID uuid.UUID, sku string) (*Item, error)
	CreateItem(ctx context.Context, it *Item) error
	UpdateItem(ctx context.Context, it *Item) error
	DeleteItems(ctx context.Context, groupID uuid.UUID) error
	DeleteItem(ctx context.Context, id int64, sku string) error
}
