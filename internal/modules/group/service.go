package group

import (
	"context"

	"github.com/google/uuid"
)

// Service defines product group business logic, including reconciliation of a group's
// items against a desired list.
type Service interface {
	CreateGroup(ctx context.Context, req Request) (*Detail, error)
	// ReconcileGroup upserts every desired item by sku and rewrites member_skus. Items
	// missing from the request are kept.
	ReconcileGroup(ctx context.Context, id uuid.UUID, req Request) (*Detail, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListGroups(ctx context.Context) ([]*Group, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	// DeleteItem removes the item keyed by (id, sku). When groupID is given and that group
	// exists, every occurrence of sku is dropped from its member_skus.
	DeleteItem(ctx context.Context, id int64, sku string, groupID *uuid.UUID) error
}
