package group

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kuma-mall/admin-backend/internal/apperr"
	"go.uber.org/zap"
)

type service struct {
	repo    Repository
	logger  *zap.Logger
	newUUID func() uuid.UUID
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger, newUUID: uuid.New}
}

func validateItems(inputs []ItemInput) error {
	if len(inputs) == 0 {
		return ErrNoProducts
	}
	for i, in := range inputs {
		if err := in.validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) CreateGroup(ctx context.Context, req Request) (*Detail, error) {
	name := strings.TrimSpace(req.Group.Name)
	if name == "" || len(req.Products) == 0 {
		return nil, ErrGroupIncomplete
	}
	if err := validateItems(req.Products); err != nil {
		return nil, err
	}

	g := &Group{
		UUID:          s.newUUID(),
		Name:          name,
		Description:   strings.TrimSpace(req.Group.Description),
		MainImageURLs: nonNil(req.Group.MainImageURLs),
		MemberSKUs:    skusOf(req.Products),
	}

	var items []*Item
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if err := tx.CreateGroup(ctx, g); err != nil {
			return err
		}
		var err error
		items, err = upsertItems(ctx, tx, g.UUID, req.Products)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("group created",
		zap.String("uuid", g.UUID.String()),
		zap.String("name", g.Name),
		zap.Int("items", len(items)),
	)
	return &Detail{Group: g, Products: items}, nil
}

func (s *service) ReconcileGroup(ctx context.Context, id uuid.UUID, req Request) (*Detail, error) {
	if err := validateItems(req.Products); err != nil {
		return nil, err
	}

	var (
		g     *Group
		items []*Item
	)
	err := s.repo.InTx(ctx, func(tx Repository) error {
		var err error
		g, err = tx.GetGroup(ctx, id)
		if err != nil {
			return err
		}

		if name := strings.TrimSpace(req.Group.Name); name != "" {
			g.Name = name
		}
		if desc := strings.TrimSpace(req.Group.Description); desc != "" {
			g.Description = desc
		}
		if len(req.Group.MainImageURLs) > 0 {
			g.MainImageURLs = req.Group.MainImageURLs
		}
		g.MemberSKUs = skusOf(req.Products)
		if err := tx.UpdateGroup(ctx, g); err != nil {
			return err
		}

		items, err = upsertItems(ctx, tx, g.UUID, req.Products)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("group reconciled",
		zap.String("uuid", g.UUID.String()),
		zap.Int("desired", len(req.Products)),
		zap.Int("items", len(items)),
	)
	return &Detail{Group: g, Products: items}, nil
}

// upsertItems applies inputs in order: each entry updates the group's row for its sku or
// inserts one. A repeated sku therefore updates the row its earlier entry touched. The
// result lists every touched row once, in first-touch order, with its final state.
func upsertItems(ctx context.Context, repo Repository, groupID uuid.UUID, inputs []ItemInput) ([]*Item, error) {
	items := []*Item{}
	seen := map[string]int{}

	for _, in := range inputs {
		it, err := repo.FindItem(ctx, groupID, strings.TrimSpace(in.SKU))
		switch {
		case err == nil:
			in.applyTo(it)
			if err := repo.UpdateItem(ctx, it); err != nil {
				return nil, err
			}
		case errors.Is(err, ErrItemNotFound):
			it, err = in.newItem(groupID)
			if err != nil {
				return nil, err
			}
			if err := repo.CreateItem(ctx, it); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}

		if idx, ok := seen[itemKey(it)]; ok {
			items[idx] = it
			continue
		}
		seen[itemKey(it)] = len(items)
		items = append(items, it)
	}
	return items, nil
}

func (s *service) GetGroup(ctx context.Context, id uuid.UUID) (*Detail, error) {
	g, err := s.repo.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Group: g, Products: items}, nil
}

func (s *service) ListGroups(ctx context.Context) ([]*Group, error) {
	return s.repo.ListGroups(ctx)
}

func (s *service) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if _, err := tx.GetGroup(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		return tx.DeleteGroup(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("group deleted", zap.String("uuid", id.String()))
	return nil
}

func (s *service) DeleteItem(ctx context.Context, id int64, sku string, groupID *uuid.UUID) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return apperr.Validation("sku is required")
	}

	err := s.repo.InTx(ctx, func(tx Repository) error {
		if err := tx.DeleteItem(ctx, id, sku); err != nil {
			return err
		}
		if groupID == nil {
			return nil
		}

		g, err := tx.GetGroup(ctx, *groupID)
		if errors.Is(err, ErrGroupNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		g.MemberSKUs = without(g.MemberSKUs, sku)
		return tx.UpdateGroup(ctx, g)
	})
	if err != nil {
		return err
	}
	s.logger.Info("group item deleted", zap.Int64("id", id), zap.String("sku", sku))
	return nil
}

func without(skus []string, sku string) []string {
	out := make([]string, 0, len(skus))
	for _, s := range skus {
		if s != sku {
			out = append(out, s)
		}
	}
	return out
}
