package product

import (
	"context"
	"strings"

	"github.com/kuma-mall/admin-backend/internal/apperr"
)

// Service defines standalone product business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

// fromRequest checks the sku/name/price triple and normalizes optional fields.
func fromRequest(req ProductRequest) (*Product, error) {
	sku := strings.TrimSpace(req.SKU)
	name := strings.TrimSpace(req.Name)
	if sku == "" || name == "" || req.Price == nil {
		return nil, apperr.Validation("sku, name and price are required")
	}
	if *req.Price < 0 {
		return nil, apperr.Validation("price must not be negative")
	}
	return &Product{
		SKU:         sku,
		Name:        name,
		Price:       int64(*req.Price),
		ProductType: emptyToNil(req.ProductType),
		ProductSet:  emptyToNil(req.ProductSet),
	}, nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	p, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*Product, error) {
	p, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
