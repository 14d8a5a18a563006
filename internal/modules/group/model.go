package group

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kuma-mall/admin-backend/internal/apperr"
)

// Group is a product group. UUID is the public identifier and never changes; MemberSKUs
// mirrors the skus of the last create or reconcile, in request order.
type Group struct {
	ID            int64     `json:"id"`
	UUID          uuid.UUID `json:"uuid"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	MainImageURLs []string  `json:"main_image_urls"`
	MemberSKUs    []string  `json:"member_skus"`
	CreatedAt     time.Time `json:"created_at"`
}

// Item is a line-item product that belongs to a group through GroupUUID.
// Its storage key is (ID, SKU).
type Item struct {
	ID         int64     `json:"id"`
	GroupUUID  uuid.UUID `json:"group_uuid"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Category   *string   `json:"category"`
	Collection *string   `json:"collection"`
	CostPrice  *float64  `json:"cost_price"`
	SalePrice  float64   `json:"sale_price"`
	Width      *float64  `json:"width"`
	Length     *float64  `json:"length"`
	Height     *float64  `json:"height"`
	Weight     *float64  `json:"weight"`
	ImageURL   *string   `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// Detail is a group together with its items.
type Detail struct {
	Group    *Group  `json:"group"`
	Products []*Item `json:"products"`
}

// Fields are the editable group attributes sent under "group".
type Fields struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	MainImageURLs []string `json:"main_image_urls"`
}

// ItemInput is one desired item. Every field but SKU may be absent, null or set.
type ItemInput struct {
	SKU        string            `json:"sku"`
	Name       Optional[string]  `json:"name"`
	Quantity   Optional[int]     `json:"quantity"`
	Category   Optional[string]  `json:"category"`
	Collection Optional[string]  `json:"collection"`
	CostPrice  Optional[float64] `json:"cost_price"`
	SalePrice  Optional[float64] `json:"sale_price"`
	Width      Optional[float64] `json:"width"`
	Length     Optional[float64] `json:"length"`
	Height     Optional[float64] `json:"height"`
	Weight     Optional[float64] `json:"weight"`
	ImageURL   Optional[string]  `json:"image_url"`
}

// Request is the body of group create and reconcile.
type Request struct {
	Group    Fields      `json:"group"`
	Products []ItemInput `json:"products"`
}

func (in ItemInput) validate(i int) error {
	if strings.TrimSpace(in.SKU) == "" {
		return apperr.Validationf("products[%d].sku is required", i)
	}
	if in.Quantity.Present() && in.Quantity.Value < 0 {
		return apperr.Validationf("products[%d].quantity must not be negative", i)
	}
	// group_items.quantity is an INTEGER column.
	if in.Quantity.Present() && in.Quantity.Value > math.MaxInt32 {
		return apperr.Validationf("products[%d].quantity is too large", i)
	}
	numbers := []struct {
		field string
		value Optional[float64]
	}{
		{"cost_price", in.CostPrice},
		{"sale_price", in.SalePrice},
		{"width", in.Width},
		{"length", in.Length},
		{"height", in.Height},
		{"weight", in.Weight},
	}
	for _, n := range numbers {
		if n.value.Present() && n.value.Value < 0 {
			return apperr.Validationf("products[%d].%s must not be negative", i, n.field)
		}
	}
	return nil
}

// newItem builds a fresh row from in. Quantity and sale price default to zero,
// nullable columns to NULL.
func (in ItemInput) newItem(groupUUID uuid.UUID) (*Item, error) {
	name := strings.TrimSpace(in.Name.Value)
	if !in.Name.Present() || name == "" {
		return nil, apperr.Validationf("name is required for new item %s", strings.TrimSpace(in.SKU))
	}
	it := &Item{GroupUUID: groupUUID, SKU: strings.TrimSpace(in.SKU), Name: name}
	in.applyTo(it)
	return it, nil
}

// applyTo merges in into an existing row.
func (in ItemInput) applyTo(it *Item) {
	if name := strings.TrimSpace(in.Name.Value); in.Name.Present() && name != "" {
		it.Name = name
	}
	assignRequired(&it.Quantity, in.Quantity)
	assignRequired(&it.SalePrice, in.SalePrice)
	assignNullable(&it.Category, in.Category)
	assignNullable(&it.Collection, in.Collection)
	assignNullable(&it.CostPrice, in.CostPrice)
	assignNullable(&it.Width, in.Width)
	assignNullable(&it.Length, in.Length)
	assignNullable(&it.Height, in.Height)
	assignNullable(&it.Weight, in.Weight)
	assignNullable(&it.ImageURL, in.ImageURL)
}

func skusOf(inputs []ItemInput) []string {
	skus := make([]string, 0, len(inputs))
	for _, in := range inputs {
		skus = append(skus, strings.TrimSpace(in.SKU))
	}
	return skus
}

func itemKey(it *Item) string { return fmt.Sprintf("%d/%s", it.ID, it.SKU) }
