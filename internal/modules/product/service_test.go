package product

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kuma-mall/admin-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(n int64) *Price {
	p := Price(n)
	return &p
}

func strp(s string) *string { return &s }

func TestPrice_AcceptsNumberOrNumericString(t *testing.T) {
	cases := map[string]int64{
		`{"price":100}`:      100,
		`{"price":"250"}`:    250,
		`{"price":" 7 "}`:    7,
		`{"price":"-3"}`:     -3,
		`{"price":0}`:        0,
		`{"price":100.0}`:    100,
		`{"price":1e2}`:      100,
		`{"price":"100.00"}`: 100,
		`{"price":-0.0}`:     0,
	}
	for body, want := range cases {
		var req ProductRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		require.NotNil(t, req.Price, body)
		assert.Equal(t, want, int64(*req.Price), body)
	}

	rejected := []string{
		`{"price":"abc"}`, `{"price":12.5}`, `{"price":"99.99"}`, `{"price":true}`,
		`{"price":"NaN"}`, `{"price":"Inf"}`, `{"price":"0x10"}`, `{"price":1e300}`, `{"price":""}`,
	}
	for _, body := range rejected {
		var req ProductRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestService_CreateProduct(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, ProductRequest{
		SKU: " KM-001 ", Name: "Mug", Price: price(1200),
		ProductType: strp("kitchen"), ProductSet: strp(""),
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "KM-001", p.SKU)
	assert.Equal(t, int64(1200), p.Price)
	require.NotNil(t, p.ProductType)
	assert.Equal(t, "kitchen", *p.ProductType)
	assert.Nil(t, p.ProductSet, "empty product_set is stored as NULL")
}

func TestService_CreateProduct_Validation(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	invalid := []ProductRequest{
		{Name: "Mug", Price: price(1)},
		{SKU: "KM-001", Price: price(1)},
		{SKU: "KM-001", Name: "Mug"},
		{SKU: "KM-001", Name: "Mug", Price: price(-1)},
	}
	for _, req := range invalid {
		_, err := svc.CreateProduct(ctx, req)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
	list, _ := svc.ListProducts(ctx)
	assert.Empty(t, list)
}

func TestService_UpdateProductOverwritesAllFields(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, ProductRequest{SKU: "KM-001", Name: "Mug", Price: price(1200), ProductType: strp("kitchen")})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, p.ID, ProductRequest{SKU: "KM-002", Name: "Big Mug", Price: price(1500)})
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", updated.Name)
	assert.Nil(t, updated.ProductType)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)

	_, err = svc.UpdateProduct(ctx, 999, ProductRequest{SKU: "X", Name: "Y", Price: price(0)})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_ListNewestFirst(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	for _, sku := range []string{"A", "B", "C"} {
		_, err := svc.CreateProduct(ctx, ProductRequest{SKU: sku, Name: sku, Price: price(1)})
		require.NoError(t, err)
	}
	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{list[0].SKU, list[1].SKU, list[2].SKU})
}

func TestService_DeleteProduct(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, ProductRequest{SKU: "A", Name: "A", Price: price(1)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	_, err = svc.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ID), ErrProductNotFound)
}
