package product

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kuma-mall/admin-backend/internal/apperr"
)

// Product is a standalone catalog entry, independent of any group.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	ProductType *string   `json:"product_type"`
	ProductSet  *string   `json:"product_set"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductRequest is the payload for creating or replacing a product.
type ProductRequest struct {
	SKU         string  `json:"sku" validate:"required,max=64"`
	Name        string  `json:"name" validate:"required,max=255"`
	Price       *Price  `json:"price" validate:"required"`
	ProductType *string `json:"product_type"`
	ProductSet  *string `json:"product_set"`
}

// Price accepts either a JSON number or a string holding one, e.g. 100, 100.0, 1e2 or
// "100.00". The value must be whole: fractional prices are rejected, not truncated.
type Price int64

// maxExactPrice bounds prices written in float form, beyond which float64 loses integers.
const maxExactPrice = 1 << 53

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*p = Price(n)
		return nil
	}
	n, err := parseWholeNumber(raw)
	if err != nil {
		return err
	}
	*p = Price(n)
	return nil
}

// parseWholeNumber reads raw as a JSON number literal whose value has no fractional part.
func parseWholeNumber(raw string) (int64, error) {
	if raw == "" || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) || !json.Valid([]byte(raw)) {
		return 0, apperr.Validation("price must be an integer")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.Abs(f) > maxExactPrice {
		return 0, apperr.Validation("price is out of range")
	}
	if f != math.Trunc(f) {
		return 0, apperr.Validation("price must be an integer")
	}
	return int64(f), nil
}
