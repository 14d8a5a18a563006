package product

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kuma-mall/admin-backend/internal/modules/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type handlerFixture struct {
	router http.Handler
	token  string
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	issuer := access.NewIssuer("product-test-secret-0123", time.Hour)
	guard := access.NewGuard(issuer, "kuma_session", zap.NewNop())
	token, _, err := issuer.Issue(access.Identity{ID: 1, Username: "staff", Role: access.RoleAdmin})
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(NewService(newMemRepo()), guard, zap.NewNop()).RegisterRoutes(r)
	return &handlerFixture{router: r, token: token}
}

func (f *handlerFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ProductLifecycle(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/products", f.token, `{"sku":"KM-001","name":"Mug","price":"1200","product_type":"kitchen"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created productResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "product created", created.Message)
	assert.Equal(t, int64(1200), created.Product.Price)
	path := fmt.Sprintf("/products/%d", created.Product.ID)

	rec = f.do(http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sku":"KM-001"`)

	rec = f.do(http.MethodPut, path, f.token, `{"sku":"KM-001","name":"Mug XL","price":1500}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"product_type":null`)

	rec = f.do(http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Mug XL", list[0].Name)

	rec = f.do(http.MethodDelete, path, f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"product deleted"}`, rec.Body.String())

	rec = f.do(http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_WritesRequireSession(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/products", "", `{"sku":"KM-001","name":"Mug","price":1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = f.do(http.MethodPut, "/products/1", "", `{"sku":"KM-001","name":"Mug","price":1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = f.do(http.MethodDelete, "/products/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_BadInput(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/products", f.token, `{"sku":"KM-001","name":"Mug","price":"cheap"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"price must be an integer"}`, rec.Body.String())

	rec = f.do(http.MethodPost, "/products", f.token, `{"sku":"KM-001","name":"Mug","price":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/products/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPut, "/products/42", f.token, `{"sku":"KM-001","name":"Mug","price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
