package group

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
	repo   *memRepo
	token  string
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	issuer := access.NewIssuer("group-test-secret-012345", time.Hour)
	guard := access.NewGuard(issuer, "kuma_session", zap.NewNop())
	token, _, err := issuer.Issue(access.Identity{ID: 7, Username: "staff", Role: access.RoleAdmin})
	require.NoError(t, err)

	repo := newMemRepo()
	r := chi.NewRouter()
	NewHandler(NewService(repo, zap.NewNop()), guard, zap.NewNop()).RegisterRoutes(r)
	return &handlerFixture{router: r, repo: repo, token: token}
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

func (f *handlerFixture) createSetA(t *testing.T) detailResponse {
	t.Helper()
	rec := f.do(http.MethodPost, "/groups", f.token, setA)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out detailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandler_GroupScenario(t *testing.T) {
	f := newHandlerFixture(t)

	created := f.createSetA(t)
	assert.Equal(t, "group created", created.Message)
	assert.Equal(t, []string{"A1", "A2"}, created.Group.MemberSKUs)
	path := "/groups/" + created.Group.UUID.String()

	rec := f.do(http.MethodPut, path, f.token, `{"group":{},"products":[{"sku":"A1","quantity":5}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got Detail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Products, 2)
	assert.Equal(t, "Cup", got.Products[0].Name)
	assert.Equal(t, 5, got.Products[0].Quantity)

	rec = f.do(http.MethodPut, path, f.token, `{"group":{},"products":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodDelete, fmt.Sprintf("/groups/items/%d?sku=NOPE&uuid=%s", got.Products[0].ID, created.Group.UUID), f.token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodDelete, fmt.Sprintf("/groups/items/%d?sku=A2&uuid=%s", got.Products[1].ID, created.Group.UUID), f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"item deleted"}`, rec.Body.String())

	rec = f.do(http.MethodDelete, path, f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ListIsPublic(t *testing.T) {
	f := newHandlerFixture(t)
	f.createSetA(t)

	rec := f.do(http.MethodGet, "/groups", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	assert.Len(t, groups, 1)
}

func TestHandler_MutationsRequireSession(t *testing.T) {
	f := newHandlerFixture(t)
	created := f.createSetA(t)
	path := "/groups/" + created.Group.UUID.String()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/groups", setA},
		{http.MethodPut, path, `{"group":{},"products":[{"sku":"A1","quantity":5}]}`},
		{http.MethodDelete, path, ""},
		{http.MethodDelete, "/groups/items/1?sku=A1", ""},
	} {
		rec := f.do(tc.method, tc.path, "", tc.body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
	}
	assert.Len(t, f.repo.groups, 1)
	assert.Len(t, f.repo.items, 2)
}

func TestHandler_BadIdentifiers(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodGet, "/groups/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodDelete, "/groups/items/abc?sku=A1", f.token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodDelete, "/groups/items/1", f.token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodDelete, "/groups/items/1?sku=A1&uuid=zzz", f.token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/groups", f.token, `{"group":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
