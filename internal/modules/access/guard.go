package access

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kuma-mall/admin-backend/internal/apperr"
	"github.com/kuma-mall/admin-backend/internal/web"
	"go.uber.org/zap"
)

// Requirement is what a route demands of its caller.
type Requirement struct {
	MinRole Role
	// ForbidSelf names a URL parameter holding an admin id; the request is refused when
	// it equals the caller's own id.
	ForbidSelf string
}

var (
	// Authenticated admits any signed-in administrator.
	Authenticated = Requirement{MinRole: RoleAdmin}
	// SuperAdmin admits only super-admins.
	SuperAdmin = Requirement{MinRole: RoleSuperAdmin}
)

var (
	errLoginRequired  = apperr.Unauthenticated("login required")
	errSuperAdminOnly = apperr.Forbidden("super admin access required")
	errForbiddenRole  = apperr.Forbidden("insufficient role")
	errSelfTarget     = apperr.Validation("you cannot perform this action on your own account")
)

// Guard reads the session token from the Authorization header or the session cookie.
type Guard struct {
	issuer     *Issuer
	cookieName string
	logger     *zap.Logger
}

func NewGuard(issuer *Issuer, cookieName string, logger *zap.Logger) *Guard {
	return &Guard{issuer: issuer, cookieName: cookieName, logger: logger}
}

// Require returns middleware enforcing req. Super-admin routes answer 403 to every
// refused caller, signed in or not; other routes answer 401 to anonymous callers.
func (g *Guard) Require(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := g.check(r, req)
			if err != nil {
				web.Error(w, r, g.logger, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func (g *Guard) check(r *http.Request, req Requirement) (Identity, error) {
	id, ok := g.identify(r)
	if !ok {
		if req.MinRole == RoleSuperAdmin {
			return Identity{}, errSuperAdminOnly
		}
		return Identity{}, errLoginRequired
	}
	if !id.Role.AtLeast(req.MinRole) {
		if req.MinRole == RoleSuperAdmin {
			return Identity{}, errSuperAdminOnly
		}
		return Identity{}, errForbiddenRole
	}
	if req.ForbidSelf != "" {
		target, err := strconv.ParseInt(chi.URLParam(r, req.ForbidSelf), 10, 64)
		if err == nil && target == id.ID {
			return Identity{}, errSelfTarget
		}
	}
	return id, nil
}

func (g *Guard) identify(r *http.Request) (Identity, bool) {
	token := TokenFromRequest(r, g.cookieName)
	if token == "" {
		return Identity{}, false
	}
	id, err := g.issuer.Parse(token)
	if err != nil {
		return Identity{}, false
	}
	return id, true
}

// TokenFromRequest prefers a Bearer header and falls back to the named cookie.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
