package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kuma-mall/admin-backend/internal/modules/access"
	"github.com/kuma-mall/admin-backend/internal/web"
	"go.uber.org/zap"
)

// CookieOptions controls the session cookie set on login.
type CookieOptions struct {
	Name   string
	Secure bool
}

type Handler struct {
	service Service
	guard   *access.Guard
	limiter Limiter
	cookie  CookieOptions
	logger  *zap.Logger
}

func NewHandler(service Service, guard *access.Guard, limiter Limiter, cookie CookieOptions, logger *zap.Logger) *Handler {
	return &Handler{service: service, guard: guard, limiter: limiter, cookie: cookie, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/session", func(r chi.Router) {
		r.With(LimitByIP(h.limiter, h.logger)).Post("/", h.login)
		r.With(h.guard.Require(access.Authenticated)).Get("/", h.current)
		r.Delete("/", h.logout)
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message string `json:"message"`
	*Session
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := web.DecodeAndValidate(r, &req); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}

	s, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	web.JSON(w, http.StatusOK, loginResponse{Message: "logged in", Session: s})
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	id, _ := access.FromContext(r.Context())
	web.JSON(w, http.StatusOK, id)
}

// logout only clears the cookie; tokens are stateless and expire on their own.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	web.JSON(w, http.StatusOK, web.Message{Message: "logged out"})
}
