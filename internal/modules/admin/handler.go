package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kuma-mall/admin-backend/internal/apperr"
	"github.com/kuma-mall/admin-backend/internal/modules/access"
	"github.com/kuma-mall/admin-backend/internal/web"
	"go.uber.org/zap"
)

// Handler exposes administrator account endpoints. Every route is super-admin only.
type Handler struct {
	service Service
	guard   *access.Guard
	logger  *zap.Logger
}

func NewHandler(service Service, guard *access.Guard, logger *zap.Logger) *Handler {
	return &Handler{service: service, guard: guard, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/admins", func(r chi.Router) {
		r.Use(h.guard.Require(access.SuperAdmin))
		r.Get("/", h.listAdmins)
		r.Post("/", h.createAdmin)
		r.Get("/{id}", h.getAdmin)
		r.Patch("/{id}", h.updateAdmin)
		// URL params are only resolved for inline middleware, so the self check lives here.
		r.With(h.guard.Require(access.Requirement{
			MinRole:    access.RoleSuperAdmin,
			ForbidSelf: "id",
		})).Delete("/{id}", h.deleteAdmin)
	})
}

func (h *Handler) listAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.ListAdmins(r.Context())
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, admins)
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if err := web.DecodeAndValidate(r, &req); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	a, err := h.service.CreateAdmin(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusCreated, a)
}

func (h *Handler) getAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := adminID(r)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	a, err := h.service.GetAdmin(r.Context(), id)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, a)
}

func (h *Handler) updateAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := adminID(r)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	var req UpdateAdminRequest
	if err := web.DecodeAndValidate(r, &req); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	a, err := h.service.UpdateAdmin(r.Context(), id, req)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, a)
}

func (h *Handler) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := adminID(r)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	caller, _ := access.FromContext(r.Context())
	if err := h.service.DeleteAdmin(r.Context(), caller.ID, id); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, web.Message{Message: "admin deleted"})
}

func adminID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid admin id")
	}
	return id, nil
}
