package group

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kuma-mall/admin-backend/internal/apperr"
	"github.com/kuma-mall/admin-backend/internal/modules/access"
	"github.com/kuma-mall/admin-backend/internal/web"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	guard   *access.Guard
	logger  *zap.Logger
}

func NewHandler(service Service, guard *access.Guard, logger *zap.Logger) *Handler {
	return &Handler{service: service, guard: guard, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	authed := h.guard.Require(access.Authenticated)
	router.Route("/groups", func(r chi.Router) {
		r.Get("/", h.listGroups)
		r.With(authed).Post("/", h.createGroup)
		r.With(authed).Delete("/items/{id}", h.deleteItem)
		r.Get("/{uuid}", h.getGroup)
		r.With(authed).Put("/{uuid}", h.reconcileGroup)
		r.With(authed).Delete("/{uuid}", h.deleteGroup)
	})
}

type detailResponse struct {
	Message string `json:"message"`
	*Detail
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListGroups(r.Context())
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, groups)
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	d, err := h.service.CreateGroup(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusCreated, detailResponse{Message: "group created", Detail: d})
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "uuid"))
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	d, err := h.service.GetGroup(r.Context(), id)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, d)
}

func (h *Handler) reconcileGroup(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "uuid"))
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	var req Request
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	d, err := h.service.ReconcileGroup(r.Context(), id, req)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, detailResponse{Message: "group updated", Detail: d})
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "uuid"))
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	if err := h.service.DeleteGroup(r.Context(), id); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, web.Message{Message: "group deleted"})
}

// deleteItem handles DELETE /groups/items/{id}?sku=...&uuid=...
func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		web.Error(w, r, h.logger, apperr.Validation("invalid item id"))
		return
	}
	q := r.URL.Query()
	sku := q.Get("sku")
	if sku == "" {
		web.Error(w, r, h.logger, apperr.Validation("id and sku are required"))
		return
	}

	var groupID *uuid.UUID
	if raw := q.Get("uuid"); raw != "" {
		parsed, err := parseUUID(raw)
		if err != nil {
			web.Error(w, r, h.logger, err)
			return
		}
		groupID = &parsed
	}

	if err := h.service.DeleteItem(r.Context(), id, sku, groupID); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, web.Message{Message: "item deleted"})
}

func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid group uuid")
	}
	return id, nil
}
