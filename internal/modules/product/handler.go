package product

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kuma-mall/admin-backend/internal/apperr"
	"github.com/kuma-mall/admin-backend/internal/modules/access"
	"github.com/kuma-mall/admin-backend/internal/web"
	"go.uber.org/zap"
)

// Handler exposes standalone product endpoints. Reads are public, writes need a session.
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
	router.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)                      // GET    /products
		r.With(authed).Post("/", h.createProduct)       // POST   /products
		r.Get("/{id}", h.getProduct)                    // GET    /products/{id}
		r.With(authed).Put("/{id}", h.updateProduct)    // PUT    /products/{id}
		r.With(authed).Delete("/{id}", h.deleteProduct) // DELETE /products/{id}
	})
}

type productResponse struct {
	Message string   `json:"message"`
	Product *Product `json:"product"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := web.DecodeAndValidate(r, &req); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusCreated, productResponse{Message: "product created", Product: p})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	var req ProductRequest
	if err := web.DecodeAndValidate(r, &req); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, productResponse{Message: "product updated", Product: p})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		web.Error(w, r, h.logger, err)
		return
	}
	web.JSON(w, http.StatusOK, web.Message{Message: "product deleted"})
}

func productID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid product id")
	}
	return id, nil
}
