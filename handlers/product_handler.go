package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/utils"
	"go.uber.org/zap"
)

// ProductCatalog defines the interface for catalog reads
type ProductCatalog interface {
	ListProducts(ctx context.Context, brand string) ([]*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	catalog ProductCatalog
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog ProductCatalog, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleListProducts handles GET /api/products with an optional ?brand= filter
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	brand := r.URL.Query().Get("brand")

	products, err := h.catalog.ListProducts(r.Context(), brand)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if products == nil {
		products = []*models.Product{}
	}
	_ = utils.WriteOKWithCount(w, products, len(products))
}

// HandleGetProduct handles GET /api/products/{id}
func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid product ID format")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, product)
}
