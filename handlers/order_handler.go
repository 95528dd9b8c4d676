package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phonestore/backend/middleware"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/utils"
	"go.uber.org/zap"
)

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	Products    []models.OrderItem `json:"products" validate:"required,min=1,dive"`
	TotalAmount float64            `json:"totalAmount" validate:"required,gt=0"`
}

// OrderPlacer defines the interface for order operations
type OrderPlacer interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, items []models.OrderItem, totalAmount float64) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)
}

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orders OrderPlacer
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderPlacer, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// HandleCreateOrder handles POST /api/orders
func (h *OrderHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())
	if principal == nil {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error())
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), principal.UserID, req.Products, req.TotalAmount)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, order)
}

// HandleListOrders handles GET /api/orders
func (h *OrderHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())
	if principal == nil {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), principal.UserID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []*models.Order{}
	}
	_ = utils.WriteOKWithCount(w, orders, len(orders))
}

// HandleGetOrder handles GET /api/orders/{id}
func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())
	if principal == nil {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid order ID format")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), principal.UserID, id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, order)
}
