package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/repositories"
	"go.uber.org/zap"
)

// OrderService manages order placement and retrieval with ownership checks
type OrderService struct {
	orders repositories.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders repositories.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		logger: logger,
	}
}

// CreateOrder places a new order for the given user
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, items []models.OrderItem, totalAmount float64) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if totalAmount <= 0 {
		return nil, ErrInvalidInput.WithDetail("totalAmount", totalAmount)
	}

	order := models.NewOrder(userID, items, totalAmount)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, WrapInternal("failed to create order", err)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("total", totalAmount))

	return order, nil
}

// GetOrder retrieves an order by id. Only the owner may read it.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, WrapInternal("failed to get order", err)
	}

	if order.UserID != userID {
		return nil, ErrOrderNotOwned
	}

	return order, nil
}

// ListOrders returns the caller's orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	orders, err := s.orders.GetByUserID(ctx, userID)
	if err != nil {
		return nil, WrapInternal("failed to list orders", err)
	}
	return orders, nil
}
