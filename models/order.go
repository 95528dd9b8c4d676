package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is a product snapshot captured at checkout time. Name and price
// are denormalized so later catalog edits do not rewrite order history.
type OrderItem struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Price     float64   `json:"price" validate:"required,gt=0"`
}

// Order represents a completed checkout. UserID is the internal user id of
// the owner; ownership checks compare it, never the Google subject.
type Order struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"userId" db:"user_id"`
	Products    []OrderItem `json:"products" db:"products"`
	TotalAmount float64     `json:"totalAmount" db:"total_amount"`
	Status      OrderStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order for the given user.
func NewOrder(userID uuid.UUID, items []OrderItem, totalAmount float64) *Order {
	return &Order{
		ID:          uuid.New(),
		UserID:      userID,
		Products:    items,
		TotalAmount: totalAmount,
		Status:      OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}
