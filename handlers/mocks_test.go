package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/services"
	"github.com/stretchr/testify/mock"
)

// MockSignInService is a mock implementation of SignInService
type MockSignInService struct {
	mock.Mock
}

func (m *MockSignInService) SignInWithGoogle(ctx context.Context, idToken, fullName string) (*services.SignInResult, error) {
	args := m.Called(ctx, idToken, fullName)
	if result := args.Get(0); result != nil {
		return result.(*services.SignInResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserDirectory is a mock implementation of UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockProductCatalog is a mock implementation of ProductCatalog
type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) ListProducts(ctx context.Context, brand string) ([]*models.Product, error) {
	args := m.Called(ctx, brand)
	if products := args.Get(0); products != nil {
		return products.([]*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product := args.Get(0); product != nil {
		return product.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockOrderPlacer is a mock implementation of OrderPlacer
type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) CreateOrder(ctx context.Context, userID uuid.UUID, items []models.OrderItem, totalAmount float64) (*models.Order, error) {
	args := m.Called(ctx, userID, items, totalAmount)
	if order := args.Get(0); order != nil {
		return order.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderPlacer) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if order := args.Get(0); order != nil {
		return order.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderPlacer) ListOrders(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, userID)
	if orders := args.Get(0); orders != nil {
		return orders.([]*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}
