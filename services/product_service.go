package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/repositories"
	"go.uber.org/zap"
)

// ProductService provides read access to the product catalog
type ProductService struct {
	products repositories.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products repositories.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		logger:   logger,
	}
}

// ListProducts returns the catalog, optionally filtered by brand.
// An empty brand means no filter.
func (s *ProductService) ListProducts(ctx context.Context, brand string) ([]*models.Product, error) {
	if brand == "" {
		products, err := s.products.List(ctx)
		if err != nil {
			return nil, WrapInternal("failed to list products", err)
		}
		return products, nil
	}

	b := models.Brand(brand)
	if !b.Valid() {
		return nil, ErrInvalidBrand.WithDetail("brand", brand)
	}

	products, err := s.products.ListByBrand(ctx, b)
	if err != nil {
		return nil, WrapInternal("failed to list products by brand", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by id
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, WrapInternal("failed to get product", err)
	}
	return product, nil
}
