package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phonestore/backend/models"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateGoogleID is returned when a user insert collides with the
	// unique google_id constraint. Callers resolve the race by re-fetching
	// the canonical row.
	ErrDuplicateGoogleID = errors.New("google id already registered")
)

// UserRepository is the user directory: it maps external identities to
// internal user records.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicateGoogleID when another
	// user already holds the same google_id.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by internal id; ErrNotFound when absent.
	GetByID(ctx context.Context, uid uuid.UUID) (*models.User, error)

	// GetByGoogleID retrieves a user by Google subject; ErrNotFound when absent.
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)

	// TouchLastLogin advances last_login to now; ErrNotFound when the record vanished.
	TouchLastLogin(ctx context.Context, uid uuid.UUID) error
}

// ProductRepository handles catalog data operations
type ProductRepository interface {
	// Create inserts a new product
	Create(ctx context.Context, product *models.Product) error

	// GetByID retrieves a product by id; ErrNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)

	// List retrieves all products ordered by name
	List(ctx context.Context) ([]*models.Product, error)

	// ListByBrand retrieves products of one brand ordered by name
	ListByBrand(ctx context.Context, brand models.Brand) ([]*models.Product, error)
}

// OrderRepository handles order data operations
type OrderRepository interface {
	// Create inserts a new order
	Create(ctx context.Context, order *models.Order) error

	// GetByID retrieves an order by id; ErrNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)

	// GetByUserID retrieves a user's orders, newest first
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)
}

// Repositories bundles all repository instances
type Repositories struct {
	Users    UserRepository
	Products ProductRepository
	Orders   OrderRepository
}
