package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand is the phone manufacturer carried by the catalog.
type Brand string

const (
	BrandGoogle  Brand = "Google"
	BrandApple   Brand = "Apple"
	BrandSamsung Brand = "Samsung"
)

// Valid reports whether the brand is one of the known manufacturers.
func (b Brand) Valid() bool {
	switch b {
	case BrandGoogle, BrandApple, BrandSamsung:
		return true
	}
	return false
}

// Product represents a catalog entry.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Brand       Brand     `json:"brand" db:"brand"`
	Price       float64   `json:"price" db:"price"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
