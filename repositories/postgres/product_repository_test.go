package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProduct(name string, brand models.Brand, price float64) *models.Product {
	now := time.Now().UTC()
	return &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Brand:       brand,
		Price:       price,
		Description: "a phone",
		ImageURL:    "https://cdn.example.com/" + name + ".png",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func productRows(products ...*models.Product) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "brand", "price", "description", "image_url", "created_at", "updated_at",
	})
	for _, p := range products {
		rows.AddRow(p.ID, p.Name, p.Brand, p.Price, p.Description, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func TestProductRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, zap.NewNop())
	product := testProduct("Pixel 9", models.BrandGoogle, 799)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs(product.ID, product.Name, product.Brand, product.Price,
			product.Description, product.ImageURL, product.CreatedAt, product.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), product)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, zap.NewNop())
	want := testProduct("Pixel 9", models.BrandGoogle, 799)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(want.ID).
		WillReturnRows(productRows(want))

	got, err := repo.GetByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, models.BrandGoogle, got.Brand)
	assert.Equal(t, 799.0, got.Price)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, zap.NewNop())

	a := testProduct("Galaxy S25", models.BrandSamsung, 899)
	b := testProduct("Pixel 9", models.BrandGoogle, 799)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products ORDER BY name")).
		WillReturnRows(productRows(a, b))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Galaxy S25", got[0].Name)
	assert.Equal(t, "Pixel 9", got[1].Name)
}

func TestProductRepository_ListByBrand(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, zap.NewNop())

	want := testProduct("iPhone 17", models.BrandApple, 999)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE brand = $1")).
		WithArgs(models.BrandApple).
		WillReturnRows(productRows(want))

	got, err := repo.ListByBrand(context.Background(), models.BrandApple)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.BrandApple, got[0].Brand)
}

func TestProductRepository_ListByBrand_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE brand = $1")).
		WithArgs(models.BrandSamsung).
		WillReturnRows(productRows())

	got, err := repo.ListByBrand(context.Background(), models.BrandSamsung)
	require.NoError(t, err)
	assert.Empty(t, got)
}
