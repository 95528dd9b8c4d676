package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleListProducts_All(t *testing.T) {
	catalog := new(MockProductCatalog)
	handler := NewProductHandler(catalog, zap.NewNop())

	products := []*models.Product{
		{ID: uuid.New(), Name: "Galaxy S25", Brand: models.BrandSamsung, Price: 899},
		{ID: uuid.New(), Name: "Pixel 9", Brand: models.BrandGoogle, Price: 799},
	}
	catalog.On("ListProducts", mock.Anything, "").Return(products, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	handler.HandleListProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool             `json:"success"`
		Data    []models.Product `json:"data"`
		Count   *int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Count)
	assert.Equal(t, 2, *body.Count)
	assert.Len(t, body.Data, 2)
}

func TestHandleListProducts_BrandFilter(t *testing.T) {
	catalog := new(MockProductCatalog)
	handler := NewProductHandler(catalog, zap.NewNop())

	catalog.On("ListProducts", mock.Anything, "Apple").Return([]*models.Product{
		{ID: uuid.New(), Name: "iPhone 17", Brand: models.BrandApple, Price: 999},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?brand=Apple", nil)
	handler.HandleListProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	catalog.AssertCalled(t, "ListProducts", mock.Anything, "Apple")
}

func TestHandleListProducts_InvalidBrand(t *testing.T) {
	catalog := new(MockProductCatalog)
	handler := NewProductHandler(catalog, zap.NewNop())

	catalog.On("ListProducts", mock.Anything, "Nokia").Return(nil, services.ErrInvalidBrand)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?brand=Nokia", nil)
	handler.HandleListProducts(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListProducts_EmptyCatalog(t *testing.T) {
	catalog := new(MockProductCatalog)
	handler := NewProductHandler(catalog, zap.NewNop())

	catalog.On("ListProducts", mock.Anything, "").Return([]*models.Product{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	handler.HandleListProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestHandleGetProduct_Success(t *testing.T) {
	catalog := new(MockProductCatalog)
	handler := NewProductHandler(catalog, zap.NewNop())

	product := &models.Product{ID: uuid.New(), Name: "Pixel 9", Brand: models.BrandGoogle, Price: 799}
	catalog.On("GetProduct", mock.Anything, product.ID).Return(product, nil)

	router := chi.NewRouter()
	router.Get("/api/products/{id}", handler.HandleGetProduct)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+product.ID.String(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pixel 9")
}

func TestHandleGetProduct_InvalidID(t *testing.T) {
	handler := NewProductHandler(new(MockProductCatalog), zap.NewNop())

	router := chi.NewRouter()
	router.Get("/api/products/{id}", handler.HandleGetProduct)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetProduct_NotFound(t *testing.T) {
	catalog := new(MockProductCatalog)
	handler := NewProductHandler(catalog, zap.NewNop())

	catalog.On("GetProduct", mock.Anything, mock.Anything).Return(nil, services.ErrProductNotFound)

	router := chi.NewRouter()
	router.Get("/api/products/{id}", handler.HandleGetProduct)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+uuid.NewString(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
