package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"watches-backend/internal/catalog/domain"
	catalogdto "watches-backend/internal/catalog/dto"
	"watches-backend/internal/catalog/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubCatalog struct {
	usecase.CatalogUsecase
}

func (stubCatalog) ListProducts(context.Context) ([]*domain.Product, error) {
	return []*domain.Product{{ID: "p-1", Name: "Daytona", IsActive: true}}, nil
}

func (stubCatalog) AssignDelivery(_ context.Context, productID, serviceID string) (*domain.Product, error) {
	switch {
	case productID != "p-1":
		return nil, usecase.ErrProductNotFound
	case serviceID == "closed":
		return nil, usecase.ErrServiceUnavailable
	}
	return &domain.Product{ID: productID, DeliveryServiceID: &serviceID}, nil
}

func (stubCatalog) CreateCategory(_ context.Context, req *catalogdto.CreateCategoryRequest) (*domain.Category, error) {
	if req.Name == "Dive" {
		return nil, usecase.ErrCategoryExists
	}
	return &domain.Category{ID: "c-1", Name: req.Name}, nil
}

func (stubCatalog) CreateProduct(_ context.Context, req *catalogdto.CreateProductRequest) (*domain.Product, error) {
	if req.CategoryID != nil && *req.CategoryID != "c-1" {
		return nil, usecase.ErrCategoryNotFound
	}
	return &domain.Product{ID: "p-2", Name: req.Name, Price: req.Price, IsActive: req.IsActive == nil || *req.IsActive}, nil
}

func TestCatalogHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(stubCatalog{})
	r := gin.New()
	r.GET("/products", h.GetProducts)
	r.PUT("/products/:id/delivery", h.AssignDelivery)
	r.POST("/products", h.CreateProduct)
	r.POST("/categories", h.CreateCategory)
	r.POST("/delivery-services", h.CreateDeliveryService)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantBody string
	}{
		{name: "list", method: http.MethodGet, path: "/products", wantCode: http.StatusOK, wantBody: "Daytona"},
		{name: "assign", method: http.MethodPut, path: "/products/p-1/delivery", body: `{"service_id":"ds-1"}`, wantCode: http.StatusOK, wantBody: `"delivery_service_id":"ds-1"`},
		{name: "assign without service", method: http.MethodPut, path: "/products/p-1/delivery", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "unknown product", method: http.MethodPut, path: "/products/p-9/delivery", body: `{"service_id":"ds-1"}`, wantCode: http.StatusNotFound},
		{name: "unavailable service", method: http.MethodPut, path: "/products/p-1/delivery", body: `{"service_id":"closed"}`, wantCode: http.StatusConflict},
		{name: "create product", method: http.MethodPost, path: "/products", body: `{"name":"GMT-Master II","price":10700,"stock_quantity":2,"category_id":"c-1"}`, wantCode: http.StatusCreated, wantBody: `"is_active":true`},
		{name: "create product negative price", method: http.MethodPost, path: "/products", body: `{"name":"x","price":-1}`, wantCode: http.StatusBadRequest},
		{name: "create product unknown category", method: http.MethodPost, path: "/products", body: `{"name":"x","category_id":"c-9"}`, wantCode: http.StatusBadRequest},
		{name: "create category", method: http.MethodPost, path: "/categories", body: `{"name":"Pilot"}`, wantCode: http.StatusCreated, wantBody: "Pilot"},
		{name: "duplicate category", method: http.MethodPost, path: "/categories", body: `{"name":"Dive"}`, wantCode: http.StatusConflict},
		{name: "delivery service without days", method: http.MethodPost, path: "/delivery-services", body: `{"name":"Courier"}`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}
