package usecase

import (
	"context"
	"errors"

	"watches-backend/internal/catalog/domain"
	catalogdto "watches-backend/internal/catalog/dto"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrServiceNotFound    = errors.New("delivery service not found")
	ErrServiceUnavailable = errors.New("delivery service is not available")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryExists     = errors.New("category already exists")
)

type CatalogUsecase interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListDeliveryServices(ctx context.Context) ([]*domain.DeliveryService, error)
	AssignDelivery(ctx context.Context, productID, serviceID string) (*domain.Product, error)
	RemoveDelivery(ctx context.Context, productID string) (*domain.Product, error)

	CreateCategory(ctx context.Context, req *catalogdto.CreateCategoryRequest) (*domain.Category, error)
	CreateProduct(ctx context.Context, req *catalogdto.CreateProductRequest) (*domain.Product, error)
	CreateDeliveryService(ctx context.Context, req *catalogdto.CreateDeliveryServiceRequest) (*domain.DeliveryService, error)
}
