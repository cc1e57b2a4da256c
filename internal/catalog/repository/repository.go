package repository

import (
	"context"

	"watches-backend/internal/catalog/domain"
)

// CatalogRepository reads products and delivery services. Lookups return
// nil, nil when nothing matches.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	CreateProduct(ctx context.Context, product *domain.Product) error
	CreateDeliveryService(ctx context.Context, service *domain.DeliveryService) error
	FindCategory(ctx context.Context, id string) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)

	// ActiveProducts joins the category name onto every active product
	ActiveProducts(ctx context.Context) ([]*domain.Product, error)
	FindProduct(ctx context.Context, id string) (*domain.Product, error)

	// AvailableServices counts the orders shipped with each available service
	AvailableServices(ctx context.Context) ([]*domain.DeliveryService, error)
	FindService(ctx context.Context, id string) (*domain.DeliveryService, error)

	// SetProductDelivery assigns serviceID, or clears it when serviceID is nil
	SetProductDelivery(ctx context.Context, productID string, serviceID *string) error
}
