package repository

import (
	"context"
	"errors"
	"time"

	"watches-backend/internal/catalog/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *catalogRepository) CreateDeliveryService(ctx context.Context, service *domain.DeliveryService) error {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	service.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *catalogRepository) FindCategory(ctx context.Context, id string) (*domain.Category, error) {
	return r.findCategory(ctx, "id = ?", id)
}

func (r *catalogRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findCategory(ctx, "LOWER(name) = LOWER(?)", name)
}

func (r *catalogRepository) findCategory(ctx context.Context, query string, arg interface{}) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).Where(query, arg).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepository) productQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("products.*, product_categories.name AS category_name").
		Joins("LEFT JOIN product_categories ON product_categories.id = products.category_id")
}

func (r *catalogRepository) ActiveProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.productQuery(ctx).
		Where("products.is_active = ?", true).
		Order("products.name ASC").
		Find(&products).Error
	return products, err
}

func (r *catalogRepository) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.productQuery(ctx).Where("products.id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) serviceQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.DeliveryService{}).
		Select("delivery_services.*, (SELECT COUNT(*) FROM orders WHERE orders.delivery_service_id = delivery_services.id) AS order_count")
}

func (r *catalogRepository) AvailableServices(ctx context.Context) ([]*domain.DeliveryService, error) {
	var services []*domain.DeliveryService
	err := r.serviceQuery(ctx).
		Where("delivery_services.is_available = ?", true).
		Order("delivery_services.name ASC").
		Find(&services).Error
	return services, err
}

func (r *catalogRepository) FindService(ctx context.Context, id string) (*domain.DeliveryService, error) {
	var service domain.DeliveryService
	err := r.serviceQuery(ctx).Where("delivery_services.id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *catalogRepository) SetProductDelivery(ctx context.Context, productID string, serviceID *string) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", productID).
		Updates(map[string]interface{}{
			"delivery_service_id": serviceID,
			"updated_at":          time.Now(),
		}).Error
}
