package usecase

import (
	"context"
	"fmt"
	"strings"

	"watches-backend/internal/catalog/domain"
	catalogdto "watches-backend/internal/catalog/dto"
	"watches-backend/internal/catalog/repository"

	log "github.com/sirupsen/logrus"
)

type catalogUsecase struct {
	repo repository.CatalogRepository
}

func NewCatalogUsecase(repo repository.CatalogRepository) CatalogUsecase {
	return &catalogUsecase{repo: repo}
}

func (u *catalogUsecase) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := u.repo.ActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}

func (u *catalogUsecase) ListDeliveryServices(ctx context.Context) ([]*domain.DeliveryService, error) {
	services, err := u.repo.AvailableServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list delivery services: %w", err)
	}
	if services == nil {
		services = []*domain.DeliveryService{}
	}
	return services, nil
}

func (u *catalogUsecase) AssignDelivery(ctx context.Context, productID, serviceID string) (*domain.Product, error) {
	if _, err := u.product(ctx, productID); err != nil {
		return nil, err
	}

	service, err := u.repo.FindService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("find delivery service %s: %w", serviceID, err)
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}
	if !service.IsAvailable {
		return nil, ErrServiceUnavailable
	}

	if err := u.repo.SetProductDelivery(ctx, productID, &serviceID); err != nil {
		return nil, fmt.Errorf("assign delivery: %w", err)
	}
	log.Printf("[Catalog] Product %s now ships with %s", productID, service.Name)
	return u.product(ctx, productID)
}

func (u *catalogUsecase) RemoveDelivery(ctx context.Context, productID string) (*domain.Product, error) {
	if _, err := u.product(ctx, productID); err != nil {
		return nil, err
	}
	if err := u.repo.SetProductDelivery(ctx, productID, nil); err != nil {
		return nil, fmt.Errorf("remove delivery: %w", err)
	}
	log.Printf("[Catalog] Removed delivery service from product %s", productID)
	return u.product(ctx, productID)
}

func (u *catalogUsecase) CreateCategory(ctx context.Context, req *catalogdto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	existing, err := u.repo.FindCategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find category %q: %w", name, err)
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := &domain.Category{Name: name, Description: req.Description}
	if err := u.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	log.Printf("[Catalog] Created category %s", category.Name)
	return category, nil
}

func (u *catalogUsecase) CreateProduct(ctx context.Context, req *catalogdto.CreateProductRequest) (*domain.Product, error) {
	if req.CategoryID != nil {
		category, err := u.repo.FindCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("find category %s: %w", *req.CategoryID, err)
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	product := &domain.Product{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if err := u.repo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	log.Printf("[Catalog] Created product %s (%s)", product.ID, product.Name)
	return u.product(ctx, product.ID)
}

func (u *catalogUsecase) CreateDeliveryService(ctx context.Context, req *catalogdto.CreateDeliveryServiceRequest) (*domain.DeliveryService, error) {
	service := &domain.DeliveryService{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		EstimatedDays: req.EstimatedDays,
		Rating:        req.Rating,
		ImageURL:      req.ImageURL,
		IsAvailable:   req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := u.repo.CreateDeliveryService(ctx, service); err != nil {
		return nil, fmt.Errorf("create delivery service: %w", err)
	}
	log.Printf("[Catalog] Created delivery service %s", service.Name)
	return service, nil
}

func (u *catalogUsecase) product(ctx context.Context, id string) (*domain.Product, error) {
	product, err := u.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
