package repository

import (
	"context"
	"errors"
	"time"

	"watches-backend/internal/order/domain"
	"watches-backend/pkg/kanban"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormOrderRepository implements OrderRepository using GORM
type gormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = kanban.StatusPending
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) List(ctx context.Context, status *kanban.Status, limit, offset int) ([]*domain.Order, int64, error) {
	var orders []*domain.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Order{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Items").
		Order("created_at DESC, id ASC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

func (r *gormOrderRepository) Recent(ctx context.Context, limit int) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) BoardFeed(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status <> ?", kanban.StatusCancelled).
		Order("created_at ASC, id ASC").
		Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, id string, status kanban.Status) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormOrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Order{})
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	return found, err
}
