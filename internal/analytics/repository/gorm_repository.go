package repository

import (
	"context"
	"time"

	"watches-backend/internal/analytics/domain"
	authdomain "watches-backend/internal/auth/domain"
	catalogdomain "watches-backend/internal/catalog/domain"
	orderdomain "watches-backend/internal/order/domain"
	"watches-backend/pkg/kanban"

	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func within(q *gorm.DB, column string, w domain.Window) *gorm.DB {
	if !w.From.IsZero() {
		q = q.Where(column+" >= ?", w.From)
	}
	if !w.To.IsZero() {
		q = q.Where(column+" < ?", w.To)
	}
	return q
}

func (r *analyticsRepository) count(ctx context.Context, model interface{}, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(model)
	if scope != nil {
		q = scope(q)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *analyticsRepository) CountOrders(ctx context.Context, w domain.Window) (int64, error) {
	return r.count(ctx, &orderdomain.Order{}, func(q *gorm.DB) *gorm.DB {
		return within(q, "created_at", w)
	})
}

func (r *analyticsRepository) CountOrdersWithStatus(ctx context.Context, statuses ...kanban.Status) (int64, error) {
	return r.count(ctx, &orderdomain.Order{}, func(q *gorm.DB) *gorm.DB {
		return q.Where("status IN ?", statuses)
	})
}

func (r *analyticsRepository) DeliveredRevenue(ctx context.Context, w domain.Window) (float64, error) {
	var total float64
	q := r.db.WithContext(ctx).Model(&orderdomain.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ?", kanban.StatusDelivered)
	err := within(q, "created_at", w).Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) CountActiveProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, &catalogdomain.Product{}, func(q *gorm.DB) *gorm.DB {
		return q.Where("is_active = ?", true)
	})
}

func (r *analyticsRepository) CountProductsCreated(ctx context.Context, w domain.Window) (int64, error) {
	return r.count(ctx, &catalogdomain.Product{}, func(q *gorm.DB) *gorm.DB {
		return within(q, "created_at", w)
	})
}

func (r *analyticsRepository) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, &catalogdomain.Category{}, nil)
}

func (r *analyticsRepository) CountCustomers(ctx context.Context) (int64, error) {
	return r.count(ctx, &authdomain.User{}, func(q *gorm.DB) *gorm.DB {
		return q.Where("role = ?", authdomain.RoleCustomer)
	})
}

func (r *analyticsRepository) OrdersSince(ctx context.Context, since time.Time) ([]domain.OrderPoint, error) {
	var points []domain.OrderPoint
	err := r.db.WithContext(ctx).Model(&orderdomain.Order{}).
		Select("created_at, total_amount").
		Where("created_at >= ? AND status <> ?", since, kanban.StatusCancelled).
		Order("created_at ASC").
		Scan(&points).Error
	return points, err
}
