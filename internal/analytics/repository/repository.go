package repository

import (
	"context"
	"time"

	"watches-backend/internal/analytics/domain"
	"watches-backend/pkg/kanban"
)

// AnalyticsRepository runs the read-only aggregate queries behind the dashboard
type AnalyticsRepository interface {
	CountOrders(ctx context.Context, w domain.Window) (int64, error)
	CountOrdersWithStatus(ctx context.Context, statuses ...kanban.Status) (int64, error)
	// DeliveredRevenue sums delivered orders created inside w
	DeliveredRevenue(ctx context.Context, w domain.Window) (float64, error)
	CountActiveProducts(ctx context.Context) (int64, error)
	CountProductsCreated(ctx context.Context, w domain.Window) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	// OrdersSince returns non-cancelled orders created at or after since, oldest first
	OrdersSince(ctx context.Context, since time.Time) ([]domain.OrderPoint, error)
}
