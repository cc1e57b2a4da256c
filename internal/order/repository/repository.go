package repository

import (
	"context"

	"watches-backend/internal/order/domain"
	"watches-backend/pkg/kanban"
)

// OrderRepository defines the data access for orders. Lookups return nil, nil
// when the order does not exist.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error

	FindByID(ctx context.Context, id string) (*domain.Order, error)

	// List filters by status when status is non-nil, newest first
	List(ctx context.Context, status *kanban.Status, limit, offset int) ([]*domain.Order, int64, error)

	Recent(ctx context.Context, limit int) ([]*domain.Order, error)

	// BoardFeed returns every order that is not cancelled, oldest first
	BoardFeed(ctx context.Context) ([]*domain.Order, error)

	// UpdateStatus reports false when no order has the id
	UpdateStatus(ctx context.Context, id string, status kanban.Status) (bool, error)

	Delete(ctx context.Context, id string) (bool, error)
}
