package usecase

import (
	"context"
	"errors"

	catalogdomain "watches-backend/internal/catalog/domain"
	"watches-backend/internal/order/domain"
	orderdto "watches-backend/internal/order/dto"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrEmptyQuery    = errors.New("search query is empty")
	ErrInvalidOrder  = errors.New("invalid order")
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	RecentLimit      = 10

	// SearchScanLimit bounds how many orders a search ranks in memory
	SearchScanLimit = 1000
)

// OrderUsecase defines the order operations behind the board
type OrderUsecase interface {
	// ListOrders treats an empty status as no filter
	ListOrders(ctx context.Context, status string, limit, offset int) ([]*domain.Order, int64, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	RecentOrders(ctx context.Context) ([]*domain.Order, error)
	BoardFeed(ctx context.Context) ([]*domain.Order, error)
	// SearchOrders ranks orders by a typo-tolerant match on number, customer and email
	SearchOrders(ctx context.Context, query string, limit int) ([]*domain.Order, error)

	// CreateOrder prices the items from the catalog and puts the order in
	// the pending column
	CreateOrder(ctx context.Context, userID string, req *orderdto.CreateOrderRequest) (*domain.Order, error)

	// UpdateOrderStatus is the remote side of a board move
	UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// StatusObserver is told about every status update attempt.
type StatusObserver interface {
	ObserveStatusUpdate(status string, err error)
}

// ProductLookup is the part of the catalog checkout needs. FindProduct returns
// nil, nil for an unknown product.
type ProductLookup interface {
	FindProduct(ctx context.Context, id string) (*catalogdomain.Product, error)
}
