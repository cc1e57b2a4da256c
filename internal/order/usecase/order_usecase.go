package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"watches-backend/internal/order/domain"
	orderdto "watches-backend/internal/order/dto"
	"watches-backend/internal/order/repository"
	"watches-backend/pkg/fuzzy"
	"watches-backend/pkg/kanban"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type orderUsecase struct {
	orderRepo repository.OrderRepository
	products  ProductLookup
	observer  StatusObserver
	now       func() time.Time
}

// NewOrderUsecase creates the order usecase. observer may be nil.
func NewOrderUsecase(orderRepo repository.OrderRepository, products ProductLookup, observer StatusObserver) OrderUsecase {
	return &orderUsecase{
		orderRepo: orderRepo,
		products:  products,
		observer:  observer,
		now:       time.Now,
	}
}

func (u *orderUsecase) ListOrders(ctx context.Context, status string, limit, offset int) ([]*domain.Order, int64, error) {
	var filter *kanban.Status
	if status != "" {
		s := kanban.Status(status)
		if !domain.ValidStatus(s) {
			return nil, 0, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		filter = &s
	}

	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	orders, total, err := u.orderRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return nonNil(orders), total, nil
}

func (u *orderUsecase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := u.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (u *orderUsecase) RecentOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := u.orderRepo.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return nonNil(orders), nil
}

func (u *orderUsecase) BoardFeed(ctx context.Context) ([]*domain.Order, error) {
	orders, err := u.orderRepo.BoardFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("board feed: %w", err)
	}
	return nonNil(orders), nil
}

func (u *orderUsecase) SearchOrders(ctx context.Context, query string, limit int) ([]*domain.Order, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 || limit > MaxListLimit {
		limit = DefaultListLimit
	}

	candidates, _, err := u.orderRepo.List(ctx, nil, SearchScanLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}

	type scored struct {
		order *domain.Order
		score float64
	}
	var matches []scored
	for _, o := range candidates {
		fields := []fuzzy.Field{
			{Text: o.OrderNumber, Weight: 1.5},
			{Text: o.CustomerName, Weight: 1},
			{Text: o.CustomerEmail, Weight: 0.6},
			{Text: o.CustomerPhone, Weight: 0.4},
		}
		if !fuzzy.MatchAny(query, fields...) {
			continue
		}
		matches = append(matches, scored{order: o, score: fuzzy.Score(query, fields...)})
	}

	// Candidates arrive newest first, so ties keep that order
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	result := make([]*domain.Order, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(result) == limit {
			break
		}
		result = append(result, m.order)
	}
	log.WithFields(log.Fields{"query": query, "scanned": len(candidates), "matched": len(matches)}).Debug("[Order] Search")
	return result, nil
}

func (u *orderUsecase) CreateOrder(ctx context.Context, userID string, req *orderdto.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidOrder)
	}
	if strings.TrimSpace(req.CustomerAddress) == "" {
		return nil, fmt.Errorf("%w: delivery address is required", ErrInvalidOrder)
	}

	// Repeated lines of one product are merged so stock is checked once
	quantities := make(map[string]int)
	var productIDs []string
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity of %s must be positive", ErrInvalidOrder, it.ProductID)
		}
		if _, seen := quantities[it.ProductID]; !seen {
			productIDs = append(productIDs, it.ProductID)
		}
		quantities[it.ProductID] += it.Quantity
	}

	var (
		items []domain.OrderItem
		total float64
	)
	for _, id := range productIDs {
		product, err := u.products.FindProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find product %s: %w", id, err)
		}
		if product == nil || !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is not for sale", ErrInvalidOrder, id)
		}
		qty := quantities[id]
		if product.StockQuantity < qty {
			return nil, fmt.Errorf("%w: only %d of %s in stock", ErrInvalidOrder, product.StockQuantity, product.Name)
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  qty,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(qty)
	}

	now := u.now()
	order := &domain.Order{
		OrderNumber:     newOrderNumber(now),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		Status:          kanban.StatusPending,
		TotalAmount:     math.Round(total*100) / 100,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   domain.PaymentPending,
		Notes:           req.Notes,
		Items:           items,
		CreatedAt:       now,
	}
	if userID != "" {
		order.UserID = &userID
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	log.WithFields(log.Fields{"order": order.ID, "number": order.OrderNumber, "total": order.TotalAmount}).Info("[Order] Order placed")
	return order, nil
}

// newOrderNumber is ORD-<yyyymmdd>-<6 hex chars>
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(uuid.New().String()[:6]))
}

func (u *orderUsecase) UpdateOrderStatus(ctx context.Context, id, status string) (order *domain.Order, err error) {
	s := kanban.Status(status)
	defer func() {
		if u.observer == nil {
			return
		}
		label := status
		if !domain.ValidStatus(s) {
			label = "invalid"
		}
		u.observer.ObserveStatusUpdate(label, err)
	}()

	if !domain.ValidStatus(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	found, err := u.orderRepo.UpdateStatus(ctx, id, s)
	if err != nil {
		log.Printf("[Order] Failed to update status of %s: %v", id, err)
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	if !found {
		return nil, ErrOrderNotFound
	}

	log.WithFields(log.Fields{"order": id, "status": s}).Info("[Order] Status updated")
	return u.GetOrder(ctx, id)
}

func (u *orderUsecase) DeleteOrder(ctx context.Context, id string) error {
	found, err := u.orderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if !found {
		return ErrOrderNotFound
	}
	log.Printf("[Order] Deleted order %s", id)
	return nil
}

func nonNil(orders []*domain.Order) []*domain.Order {
	if orders == nil {
		return []*domain.Order{}
	}
	return orders
}
