package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"watches-backend/internal/analytics/domain"
	"watches-backend/internal/analytics/repository"
	"watches-backend/pkg/kanban"

	"golang.org/x/sync/errgroup"
)

type analyticsUsecase struct {
	repo repository.AnalyticsRepository
	now  func() time.Time
}

func NewAnalyticsUsecase(repo repository.AnalyticsRepository) AnalyticsUsecase {
	return &analyticsUsecase{repo: repo, now: time.Now}
}

func (u *analyticsUsecase) Summary(ctx context.Context) (*domain.Summary, error) {
	now := u.now().UTC()
	thisWeek := domain.Window{From: now.AddDate(0, 0, -7)}
	lastWeek := domain.Window{From: now.AddDate(0, 0, -14), To: thisWeek.From}

	var (
		s                         domain.Summary
		ordersNow, ordersPrev     int64
		revenueNow, revenuePrev   float64
		productsNow, productsPrev int64
	)

	g, ctx := errgroup.WithContext(ctx)
	run := func(name string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	run("total orders", func() (err error) { s.TotalOrders, err = u.repo.CountOrders(ctx, domain.Window{}); return })
	run("revenue", func() (err error) { s.TotalRevenue, err = u.repo.DeliveredRevenue(ctx, domain.Window{}); return })
	run("active products", func() (err error) { s.TotalProducts, err = u.repo.CountActiveProducts(ctx); return })
	run("pending deliveries", func() (err error) {
		s.PendingDeliveries, err = u.repo.CountOrdersWithStatus(ctx,
			kanban.StatusPending, kanban.StatusProcessing, kanban.StatusShipped)
		return
	})
	run("categories", func() (err error) { s.TotalCategories, err = u.repo.CountCategories(ctx); return })
	run("customers", func() (err error) { s.TotalCustomers, err = u.repo.CountCustomers(ctx); return })
	run("orders this week", func() (err error) { ordersNow, err = u.repo.CountOrders(ctx, thisWeek); return })
	run("orders last week", func() (err error) { ordersPrev, err = u.repo.CountOrders(ctx, lastWeek); return })
	run("revenue this week", func() (err error) { revenueNow, err = u.repo.DeliveredRevenue(ctx, thisWeek); return })
	run("revenue last week", func() (err error) { revenuePrev, err = u.repo.DeliveredRevenue(ctx, lastWeek); return })
	run("products this week", func() (err error) { productsNow, err = u.repo.CountProductsCreated(ctx, thisWeek); return })
	run("products last week", func() (err error) { productsPrev, err = u.repo.CountProductsCreated(ctx, lastWeek); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}

	s.GrowthMetrics = domain.GrowthMetrics{
		Orders:   Growth(float64(ordersNow), float64(ordersPrev)),
		Revenue:  Growth(revenueNow, revenuePrev),
		Products: Growth(float64(productsNow), float64(productsPrev)),
	}
	return &s, nil
}

func (u *analyticsUsecase) SalesSeries(ctx context.Context, timeframe string) ([]domain.SalesPoint, error) {
	start, ok := Timeframes[timeframe]
	if !ok {
		start = Timeframes[DefaultTimeframe]
	}
	today := u.now().UTC().Truncate(24 * time.Hour)

	orders, err := u.repo.OrdersSince(ctx, start(today))
	if err != nil {
		return nil, fmt.Errorf("sales series: %w", err)
	}

	points := []domain.SalesPoint{}
	for _, o := range orders {
		day := o.CreatedAt.UTC().Format("2006-01-02")
		if n := len(points); n == 0 || points[n-1].Date != day {
			points = append(points, domain.SalesPoint{Date: day})
		}
		p := &points[len(points)-1]
		p.OrdersCount++
		p.Revenue += o.TotalAmount
	}
	for i := range points {
		points[i].Revenue = round(points[i].Revenue, 2)
		points[i].AverageOrderValue = round(points[i].Revenue/float64(points[i].OrdersCount), 2)
	}
	return points, nil
}

// Growth is the percentage change from prev to cur with one decimal, or 0
// when there is nothing to compare against.
func Growth(cur, prev float64) float64 {
	if prev <= 0 {
		return 0
	}
	return round((cur-prev)/prev*100, 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
