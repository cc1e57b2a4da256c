package usecase

import (
	"context"
	"time"

	"watches-backend/internal/analytics/domain"
)

// Timeframes accepted by SalesSeries. Anything else falls back to 7days.
var Timeframes = map[string]func(time.Time) time.Time{
	"7days":    func(t time.Time) time.Time { return t.AddDate(0, 0, -7) },
	"30days":   func(t time.Time) time.Time { return t.AddDate(0, 0, -30) },
	"90days":   func(t time.Time) time.Time { return t.AddDate(0, 0, -90) },
	"12months": func(t time.Time) time.Time { return t.AddDate(0, -12, 0) },
}

const DefaultTimeframe = "7days"

type AnalyticsUsecase interface {
	Summary(ctx context.Context) (*domain.Summary, error)
	SalesSeries(ctx context.Context, timeframe string) ([]domain.SalesPoint, error)
}
