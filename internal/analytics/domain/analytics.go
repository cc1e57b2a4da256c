package domain

import "time"

type GrowthMetrics struct {
	Orders   float64 `json:"orders"`
	Revenue  float64 `json:"revenue"`
	Products float64 `json:"products"`
}

// Summary is the dashboard overview. Growth compares the last seven days with
// the seven days before them.
type Summary struct {
	TotalOrders       int64         `json:"total_orders"`
	TotalRevenue      float64       `json:"total_revenue"`
	TotalProducts     int64         `json:"total_products"`
	PendingDeliveries int64         `json:"pending_deliveries"`
	TotalCategories   int64         `json:"total_categories"`
	TotalCustomers    int64         `json:"total_customers"`
	GrowthMetrics     GrowthMetrics `json:"growth_metrics"`
}

// SalesPoint aggregates the orders placed on one UTC day.
type SalesPoint struct {
	Date              string  `json:"date"`
	OrdersCount       int64   `json:"orders_count"`
	Revenue           float64 `json:"revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// Window is a half-open [From, To) time range. A zero bound is unbounded.
type Window struct {
	From time.Time
	To   time.Time
}

// OrderPoint is the slice of an order the sales series needs.
type OrderPoint struct {
	CreatedAt   time.Time
	TotalAmount float64
}
