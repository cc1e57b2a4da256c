package domain

import (
	"time"

	"watches-backend/pkg/kanban"
)

// ValidStatus reports whether s can be stored on an order. Cancelled orders
// are valid but never appear on the board.
func ValidStatus(s kanban.Status) bool {
	return s.OnBoard() || s == kanban.StatusCancelled
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

// Order is a customer purchase tracked through the delivery board
type Order struct {
	ID                string        `json:"id" gorm:"primaryKey"`
	OrderNumber       string        `json:"order_number" gorm:"uniqueIndex;not null"`
	UserID            *string       `json:"user_id,omitempty" gorm:"index"`
	CustomerName      string        `json:"customer_name" gorm:"not null"`
	CustomerPhone     string        `json:"customer_phone"`
	CustomerEmail     string        `json:"customer_email,omitempty"`
	CustomerAddress   string        `json:"customer_address"`
	Status            kanban.Status `json:"status" gorm:"index;default:pending"`
	TotalAmount       float64       `json:"total_amount"`
	PaymentMethod     string        `json:"payment_method,omitempty"`
	PaymentStatus     PaymentStatus `json:"payment_status,omitempty" gorm:"default:pending"`
	Notes             string        `json:"notes,omitempty"`
	DeliveryServiceID *string       `json:"delivery_service_id,omitempty" gorm:"index"`
	Items             []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	OrderID   string  `json:"order_id" gorm:"index;not null"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// ItemCount sums item quantities.
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
