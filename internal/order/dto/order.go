package dto

import "watches-backend/internal/order/domain"

// UpdateStatusRequest is the body of PUT /api/orders/:id/status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderListResponse struct {
	Orders []*domain.Order `json:"orders"`
	Total  int64           `json:"total"`
}

type BoardResponse struct {
	Orders []*domain.Order `json:"orders"`
}

// CreateOrderRequest is the checkout body of POST /api/orders. Prices come
// from the catalog; the customer defaults to the signed in user.
type CreateOrderRequest struct {
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerAddress string            `json:"customer_address" binding:"required"`
	PaymentMethod   string            `json:"payment_method" binding:"required"`
	Notes           string            `json:"notes"`
	Items           []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
}

type CreateOrderItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}
