package dto

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"gte=0"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	CategoryID    *string `json:"category_id"`
	// IsActive defaults to true when omitted
	IsActive *bool `json:"is_active"`
}

type CreateDeliveryServiceRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"gte=0"`
	EstimatedDays string  `json:"estimated_days" binding:"required"`
	Rating        float64 `json:"rating" binding:"gte=0,lte=5"`
	ImageURL      string  `json:"image_url"`
	IsAvailable   *bool   `json:"is_available"`
}
