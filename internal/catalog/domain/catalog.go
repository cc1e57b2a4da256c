package domain

import "time"

type Category struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string { return "product_categories" }

type Product struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"not null"`
	Description       string    `json:"description,omitempty"`
	Price             float64   `json:"price"`
	StockQuantity     int       `json:"stock_quantity"`
	IsActive          bool      `json:"is_active" gorm:"index"`
	CategoryID        *string   `json:"category_id,omitempty" gorm:"index"`
	CategoryName      string    `json:"category_name,omitempty" gorm:"->;-:migration"`
	DeliveryServiceID *string   `json:"delivery_service_id,omitempty" gorm:"index"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DeliveryService is a courier option products can be shipped with
type DeliveryService struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	EstimatedDays string    `json:"estimated_days"`
	Rating        float64   `json:"rating,omitempty"`
	IsAvailable   bool      `json:"is_available" gorm:"index"`
	ImageURL      string    `json:"image_url,omitempty"`
	OrderCount    int64     `json:"order_count" gorm:"->;-:migration"`
	CreatedAt     time.Time `json:"created_at"`
}
