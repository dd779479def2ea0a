package domain

import "time"

// Product mirrors one row of the products table. Description and Category are
// nullable in the schema, so they round-trip as JSON null via pointers.
type Product struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   *string   `gorm:"type:text" json:"description"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int       `gorm:"default:0" json:"stock_quantity"`
	Category      *string   `gorm:"size:100" json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductUpdate carries a partial update: nil fields keep their stored value.
type ProductUpdate struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	Category      *string  `json:"category"`
}
