package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StoreID     uint      `gorm:"index:idx_store_slug,unique;not null" json:"store_id"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"index:idx_store_slug,unique;not null" json:"slug"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	DiscountPct float64   `json:"discount_pct"` // 0-100
	ImageURL    string    `json:"image_url"`
	Stock       int       `json:"stock"`
	IsNew       bool      `json:"is_new"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category   Category    `json:"category,omitempty"`
	Variations []Variation `gorm:"foreignKey:ProductID" json:"variations,omitempty"`
}

// Variation is an orderable option of a product (e.g. size=M) carrying
// its own price and stock override.
type Variation struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Type      string  `gorm:"not null" json:"type"`
	Value     string  `gorm:"not null" json:"value"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}
