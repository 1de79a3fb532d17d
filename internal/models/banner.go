package models

type Banner struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	StoreID  uint   `gorm:"index;not null" json:"store_id"`
	Title    string `gorm:"not null" json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Active   bool   `gorm:"default:true" json:"active"`
}
