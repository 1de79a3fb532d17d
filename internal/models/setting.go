package models

// Setting is a per-store key/value pair (currency, support email, ...).
type Setting struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	StoreID uint   `gorm:"index:idx_store_key,unique;not null" json:"store_id"`
	Key     string `gorm:"index:idx_store_key,unique;not null" json:"key"`
	Value   string `json:"value"`
}
