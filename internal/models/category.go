package models

type Category struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	StoreID  uint       `gorm:"index;not null" json:"store_id"`
	Name     string     `gorm:"not null" json:"name"`
	ParentID *uint      `gorm:"index" json:"parent_id"` // nullable
	Parent   *Category  `json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
