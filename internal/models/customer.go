package models

type Customer struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	OIDCID       string `gorm:"index" json:"-"` // OpenID Connect identifier, empty for password accounts
}
