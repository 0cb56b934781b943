package models

import "time"

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null"`

	// Relations
	PharmacistProfile *PharmacistProfile `gorm:"foreignKey:UserID"`
	StoreProfile      *StoreProfile      `gorm:"foreignKey:UserID"`
	RefreshTokens     []RefreshToken     `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
