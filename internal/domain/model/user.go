package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// emailは正規化（trim+lower）した状態で保存する
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100)" json:"lastName"`
	PhoneNumber  string    `gorm:"type:varchar(30)" json:"phoneNumber"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
