package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"column:full_name;not null"`
	Email     string `gorm:"column:email;unique;not null"`
	Password  string `gorm:"column:password;not null"`
	Role      string `gorm:"column:role;default:member"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// UserCard is one card in a user's wallet. CardName is stored as supplied
// by the client; normalization happens at scoring time.
type UserCard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	CardName  string    `gorm:"column:card_name;not null" json:"card_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserCard) TableName() string {
	return "user_cards"
}

// RotatingActivation marks a lowercased canonical category as currently
// earning the "rotating" rate for a user.
type RotatingActivation struct {
	UserID    uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	Category  string    `gorm:"column:category;primaryKey" json:"category"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RotatingActivation) TableName() string {
	return "rotating_activations"
}
