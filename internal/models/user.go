package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authentication account. Profile data lives in the
// profiles table keyed by the same identifier.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // "-" means don't include in JSON

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// UserLogin represents login request
type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserRegister represents sign-up request. Nome and telefone are persisted
// on the profile row, not the account itself.
type UserRegister struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Nome     string `json:"nome" validate:"required,min=2,max=100"`
	Telefone string `json:"telefone" validate:"required"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
