package models

import (
	"time"
)

// Profile holds the user-facing account data. The primary key is the owning
// user id, so there is at most one profile per account. Rows are created at
// sign-up and are never hard-deleted.
type Profile struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Nome     string `json:"nome" gorm:"size:100"`
	Telefone string `json:"telefone" gorm:"size:20"`
	Email    string `json:"email" gorm:"size:100;not null"`
	Whatsapp string `json:"whatsapp" gorm:"size:20"`
	Prompt   string `json:"prompt" gorm:"type:text"`

	// Usage accounting surfaced on the account panel.
	Consumo  int `json:"consumo" gorm:"default:0"`
	Franquia int `json:"franquia" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ProfileUpdate represents a profile edit request
type ProfileUpdate struct {
	Nome     string `json:"nome" validate:"omitempty,min=2,max=100"`
	Telefone string `json:"telefone"`
	Whatsapp string `json:"whatsapp"`
	Prompt   string `json:"prompt"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
