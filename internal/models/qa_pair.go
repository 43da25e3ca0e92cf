package models

import (
	"time"
)

// QAPair is one question/answer entry used to seed a workflow's responses.
type QAPair struct {
	ID         uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     uint   `json:"user_id" gorm:"not null"`
	WorkflowID uint   `json:"workflow_id" gorm:"not null;index"`
	Question   string `json:"question" gorm:"type:text;not null"`
	Answer     string `json:"answer" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// QAPairRequest represents an add or update of one question/answer pair.
type QAPairRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// TableName specifies the table name for QAPair
func (QAPair) TableName() string {
	return "qa_pairs"
}
