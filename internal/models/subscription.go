package models

import (
	"time"
)

// FreeWorkflowLimit is the number of workflows a free-tier account may own.
const FreeWorkflowLimit = 3

// Subscription tracks the plan flag and workflow count for one user. The
// primary key is the owning user id; the row is created at sign-up with free
// defaults.
type Subscription struct {
	ID              uint `json:"id" gorm:"primaryKey"`
	Subscription    bool `json:"subscription" gorm:"column:subscription;default:false"`
	NumberWorkflows int  `json:"number_workflows" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Subscription
func (Subscription) TableName() string {
	return "subscription"
}

// AccountResponse bundles the profile and subscription for the account panel.
// Subscription is nil when the row is missing, which the panel treats as an
// unpaid plan with zero workflows.
type AccountResponse struct {
	Profile      *Profile      `json:"profile"`
	Subscription *Subscription `json:"subscription"`
}
