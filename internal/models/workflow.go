package models

import (
	"time"
)

// Workflow represents one configured conversational agent owned by a user:
// its metadata, behavioral toggles and the wiring to the external automation
// engine. Deletion is a hard delete and does not cascade to dependent rows.
type Workflow struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
	Active      bool   `json:"active" gorm:"default:true"`

	// Behavioral toggles edited on the "additional settings" wizard step.
	StopBotOnMessage     bool `json:"stop_bot_on_message" gorm:"default:true"`
	PauseWindowMinutes   int  `json:"pause_window_minutes" gorm:"default:15"`
	SplitLongMessages    bool `json:"split_long_messages" gorm:"default:true"`
	ShowTypingIndicator  bool `json:"show_typing_indicator" gorm:"default:true"`
	TypingDelayPerCharMs int  `json:"typing_delay_per_char_ms" gorm:"default:50"`
	ConcatMessages       bool `json:"concat_messages" gorm:"default:true"`
	ConcatTimeSeconds    int  `json:"concat_time_seconds" gorm:"default:7"`
	ContextWindowSize    int  `json:"context_window_size" gorm:"default:5"`

	Followup bool `json:"followup" gorm:"default:false"`

	// Wiring to the external automation engine.
	WebhookURL   string `json:"webhook_url" gorm:"size:500"`
	WorkflowJSON string `json:"workflow_json" gorm:"type:text"`
	APIOpenAI    string `json:"-" gorm:"column:api_openai;size:255"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Workflow
func (Workflow) TableName() string {
	return "workflows"
}

// WorkflowRequest carries the editable workflow fields of a create or update.
type WorkflowRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Active      bool   `json:"active"`

	StopBotOnMessage     bool `json:"stop_bot_on_message"`
	PauseWindowMinutes   int  `json:"pause_window_minutes" validate:"min=0"`
	SplitLongMessages    bool `json:"split_long_messages"`
	ShowTypingIndicator  bool `json:"show_typing_indicator"`
	TypingDelayPerCharMs int  `json:"typing_delay_per_char_ms" validate:"min=0"`
	ConcatMessages       bool `json:"concat_messages"`
	ConcatTimeSeconds    int  `json:"concat_time_seconds" validate:"min=0"`
	ContextWindowSize    int  `json:"context_window_size" validate:"min=0"`

	Followup bool `json:"followup"`
}

// Apply copies the request fields onto a workflow row.
func (r WorkflowRequest) Apply(w *Workflow) {
	w.Name = r.Name
	w.Description = r.Description
	w.Active = r.Active
	w.StopBotOnMessage = r.StopBotOnMessage
	w.PauseWindowMinutes = r.PauseWindowMinutes
	w.SplitLongMessages = r.SplitLongMessages
	w.ShowTypingIndicator = r.ShowTypingIndicator
	w.TypingDelayPerCharMs = r.TypingDelayPerCharMs
	w.ConcatMessages = r.ConcatMessages
	w.ConcatTimeSeconds = r.ConcatTimeSeconds
	w.ContextWindowSize = r.ContextWindowSize
	w.Followup = r.Followup
}

// AutomationRequest carries the automation-engine wiring saved on the final
// wizard step.
type AutomationRequest struct {
	WebhookURL   string `json:"webhook_url" validate:"required"`
	WorkflowJSON string `json:"workflow_json" validate:"required"`
}

// OpenAIKeyRequest carries the per-workflow OpenAI API key.
type OpenAIKeyRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}
