package models

import (
	"time"
)

// NumFollowUpStages is the fixed number of stages in a follow-up sequence.
// Stages are positional (1..5) and are never reordered.
const NumFollowUpStages = 5

const (
	maxIntervalHours   = 23
	maxIntervalMinutes = 59
)

// FollowUpSchedule represents the reactivation sequence of a workflow: five
// positionally fixed stages, each a message plus a delay persisted in whole
// minutes. A workflow that never enabled follow-up simply has no row.
type FollowUpSchedule struct {
	ID         uint `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkflowID uint `json:"workflow_id" gorm:"uniqueIndex;not null"`

	Estagio1 string `json:"estagio_1" gorm:"type:text"`
	Estagio2 string `json:"estagio_2" gorm:"type:text"`
	Estagio3 string `json:"estagio_3" gorm:"type:text"`
	Estagio4 string `json:"estagio_4" gorm:"type:text"`
	Estagio5 string `json:"estagio_5" gorm:"type:text"`

	Intervalo1 int `json:"intervalo_1" gorm:"default:0"`
	Intervalo2 int `json:"intervalo_2" gorm:"default:0"`
	Intervalo3 int `json:"intervalo_3" gorm:"default:0"`
	Intervalo4 int `json:"intervalo_4" gorm:"default:0"`
	Intervalo5 int `json:"intervalo_5" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for FollowUpSchedule
func (FollowUpSchedule) TableName() string {
	return "fup_msg"
}

// FollowUpStage is the editing representation of one stage: the delay is
// split into hour and minute components instead of total minutes.
type FollowUpStage struct {
	Message string `json:"message"`
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
}

// EncodeInterval converts an hour+minute delay to total minutes. Out-of-range
// components are clamped to [0,23] and [0,59] before encoding, never rejected.
func EncodeInterval(hours, minutes int) int {
	hours = clampInt(hours, 0, maxIntervalHours)
	minutes = clampInt(minutes, 0, maxIntervalMinutes)
	return hours*60 + minutes
}

// DecodeInterval converts a persisted total-minute delay back to hour and
// minute components. A missing or negative value decodes to (0, 0).
func DecodeInterval(totalMinutes int) (hours, minutes int) {
	if totalMinutes < 0 {
		return 0, 0
	}
	return totalMinutes / 60, totalMinutes % 60
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Stages returns the five stages in editing form. A stage with an empty
// message and zero delay reads back as its zero value; the model does not
// distinguish "unset" from "explicitly zeroed".
func (s *FollowUpSchedule) Stages() []FollowUpStage {
	messages := [NumFollowUpStages]string{s.Estagio1, s.Estagio2, s.Estagio3, s.Estagio4, s.Estagio5}
	intervals := [NumFollowUpStages]int{s.Intervalo1, s.Intervalo2, s.Intervalo3, s.Intervalo4, s.Intervalo5}

	stages := make([]FollowUpStage, NumFollowUpStages)
	for i := 0; i < NumFollowUpStages; i++ {
		h, m := DecodeInterval(intervals[i])
		stages[i] = FollowUpStage{Message: messages[i], Hours: h, Minutes: m}
	}
	return stages
}

// SetStages fills the persisted columns from the editing form. Stages beyond
// the fifth are ignored; missing trailing stages reset to empty message and
// zero delay so a save always writes all five positions.
func (s *FollowUpSchedule) SetStages(stages []FollowUpStage) {
	var messages [NumFollowUpStages]string
	var intervals [NumFollowUpStages]int
	for i := 0; i < NumFollowUpStages && i < len(stages); i++ {
		messages[i] = stages[i].Message
		intervals[i] = EncodeInterval(stages[i].Hours, stages[i].Minutes)
	}

	s.Estagio1, s.Estagio2, s.Estagio3, s.Estagio4, s.Estagio5 =
		messages[0], messages[1], messages[2], messages[3], messages[4]
	s.Intervalo1, s.Intervalo2, s.Intervalo3, s.Intervalo4, s.Intervalo5 =
		intervals[0], intervals[1], intervals[2], intervals[3], intervals[4]
}

// FollowUpScheduleRequest is the payload for saving a follow-up sequence.
type FollowUpScheduleRequest struct {
	Stages []FollowUpStage `json:"stages" validate:"max=5"`
}

// FollowUpScheduleResponse wraps a schedule for API responses. Configured is
// false when no row exists for the workflow yet.
type FollowUpScheduleResponse struct {
	Configured bool            `json:"configured"`
	Stages     []FollowUpStage `json:"stages"`
}
