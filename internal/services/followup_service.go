package services

import (
	"errors"

	"botvance_backend/internal/models"

	"gorm.io/gorm"
)

type FollowUpService struct {
	db *gorm.DB
}

func NewFollowUpService(db *gorm.DB) *FollowUpService {
	return &FollowUpService{db: db}
}

// LoadForWorkflow fetches the single schedule row for a workflow. A workflow
// that never enabled follow-up has no row; that absence is reported as
// (nil, nil), not an error.
func (fs *FollowUpService) LoadForWorkflow(workflowID uint) (*models.FollowUpSchedule, error) {
	var schedule models.FollowUpSchedule
	err := fs.db.Where("workflow_id = ?", workflowID).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// SaveForWorkflow upserts the schedule row for a workflow: update if one
// exists, insert otherwise. All five stage positions are always written. The
// existence check and the write are two dependent store calls with no
// transaction around them; two concurrent saves for the same workflow can
// race. The unique index on workflow_id turns that race into a failed insert
// rather than a duplicate row.
func (fs *FollowUpService) SaveForWorkflow(workflowID uint, stages []models.FollowUpStage) (*models.FollowUpSchedule, error) {
	existing, err := fs.LoadForWorkflow(workflowID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.SetStages(stages)
		if err := fs.db.Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	schedule := models.FollowUpSchedule{WorkflowID: workflowID}
	schedule.SetStages(stages)
	if err := fs.db.Create(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}
