package services

import (
	"errors"

	"botvance_backend/internal/models"

	"gorm.io/gorm"
)

// ErrQAPairNotFound signals a lookup for a QA pair the user does not own.
var ErrQAPairNotFound = errors.New("qa pair not found")

type QAService struct {
	db *gorm.DB
}

func NewQAService(db *gorm.DB) *QAService {
	return &QAService{db: db}
}

// ListForWorkflow returns all question/answer pairs of a workflow.
func (qs *QAService) ListForWorkflow(userID, workflowID uint) ([]models.QAPair, error) {
	var pairs []models.QAPair
	err := qs.db.Where("workflow_id = ? AND user_id = ?", workflowID, userID).Find(&pairs).Error
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// Add inserts a new question/answer pair for a workflow.
func (qs *QAService) Add(userID, workflowID uint, req models.QAPairRequest) (*models.QAPair, error) {
	pair := models.QAPair{
		UserID:     userID,
		WorkflowID: workflowID,
		Question:   req.Question,
		Answer:     req.Answer,
	}
	if err := qs.db.Create(&pair).Error; err != nil {
		return nil, err
	}
	return &pair, nil
}

// Update edits an existing pair, scoped to its owner.
func (qs *QAService) Update(userID, pairID uint, req models.QAPairRequest) (*models.QAPair, error) {
	var pair models.QAPair
	err := qs.db.Where("id = ? AND user_id = ?", pairID, userID).First(&pair).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQAPairNotFound
	}
	if err != nil {
		return nil, err
	}

	pair.Question = req.Question
	pair.Answer = req.Answer
	if err := qs.db.Save(&pair).Error; err != nil {
		return nil, err
	}
	return &pair, nil
}

// Delete removes a pair, scoped to its owner.
func (qs *QAService) Delete(userID, pairID uint) error {
	result := qs.db.Where("id = ? AND user_id = ?", pairID, userID).Delete(&models.QAPair{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQAPairNotFound
	}
	return nil
}

// UpsertSingle maintains the wizard's single QA slot: the first pair of the
// workflow is updated if present, otherwise a new one is inserted.
func (qs *QAService) UpsertSingle(userID, workflowID uint, req models.QAPairRequest) (*models.QAPair, error) {
	var pair models.QAPair
	err := qs.db.Where("workflow_id = ? AND user_id = ?", workflowID, userID).First(&pair).Error
	switch {
	case err == nil:
		pair.Question = req.Question
		pair.Answer = req.Answer
		if saveErr := qs.db.Save(&pair).Error; saveErr != nil {
			return nil, saveErr
		}
		return &pair, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return qs.Add(userID, workflowID, req)
	default:
		return nil, err
	}
}
