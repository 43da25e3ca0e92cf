package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"botvance_backend/internal/models"

	"gorm.io/gorm"
)

// ErrWorkflowLimitReached signals that a free-tier user already owns the
// maximum number of workflows and must upgrade before creating another.
var ErrWorkflowLimitReached = errors.New("free plan limit of workflows reached")

// ErrWorkflowNotFound signals a lookup for a workflow the user does not own.
var ErrWorkflowNotFound = errors.New("workflow not found")

type WorkflowService struct {
	db *gorm.DB
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

// ListByUser returns all workflows owned by the user.
func (ws *WorkflowService) ListByUser(userID uint) ([]models.Workflow, error) {
	var workflows []models.Workflow
	if err := ws.db.Where("user_id = ?", userID).Find(&workflows).Error; err != nil {
		return nil, err
	}
	return workflows, nil
}

// GetByID returns one workflow, scoped to its owner.
func (ws *WorkflowService) GetByID(userID, workflowID uint) (*models.Workflow, error) {
	var workflow models.Workflow
	err := ws.db.Where("id = ? AND user_id = ?", workflowID, userID).First(&workflow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkflowNotFound
	}
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

// Create inserts a new workflow after the subscription gate passes and bumps
// the user's workflow counter.
func (ws *WorkflowService) Create(userID uint, req models.WorkflowRequest) (*models.Workflow, error) {
	if err := ws.checkCreationAllowed(userID); err != nil {
		return nil, err
	}

	workflow := models.Workflow{UserID: userID}
	req.Apply(&workflow)
	if err := ws.db.Create(&workflow).Error; err != nil {
		return nil, err
	}

	// Counter is informational (account panel); a failed bump does not undo
	// the create.
	if err := ws.db.Model(&models.Subscription{}).Where("id = ?", userID).
		UpdateColumn("number_workflows", gorm.Expr("number_workflows + 1")).Error; err != nil {
		fmt.Printf("warning: failed to bump workflow counter for user %d: %v\n", userID, err)
	}

	return &workflow, nil
}

// Update applies a workflow edit, scoped to its owner.
func (ws *WorkflowService) Update(userID, workflowID uint, req models.WorkflowRequest) (*models.Workflow, error) {
	workflow, err := ws.GetByID(userID, workflowID)
	if err != nil {
		return nil, err
	}

	req.Apply(workflow)
	if err := ws.db.Save(workflow).Error; err != nil {
		return nil, err
	}
	return workflow, nil
}

// Delete hard-deletes the workflow row. Dependent QA pairs, follow-up
// schedule and connection rows are NOT cascaded; they stay behind as orphans,
// matching the store schema which declares no foreign-key cascade.
func (ws *WorkflowService) Delete(userID, workflowID uint) error {
	result := ws.db.Where("id = ? AND user_id = ?", workflowID, userID).Delete(&models.Workflow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkflowNotFound
	}
	return nil
}

// checkCreationAllowed enforces the free-tier ceiling: a user without a paid
// subscription may own at most FreeWorkflowLimit workflows. The gate counts
// actual workflow rows, not the informational counter.
func (ws *WorkflowService) checkCreationAllowed(userID uint) error {
	var sub models.Subscription
	err := ws.db.First(&sub, userID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && sub.Subscription {
		return nil // paid plan, no limit
	}

	var count int64
	if err := ws.db.Model(&models.Workflow{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count >= models.FreeWorkflowLimit {
		return ErrWorkflowLimitReached
	}
	return nil
}

// UpdateAutomation saves the automation-engine wiring: the webhook URL the
// engine exposes and the flow definition pasted back by the operator. Both
// are validated before any store write.
func (ws *WorkflowService) UpdateAutomation(userID, workflowID uint, req models.AutomationRequest) error {
	if !strings.HasPrefix(req.WebhookURL, "http://") && !strings.HasPrefix(req.WebhookURL, "https://") {
		return errors.New("webhook URL must start with http:// or https://")
	}
	if !json.Valid([]byte(req.WorkflowJSON)) {
		return errors.New("workflow JSON is not valid JSON")
	}

	workflow, err := ws.GetByID(userID, workflowID)
	if err != nil {
		return err
	}

	workflow.WebhookURL = req.WebhookURL
	workflow.WorkflowJSON = req.WorkflowJSON
	return ws.db.Save(workflow).Error
}

// GetOpenAIKey returns the workflow's OpenAI API key.
func (ws *WorkflowService) GetOpenAIKey(userID, workflowID uint) (string, error) {
	workflow, err := ws.GetByID(userID, workflowID)
	if err != nil {
		return "", err
	}
	return workflow.APIOpenAI, nil
}

// UpdateOpenAIKey stores the workflow's OpenAI API key.
func (ws *WorkflowService) UpdateOpenAIKey(userID, workflowID uint, apiKey string) error {
	workflow, err := ws.GetByID(userID, workflowID)
	if err != nil {
		return err
	}
	workflow.APIOpenAI = apiKey
	return ws.db.Save(workflow).Error
}

// ConnectorURL builds the inbound webhook URL the operator pastes into the
// external automation engine so its messages route to this workflow.
func (ws *WorkflowService) ConnectorURL(workflowID uint) string {
	base := os.Getenv("WEBHOOK_BASE_URL")
	if base == "" {
		base = "https://webhooks.botvance.com.br"
	}
	return fmt.Sprintf("%s/webhook/conector?q=%d", strings.TrimRight(base, "/"), workflowID)
}
