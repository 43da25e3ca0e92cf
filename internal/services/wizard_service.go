package services

import (
	"errors"
	"log"

	"botvance_backend/internal/models"

	"gorm.io/gorm"
)

// ErrWorkflowNameRequired rejects a save whose workflow has no name. The
// check runs before any store call; the dashboard sends the user back to the
// first wizard step.
var ErrWorkflowNameRequired = errors.New("workflow name is required")

// WizardService commits the wizard's draft state: one workflow plus its
// optional follow-up schedule, QA slot and connection mirror, written as
// independent sequential store calls. There is no cross-entity transaction
// and no rollback: a failed later step leaves the earlier writes committed.
// Each step's outcome is recorded and returned so the caller can surface
// partial failures instead of silently swallowing them.
type WizardService struct {
	workflows   *WorkflowService
	followups   *FollowUpService
	qaPairs     *QAService
	connections *ConnectionService
}

func NewWizardService(db *gorm.DB) *WizardService {
	return &WizardService{
		workflows:   NewWorkflowService(db),
		followups:   NewFollowUpService(db),
		qaPairs:     NewQAService(db),
		connections: NewConnectionService(db),
	}
}

// WizardSaveRequest is the full draft the dashboard holds across the five
// wizard steps. Everything beyond the workflow itself is optional: absent
// data skips the corresponding commit step.
type WizardSaveRequest struct {
	Workflow models.WorkflowRequest `json:"workflow" validate:"required"`

	FollowUpStages []models.FollowUpStage `json:"follow_up_stages,omitempty" validate:"max=5"`

	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`

	InstanceName string `json:"instance_name,omitempty"`
	NumeroWA     string `json:"numero_wa,omitempty"`
}

// Commit step names, in execution order.
const (
	StepWorkflow   = "workflow"
	StepFollowUp   = "follow_up"
	StepQAPair     = "qa_pair"
	StepConnection = "connection"
)

// WizardStepOutcome records how one commit step ended.
type WizardStepOutcome struct {
	Step    string `json:"step"`
	Done    bool   `json:"done"`
	Skipped bool   `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

// WizardSaveResult reports the commit as a whole. Created is true when the
// save inserted a new workflow; WorkflowID then carries the store-assigned
// identifier the dashboard switches to for edit mode.
type WizardSaveResult struct {
	WorkflowID uint                `json:"workflow_id"`
	Created    bool                `json:"created"`
	Steps      []WizardStepOutcome `json:"steps"`
}

// Failed reports whether any non-skipped step ended in error.
func (r *WizardSaveResult) Failed() bool {
	for _, step := range r.Steps {
		if step.Error != "" {
			return true
		}
	}
	return false
}

// Save commits the draft. workflowID zero means a new workflow: step 1
// inserts it (behind the subscription gate) and later steps use the returned
// id. A failed first step aborts the whole save; failures of steps 2-4 are
// logged, recorded and do not stop the remaining steps.
func (ws *WizardService) Save(userID, workflowID uint, req WizardSaveRequest) (*WizardSaveResult, error) {
	if req.Workflow.Name == "" {
		return nil, ErrWorkflowNameRequired
	}

	result := &WizardSaveResult{WorkflowID: workflowID}

	// Step 1: workflow upsert. Everything else depends on this row.
	if workflowID == 0 {
		workflow, err := ws.workflows.Create(userID, req.Workflow)
		if err != nil {
			return nil, err
		}
		result.WorkflowID = workflow.ID
		result.Created = true
	} else {
		if _, err := ws.workflows.Update(userID, workflowID, req.Workflow); err != nil {
			return nil, err
		}
	}
	result.Steps = append(result.Steps, WizardStepOutcome{Step: StepWorkflow, Done: true})

	// Step 2: follow-up schedule, only when the workflow enables it.
	if req.Workflow.Followup {
		_, err := ws.followups.SaveForWorkflow(result.WorkflowID, req.FollowUpStages)
		result.Steps = append(result.Steps, stepOutcome(StepFollowUp, err))
	} else {
		result.Steps = append(result.Steps, WizardStepOutcome{Step: StepFollowUp, Skipped: true})
	}

	// Step 3: the wizard's single QA slot, only when both sides are present.
	if req.Question != "" && req.Answer != "" {
		_, err := ws.qaPairs.UpsertSingle(userID, result.WorkflowID, models.QAPairRequest{
			Question: req.Question,
			Answer:   req.Answer,
		})
		result.Steps = append(result.Steps, stepOutcome(StepQAPair, err))
	} else {
		result.Steps = append(result.Steps, WizardStepOutcome{Step: StepQAPair, Skipped: true})
	}

	// Step 4: connection mirror, only when name and number are both present.
	if req.InstanceName != "" && req.NumeroWA != "" {
		_, err := ws.connections.Upsert(userID, result.WorkflowID, req.InstanceName, req.NumeroWA)
		result.Steps = append(result.Steps, stepOutcome(StepConnection, err))
	} else {
		result.Steps = append(result.Steps, WizardStepOutcome{Step: StepConnection, Skipped: true})
	}

	return result, nil
}

func stepOutcome(step string, err error) WizardStepOutcome {
	if err != nil {
		log.Printf("wizard save: step %s failed: %v", step, err)
		return WizardStepOutcome{Step: step, Error: err.Error()}
	}
	return WizardStepOutcome{Step: step, Done: true}
}
