package handlers

import (
	"encoding/json"
	"net/http"

	"botvance_backend/internal/models"
	"botvance_backend/internal/services"

	"github.com/go-playground/validator/v10"
)

type FollowUpHandler struct {
	authService     *services.AuthService
	workflowService *services.WorkflowService
	followUpService *services.FollowUpService
	validate        *validator.Validate
}

func NewFollowUpHandler(authService *services.AuthService, workflowService *services.WorkflowService, followUpService *services.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{
		authService:     authService,
		workflowService: workflowService,
		followUpService: followUpService,
		validate:        validator.New(),
	}
}

// Get handles GET /api/workflows/{id}/followup. A workflow without a
// schedule row answers configured=false with the five default stages, not an
// error.
func (h *FollowUpHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflowID, err := h.ownedWorkflowID(r, claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}

	schedule, err := h.followUpService.LoadForWorkflow(workflowID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch follow-up schedule")
		return
	}

	response := models.FollowUpScheduleResponse{
		Stages: make([]models.FollowUpStage, models.NumFollowUpStages),
	}
	if schedule != nil {
		response.Configured = true
		response.Stages = schedule.Stages()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"followup": response,
	})
}

// Put handles PUT /api/workflows/{id}/followup
func (h *FollowUpHandler) Put(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflowID, err := h.ownedWorkflowID(r, claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}

	var req models.FollowUpScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	schedule, err := h.followUpService.SaveForWorkflow(workflowID, req.Stages)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save follow-up schedule")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Follow-up schedule saved successfully",
		"followup": models.FollowUpScheduleResponse{
			Configured: true,
			Stages:     schedule.Stages(),
		},
	})
}

// ownedWorkflowID resolves the {id} route variable and checks ownership
// before any schedule operation touches it.
func (h *FollowUpHandler) ownedWorkflowID(r *http.Request, userID uint) (uint, error) {
	workflowID, err := pathID(r, "id")
	if err != nil {
		return 0, err
	}
	if _, err := h.workflowService.GetByID(userID, workflowID); err != nil {
		return 0, err
	}
	return workflowID, nil
}
