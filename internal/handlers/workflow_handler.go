package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"botvance_backend/internal/models"
	"botvance_backend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type WorkflowHandler struct {
	authService     *services.AuthService
	workflowService *services.WorkflowService
	wizardService   *services.WizardService
	validate        *validator.Validate
}

func NewWorkflowHandler(authService *services.AuthService, workflowService *services.WorkflowService, wizardService *services.WizardService) *WorkflowHandler {
	return &WorkflowHandler{
		authService:     authService,
		workflowService: workflowService,
		wizardService:   wizardService,
		validate:        validator.New(),
	}
}

// List handles GET /api/workflows
func (h *WorkflowHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflows, err := h.workflowService.ListByUser(claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch workflows")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"workflows": workflows,
	})
}

// Create handles POST /api/workflows. A free-tier user at the workflow
// ceiling gets a 403 carrying the upgrade link instead of a new workflow.
func (h *WorkflowHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	workflow, err := h.workflowService.Create(claims.UserID, req)
	if errors.Is(err, services.ErrWorkflowLimitReached) {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"success":     false,
			"message":     "Free plan allows up to 3 workflows. Subscribe to the paid plan for unlimited workflows.",
			"upgrade_url": upgradeURL(),
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create workflow")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"message":  "Workflow created successfully",
		"workflow": workflow,
	})
}

// Get handles GET /api/workflows/{id}
func (h *WorkflowHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflowID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	workflow, err := h.workflowService.GetByID(claims.UserID, workflowID)
	if errors.Is(err, services.ErrWorkflowNotFound) {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch workflow")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"workflow": workflow,
	})
}

// Update handles PUT /api/workflows/{id}
func (h *WorkflowHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflowID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	workflow, err := h.workflowService.Update(claims.UserID, workflowID, req)
	if errors.Is(err, services.ErrWorkflowNotFound) {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update workflow")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Workflow updated successfully",
		"workflow": workflow,
	})
}

// Delete handles DELETE /api/workflows/{id}. Only the workflow row itself is
// removed; dependent QA, follow-up and connection rows are left behind.
func (h *WorkflowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflowID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.workflowService.Delete(claims.UserID, workflowID)
	if errors.Is(err, services.ErrWorkflowNotFound) {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete workflow")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Workflow deleted successfully",
	})
}

// Save handles POST /api/workflows/{id}/save, the wizard's commit. {id} is
// "new" for a first save; the response then carries the store-assigned id
// the dashboard switches to. Partial failures of the dependent steps come
// back in the steps list with HTTP 207.
func (h *WorkflowHandler) Save(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var workflowID uint
	if raw := mux.Vars(r)["id"]; raw != "new" {
		workflowID, err = pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var req services.WizardSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.wizardService.Save(claims.UserID, workflowID, req)
	switch {
	case errors.Is(err, services.ErrWorkflowNameRequired):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Workflow name is required",
			"step":    1,
		})
		return
	case errors.Is(err, services.ErrWorkflowLimitReached):
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"success":     false,
			"message":     "Free plan allows up to 3 workflows. Subscribe to the paid plan for unlimited workflows.",
			"upgrade_url": upgradeURL(),
		})
		return
	case errors.Is(err, services.ErrWorkflowNotFound):
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to save workflow")
		return
	}

	statusCode := http.StatusOK
	if result.Failed() {
		statusCode = http.StatusMultiStatus
	}

	writeJSON(w, statusCode, map[string]interface{}{
		"success": !result.Failed(),
		"result":  result,
	})
}

// ConnectorURL handles GET /api/workflows/{id}/connector-url
func (h *WorkflowHandler) ConnectorURL(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflowID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.workflowService.GetByID(claims.UserID, workflowID); err != nil {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"connector_url": h.workflowService.ConnectorURL(workflowID),
	})
}

// UpdateAutomation handles PUT /api/workflows/{id}/automation
func (h *WorkflowHandler) UpdateAutomation(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflowID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.AutomationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.workflowService.UpdateAutomation(claims.UserID, workflowID, req)
	if errors.Is(err, services.ErrWorkflowNotFound) {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Automation configuration saved successfully",
	})
}

// GetOpenAIKey handles GET /api/workflows/{id}/openai-key
func (h *WorkflowHandler) GetOpenAIKey(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflowID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	apiKey, err := h.workflowService.GetOpenAIKey(claims.UserID, workflowID)
	if errors.Is(err, services.ErrWorkflowNotFound) {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch API key")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"api_key": apiKey,
	})
}

// UpdateOpenAIKey handles PUT /api/workflows/{id}/openai-key
func (h *WorkflowHandler) UpdateOpenAIKey(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	workflowID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.OpenAIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.workflowService.UpdateOpenAIKey(claims.UserID, workflowID, req.APIKey)
	if errors.Is(err, services.ErrWorkflowNotFound) {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update API key")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "OpenAI API key updated successfully",
	})
}

// upgradeURL returns the external checkout page shown when the free-tier
// ceiling blocks a creation.
func upgradeURL() string {
	if url := os.Getenv("UPGRADE_URL"); url != "" {
		return url
	}
	return "https://www.asaas.com/c/igke3ggpqfuou12d"
}
