package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"botvance_backend/internal/models"
	"botvance_backend/internal/services"

	"github.com/go-playground/validator/v10"
)

type QAHandler struct {
	authService     *services.AuthService
	workflowService *services.WorkflowService
	qaService       *services.QAService
	validate        *validator.Validate
}

func NewQAHandler(authService *services.AuthService, workflowService *services.WorkflowService, qaService *services.QAService) *QAHandler {
	return &QAHandler{
		authService:     authService,
		workflowService: workflowService,
		qaService:       qaService,
		validate:        validator.New(),
	}
}

// List handles GET /api/workflows/{id}/qa-pairs
func (h *QAHandler) List(w http.ResponseWriter, r *http.Request) {
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

	pairs, err := h.qaService.ListForWorkflow(claims.UserID, workflowID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch QA pairs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"qa_pairs": pairs,
	})
}

// Add handles POST /api/workflows/{id}/qa-pairs
func (h *QAHandler) Add(w http.ResponseWriter, r *http.Request) {
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

	var req models.QAPairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	pair, err := h.qaService.Add(claims.UserID, workflowID, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to add QA pair")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "QA pair added successfully",
		"qa_pair": pair,
	})
}

// Update handles PUT /api/qa-pairs/{id}
func (h *QAHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	pairID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.QAPairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	pair, err := h.qaService.Update(claims.UserID, pairID, req)
	if errors.Is(err, services.ErrQAPairNotFound) {
		writeError(w, http.StatusNotFound, "QA pair not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update QA pair")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "QA pair updated successfully",
		"qa_pair": pair,
	})
}

// Delete handles DELETE /api/qa-pairs/{id}
func (h *QAHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	pairID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.qaService.Delete(claims.UserID, pairID)
	if errors.Is(err, services.ErrQAPairNotFound) {
		writeError(w, http.StatusNotFound, "QA pair not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete QA pair")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "QA pair deleted successfully",
	})
}
