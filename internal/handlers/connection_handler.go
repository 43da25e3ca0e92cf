package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"botvance_backend/internal/models"
	"botvance_backend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/skip2/go-qrcode"
)

type ConnectionHandler struct {
	authService       *services.AuthService
	workflowService   *services.WorkflowService
	connectionService *services.ConnectionService
	bridgeService     *services.BridgeService
	validate          *validator.Validate
}

func NewConnectionHandler(authService *services.AuthService, workflowService *services.WorkflowService, connectionService *services.ConnectionService, bridgeService *services.BridgeService) *ConnectionHandler {
	return &ConnectionHandler{
		authService:       authService,
		workflowService:   workflowService,
		connectionService: connectionService,
		bridgeService:     bridgeService,
		validate:          validator.New(),
	}
}

// Connect handles POST /api/wa/connect: asks the bridge to pair a number and
// returns the QR payload to display.
func (h *ConnectionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Workflow, phone number and instance name are required")
		return
	}

	if _, err := h.workflowService.GetByID(claims.UserID, req.WorkflowID); err != nil {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}

	countryCode := req.CountryCode
	if countryCode == "" {
		countryCode = "55"
	}
	fullPhone := digitsOnly(countryCode) + digitsOnly(req.PhoneNumber)

	qr, err := h.bridgeService.RequestQR(claims.Email, fullPhone, req.InstanceName, req.WorkflowID)
	if err != nil {
		log.Printf("bridge connect failed for user %d: %v", claims.UserID, err)
		writeError(w, http.StatusBadGateway, "Failed to request QR code from bridge")
		return
	}

	if _, err := h.connectionService.Upsert(claims.UserID, req.WorkflowID, req.InstanceName, fullPhone); err != nil {
		log.Printf("warning: failed to mirror connection for workflow %d: %v", req.WorkflowID, err)
	}
	if err := h.connectionService.UpdateState(claims.UserID, req.WorkflowID, models.ConnectionStateConnecting); err != nil {
		log.Printf("warning: failed to update connection state for workflow %d: %v", req.WorkflowID, err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"base64":       qr.Base64,
		"pairing_code": qr.PairingCode,
	})
}

// Status handles POST /api/wa/status: asks the bridge for the channel state
// and mirrors the answer on the workflow's connection row.
func (h *ConnectionHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Workflow is required")
		return
	}

	if _, err := h.workflowService.GetByID(claims.UserID, req.WorkflowID); err != nil {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}

	state := h.bridgeService.CheckConnection(claims.Email)
	if err := h.connectionService.UpdateState(claims.UserID, req.WorkflowID, state); err != nil {
		log.Printf("warning: failed to update connection state for workflow %d: %v", req.WorkflowID, err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"state":     state,
		"connected": state == models.ConnectionStateOpen,
	})
}

// Disconnect handles POST /api/wa/disconnect.
func (h *ConnectionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Workflow is required")
		return
	}

	if _, err := h.workflowService.GetByID(claims.UserID, req.WorkflowID); err != nil {
		writeError(w, http.StatusNotFound, "Workflow not found")
		return
	}

	if err := h.bridgeService.Disconnect(claims.Email); err != nil {
		log.Printf("bridge disconnect failed for user %d: %v", claims.UserID, err)
		writeError(w, http.StatusBadGateway, "Failed to disconnect from bridge")
		return
	}

	if err := h.connectionService.UpdateState(claims.UserID, req.WorkflowID, models.ConnectionStateDisconnected); err != nil {
		log.Printf("warning: failed to update connection state for workflow %d: %v", req.WorkflowID, err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Disconnected successfully",
	})
}

// Get handles GET /api/workflows/{id}/connection, used to prefill the
// connection step when editing an existing workflow.
func (h *ConnectionHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	conn, err := h.connectionService.GetForWorkflow(claims.UserID, workflowID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch connection")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"connection": conn,
	})
}

// QRImage handles GET /api/wa/qr?code=...: renders a pairing code as a PNG
// for clients that cannot display the bridge's base64 image.
func (h *ConnectionHandler) QRImage(w http.ResponseWriter, r *http.Request) {
	if _, err := authenticate(r, h.authService); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Missing code parameter")
		return
	}

	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// digitsOnly strips everything but digits from a phone number.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
