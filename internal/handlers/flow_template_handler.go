package handlers

import (
	"net/http"
	"os"
)

// FlowTemplateHandler serves the base automation flow definition that new
// workflows start from. The file ships with the deployment; the path can be
// overridden for staging setups.
type FlowTemplateHandler struct {
	path string
}

func NewFlowTemplateHandler() *FlowTemplateHandler {
	path := os.Getenv("FLOW_TEMPLATE_PATH")
	if path == "" {
		path = "assets/workflow_template.json"
	}
	return &FlowTemplateHandler{path: path}
}

// Get handles GET /api/flow-template.
func (h *FlowTemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Flow template not available")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
