package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"botvance_backend/internal/models"
)

// BridgeService talks to the external webhook-driven bridge that owns the
// actual WhatsApp channels. Every operation is a single outbound POST with a
// JSON body; no call is retried, and a failure is terminal for the triggering
// user action.
type BridgeService struct {
	ConnectURL    string
	StatusURL     string
	DisconnectURL string
	client        *http.Client
}

func NewBridgeService() *BridgeService {
	connectURL := os.Getenv("BRIDGE_CONNECT_URL")
	if connectURL == "" {
		connectURL = "https://webhooks.botvance.com.br/webhook/8ce3cd0c-fb7b-4727-9782-92bfe292f3c9"
	}

	statusURL := os.Getenv("BRIDGE_STATUS_URL")
	if statusURL == "" {
		statusURL = "https://webhooks.botvance.com.br/webhook/bbbb1235-0cad-482d-ae30-b49ba0122aad"
	}

	disconnectURL := os.Getenv("BRIDGE_DISCONNECT_URL")
	if disconnectURL == "" {
		disconnectURL = "https://webhooks.botvance.com.br/webhook/742674d8-4fb7-4be6-bfe9-d5d5ba2ed2f7"
	}

	return &BridgeService{
		ConnectURL:    connectURL,
		StatusURL:     statusURL,
		DisconnectURL: disconnectURL,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

// RequestQR asks the bridge to start pairing a number and returns the QR
// payload to display. A response carrying neither a base64 image nor a
// pairing code is rejected.
func (bs *BridgeService) RequestQR(email, telefone, nomeConexao string, workflowID uint) (*models.BridgeQRResponse, error) {
	payload := models.BridgeConnectPayload{
		Email:       email,
		Telefone:    telefone,
		NomeConexao: nomeConexao,
		WorkflowID:  workflowID,
	}

	body, err := bs.post(bs.ConnectURL, payload)
	if err != nil {
		return nil, err
	}

	var qr models.BridgeQRResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bridge response: %v", err)
	}
	if qr.Base64 == "" && qr.PairingCode == "" {
		return nil, errors.New("invalid QR code received from bridge")
	}

	return &qr, nil
}

// CheckConnection asks the bridge for the channel state of the user's
// instance. Any failure, error field, or unknown state reads as disconnected;
// the caller decides whether to mirror the result.
func (bs *BridgeService) CheckConnection(email string) string {
	payload := models.BridgeActionPayload{Email: email, Action: "check_connection"}

	body, err := bs.post(bs.StatusURL, payload)
	if err != nil {
		return models.ConnectionStateDisconnected
	}

	status, err := decodeBridgeStatus(body)
	if err != nil || status.Erro != "" || status.Instance == nil {
		return models.ConnectionStateDisconnected
	}

	switch status.Instance.State {
	case models.ConnectionStateConnecting, models.ConnectionStateOpen:
		return status.Instance.State
	default:
		return models.ConnectionStateDisconnected
	}
}

// Disconnect tells the bridge to drop the user's channel. A non-2xx response
// surfaces the body text to the caller.
func (bs *BridgeService) Disconnect(email string) error {
	payload := models.BridgeActionPayload{Email: email, Action: "disconnect"}
	_, err := bs.post(bs.DisconnectURL, payload)
	return err
}

// post sends one JSON webhook call and returns the response body, treating
// any non-2xx status as an error that carries the body text.
func (bs *BridgeService) post(url string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := bs.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to bridge: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read bridge response: %v", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("bridge error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// decodeBridgeStatus handles both response shapes the bridge produces: a
// bare status object or a one-element array wrapping it.
func decodeBridgeStatus(body []byte) (*models.BridgeStatusResponse, error) {
	var list []models.BridgeStatusResponse
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) == 0 {
			return nil, errors.New("empty bridge status response")
		}
		return &list[0], nil
	}

	var status models.BridgeStatusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bridge status: %v", err)
	}
	return &status, nil
}
