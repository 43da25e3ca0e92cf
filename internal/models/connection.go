package models

import (
	"time"
)

// WAConnection mirrors the connection a workflow holds on the external
// WhatsApp bridge. The row is upserted whenever a save carries both an
// instance name and a number; State only changes on explicit status checks.
type WAConnection struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       uint   `json:"user_id" gorm:"not null"`
	WorkflowID   uint   `json:"workflow_id" gorm:"not null;index"`
	InstanceName string `json:"instance_name" gorm:"size:100;not null"`
	NumeroWA     string `json:"numero_wa" gorm:"column:numero_wa;size:20"`
	State        string `json:"state" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for WAConnection
func (WAConnection) TableName() string {
	return "wa_connections"
}

// Connection states reported by the bridge.
const (
	ConnectionStateOpen         = "open"
	ConnectionStateConnecting   = "connecting"
	ConnectionStateDisconnected = "disconnected"
)

// ConnectRequest asks the bridge for a QR code to pair a workflow's number.
type ConnectRequest struct {
	WorkflowID   uint   `json:"workflow_id" validate:"required"`
	CountryCode  string `json:"country_code"`
	PhoneNumber  string `json:"phone_number" validate:"required"`
	InstanceName string `json:"instance_name" validate:"required"`
}

// StatusRequest identifies which workflow's connection to check or drop.
type StatusRequest struct {
	WorkflowID uint `json:"workflow_id" validate:"required"`
}

// Bridge API models

// BridgeConnectPayload is the outbound connect webhook body.
type BridgeConnectPayload struct {
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	NomeConexao string `json:"nome_conexao"`
	WorkflowID  uint   `json:"workflow_id"`
}

// BridgeActionPayload is the outbound body for status checks and disconnects.
type BridgeActionPayload struct {
	Email  string `json:"email"`
	Action string `json:"action"`
}

// BridgeQRResponse is the bridge's answer to a connect request.
type BridgeQRResponse struct {
	Base64      string `json:"base64"`
	PairingCode string `json:"pairingCode"`
}

// BridgeInstance is the instance block of a status response.
type BridgeInstance struct {
	InstanceName string `json:"instanceName"`
	State        string `json:"state"`
}

// BridgeStatusResponse is the bridge's answer to a check_connection request.
// The bridge sometimes wraps it in a one-element array.
type BridgeStatusResponse struct {
	Instance *BridgeInstance `json:"instance"`
	Erro     string          `json:"erro"`
}
