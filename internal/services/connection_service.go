package services

import (
	"errors"

	"botvance_backend/internal/models"

	"gorm.io/gorm"
)

type ConnectionService struct {
	db *gorm.DB
}

func NewConnectionService(db *gorm.DB) *ConnectionService {
	return &ConnectionService{db: db}
}

// GetForWorkflow returns the mirror row of a workflow's bridge connection, or
// (nil, nil) when the workflow was never connected.
func (cs *ConnectionService) GetForWorkflow(userID, workflowID uint) (*models.WAConnection, error) {
	var conn models.WAConnection
	err := cs.db.Where("workflow_id = ? AND user_id = ?", workflowID, userID).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// Upsert writes the connection identifiers mirrored from the bridge: update
// the existing row for the workflow if present, insert otherwise.
func (cs *ConnectionService) Upsert(userID, workflowID uint, instanceName, numeroWA string) (*models.WAConnection, error) {
	existing, err := cs.GetForWorkflow(userID, workflowID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.InstanceName = instanceName
		existing.NumeroWA = numeroWA
		if saveErr := cs.db.Save(existing).Error; saveErr != nil {
			return nil, saveErr
		}
		return existing, nil
	}

	conn := models.WAConnection{
		UserID:       userID,
		WorkflowID:   workflowID,
		InstanceName: instanceName,
		NumeroWA:     numeroWA,
	}
	if err := cs.db.Create(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

// UpdateState refreshes the last-known connection state. Only explicit status
// checks against the bridge call this; nothing else observes the channel.
func (cs *ConnectionService) UpdateState(userID, workflowID uint, state string) error {
	conn, err := cs.GetForWorkflow(userID, workflowID)
	if err != nil {
		return err
	}
	if conn == nil {
		return nil // no mirror row yet, nothing to refresh
	}
	conn.State = state
	return cs.db.Save(conn).Error
}
