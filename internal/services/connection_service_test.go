package services

import (
	"testing"

	"botvance_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionUpsertKeepsOneRow(t *testing.T) {
	db := newTestDB(t)
	cs := NewConnectionService(db)
	userID := seedUser(t, db, uniqueEmail(t))
	workflow := seedWorkflow(t, db, userID, "agent")

	first, err := cs.Upsert(userID, workflow.ID, "inst-1", "5511988887777")
	require.NoError(t, err)

	second, err := cs.Upsert(userID, workflow.ID, "inst-2", "5511900000000")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "inst-2", second.InstanceName)

	var count int64
	require.NoError(t, db.Model(&models.WAConnection{}).Where("workflow_id = ?", workflow.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateStateWithoutRowIsNoop(t *testing.T) {
	db := newTestDB(t)
	cs := NewConnectionService(db)
	userID := seedUser(t, db, uniqueEmail(t))

	require.NoError(t, cs.UpdateState(userID, 999, models.ConnectionStateOpen))
}

func TestUpdateStateMirrorsBridgeAnswer(t *testing.T) {
	db := newTestDB(t)
	cs := NewConnectionService(db)
	userID := seedUser(t, db, uniqueEmail(t))
	workflow := seedWorkflow(t, db, userID, "agent")

	_, err := cs.Upsert(userID, workflow.ID, "inst", "5511988887777")
	require.NoError(t, err)

	require.NoError(t, cs.UpdateState(userID, workflow.ID, models.ConnectionStateOpen))

	conn, err := cs.GetForWorkflow(userID, workflow.ID)
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, models.ConnectionStateOpen, conn.State)
}

func TestGetForWorkflowAbsentIsNil(t *testing.T) {
	db := newTestDB(t)
	cs := NewConnectionService(db)
	userID := seedUser(t, db, uniqueEmail(t))

	conn, err := cs.GetForWorkflow(userID, 42)
	require.NoError(t, err)
	assert.Nil(t, conn)
}
