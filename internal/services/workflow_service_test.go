package services

import (
	"fmt"
	"testing"

	"botvance_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWorkflowFreeTierLimit(t *testing.T) {
	db := newTestDB(t)
	ws := NewWorkflowService(db)
	userID := seedUser(t, db, uniqueEmail(t))

	for i := 1; i <= models.FreeWorkflowLimit; i++ {
		_, err := ws.Create(userID, models.WorkflowRequest{Name: fmt.Sprintf("agent %d", i)})
		require.NoError(t, err)
	}

	_, err := ws.Create(userID, models.WorkflowRequest{Name: "one too many"})
	assert.ErrorIs(t, err, ErrWorkflowLimitReached)
}

func TestCreateWorkflowPaidPlanUnlimited(t *testing.T) {
	db := newTestDB(t)
	ws := NewWorkflowService(db)
	userID := seedUser(t, db, uniqueEmail(t))
	markPaid(t, db, userID)

	for i := 1; i <= models.FreeWorkflowLimit+2; i++ {
		_, err := ws.Create(userID, models.WorkflowRequest{Name: fmt.Sprintf("agent %d", i)})
		require.NoError(t, err)
	}
}

func TestCreateWorkflowWithoutSubscriptionRowIsFreeTier(t *testing.T) {
	db := newTestDB(t)
	ws := NewWorkflowService(db)
	userID := seedUser(t, db, uniqueEmail(t))
	require.NoError(t, db.Delete(&models.Subscription{}, userID).Error)

	for i := 1; i <= models.FreeWorkflowLimit; i++ {
		_, err := ws.Create(userID, models.WorkflowRequest{Name: fmt.Sprintf("agent %d", i)})
		require.NoError(t, err)
	}

	_, err := ws.Create(userID, models.WorkflowRequest{Name: "blocked"})
	assert.ErrorIs(t, err, ErrWorkflowLimitReached)
}

func TestCreateWorkflowBumpsCounter(t *testing.T) {
	db := newTestDB(t)
	ws := NewWorkflowService(db)
	userID := seedUser(t, db, uniqueEmail(t))

	_, err := ws.Create(userID, models.WorkflowRequest{Name: "agent"})
	require.NoError(t, err)

	var sub models.Subscription
	require.NoError(t, db.First(&sub, userID).Error)
	assert.Equal(t, 1, sub.NumberWorkflows)
}

func TestGetByIDScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	ws := NewWorkflowService(db)
	owner := seedUser(t, db, uniqueEmail(t))
	other := seedUser(t, db, "other-"+uniqueEmail(t))

	workflow := seedWorkflow(t, db, owner, "agent")

	found, err := ws.GetByID(owner, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, "agent", found.Name)

	_, err = ws.GetByID(other, workflow.ID)
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestDeleteWorkflowLeavesDependentRows(t *testing.T) {
	db := newTestDB(t)
	ws := NewWorkflowService(db)
	userID := seedUser(t, db, uniqueEmail(t))
	workflow := seedWorkflow(t, db, userID, "agent")

	require.NoError(t, db.Create(&models.QAPair{
		UserID: userID, WorkflowID: workflow.ID, Question: "q", Answer: "a",
	}).Error)
	require.NoError(t, db.Create(&models.FollowUpSchedule{WorkflowID: workflow.ID}).Error)
	require.NoError(t, db.Create(&models.WAConnection{
		UserID: userID, WorkflowID: workflow.ID, InstanceName: "inst",
	}).Error)

	require.NoError(t, ws.Delete(userID, workflow.ID))

	_, err := ws.GetByID(userID, workflow.ID)
	assert.ErrorIs(t, err, ErrWorkflowNotFound)

	// Deletes do not cascade; dependent rows stay behind.
	var qaCount, fupCount, connCount int64
	require.NoError(t, db.Model(&models.QAPair{}).Where("workflow_id = ?", workflow.ID).Count(&qaCount).Error)
	require.NoError(t, db.Model(&models.FollowUpSchedule{}).Where("workflow_id = ?", workflow.ID).Count(&fupCount).Error)
	require.NoError(t, db.Model(&models.WAConnection{}).Where("workflow_id = ?", workflow.ID).Count(&connCount).Error)
	assert.Equal(t, int64(1), qaCount)
	assert.Equal(t, int64(1), fupCount)
	assert.Equal(t, int64(1), connCount)
}

func TestDeleteMissingWorkflow(t *testing.T) {
	db := newTestDB(t)
	ws := NewWorkflowService(db)
	userID := seedUser(t, db, uniqueEmail(t))

	err := ws.Delete(userID, 999)
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestUpdateAutomationValidatesInput(t *testing.T) {
	db := newTestDB(t)
	ws := NewWorkflowService(db)
	userID := seedUser(t, db, uniqueEmail(t))
	workflow := seedWorkflow(t, db, userID, "agent")

	err := ws.UpdateAutomation(userID, workflow.ID, models.AutomationRequest{
		WebhookURL:   "ftp://example.com/hook",
		WorkflowJSON: "{}",
	})
	assert.Error(t, err)

	err = ws.UpdateAutomation(userID, workflow.ID, models.AutomationRequest{
		WebhookURL:   "https://example.com/hook",
		WorkflowJSON: "{not json",
	})
	assert.Error(t, err)

	err = ws.UpdateAutomation(userID, workflow.ID, models.AutomationRequest{
		WebhookURL:   "https://example.com/hook",
		WorkflowJSON: `{"nodes":[]}`,
	})
	require.NoError(t, err)

	updated, err := ws.GetByID(userID, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/hook", updated.WebhookURL)
}

func TestConnectorURL(t *testing.T) {
	ws := NewWorkflowService(nil)
	assert.Equal(t, "https://webhooks.botvance.com.br/webhook/conector?q=42", ws.ConnectorURL(42))
}

func TestConnectorURLCustomBase(t *testing.T) {
	t.Setenv("WEBHOOK_BASE_URL", "https://hooks.example.com/")
	ws := NewWorkflowService(nil)
	assert.Equal(t, "https://hooks.example.com/webhook/conector?q=7", ws.ConnectorURL(7))
}

func TestOpenAIKeyRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ws := NewWorkflowService(db)
	userID := seedUser(t, db, uniqueEmail(t))
	workflow := seedWorkflow(t, db, userID, "agent")

	require.NoError(t, ws.UpdateOpenAIKey(userID, workflow.ID, "sk-test-123"))

	key, err := ws.GetOpenAIKey(userID, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", key)
}
