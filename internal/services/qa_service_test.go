package services

import (
	"testing"

	"botvance_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQAPairCRUDScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	qs := NewQAService(db)
	owner := seedUser(t, db, uniqueEmail(t))
	other := seedUser(t, db, "other-"+uniqueEmail(t))
	workflow := seedWorkflow(t, db, owner, "agent")

	pair, err := qs.Add(owner, workflow.ID, models.QAPairRequest{Question: "q", Answer: "a"})
	require.NoError(t, err)

	pairs, err := qs.ListForWorkflow(owner, workflow.ID)
	require.NoError(t, err)
	assert.Len(t, pairs, 1)

	// Other users see nothing and cannot touch the pair.
	pairs, err = qs.ListForWorkflow(other, workflow.ID)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	_, err = qs.Update(other, pair.ID, models.QAPairRequest{Question: "x", Answer: "y"})
	assert.ErrorIs(t, err, ErrQAPairNotFound)

	err = qs.Delete(other, pair.ID)
	assert.ErrorIs(t, err, ErrQAPairNotFound)

	updated, err := qs.Update(owner, pair.ID, models.QAPairRequest{Question: "q2", Answer: "a2"})
	require.NoError(t, err)
	assert.Equal(t, "q2", updated.Question)

	require.NoError(t, qs.Delete(owner, pair.ID))
	err = qs.Delete(owner, pair.ID)
	assert.ErrorIs(t, err, ErrQAPairNotFound)
}

func TestUpsertSingleKeepsOnePair(t *testing.T) {
	db := newTestDB(t)
	qs := NewQAService(db)
	userID := seedUser(t, db, uniqueEmail(t))
	workflow := seedWorkflow(t, db, userID, "agent")

	first, err := qs.UpsertSingle(userID, workflow.ID, models.QAPairRequest{Question: "q1", Answer: "a1"})
	require.NoError(t, err)

	second, err := qs.UpsertSingle(userID, workflow.ID, models.QAPairRequest{Question: "q2", Answer: "a2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.QAPair{}).Where("workflow_id = ?", workflow.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
