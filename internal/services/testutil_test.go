package services

import (
	"fmt"
	"testing"

	"botvance_backend/internal/database"
	"botvance_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory store with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.MigrateTables(db))
	return db
}

// seedUser provisions a signed-up user and returns its id.
func seedUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()

	auth := NewAuthService(db)
	user, err := auth.SignUp(models.UserRegister{
		Email:    email,
		Password: "secret123",
		Nome:     "Test User",
		Telefone: "5511999999999",
	})
	require.NoError(t, err)
	return user.ID
}

// seedWorkflow inserts a workflow directly, bypassing the subscription gate.
func seedWorkflow(t *testing.T, db *gorm.DB, userID uint, name string) *models.Workflow {
	t.Helper()

	workflow := models.Workflow{UserID: userID, Name: name}
	require.NoError(t, db.Create(&workflow).Error)
	return &workflow
}

// markPaid flips the user's subscription to the paid plan.
func markPaid(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()

	err := db.Model(&models.Subscription{}).Where("id = ?", userID).
		UpdateColumn("subscription", true).Error
	require.NoError(t, err)
}

// uniqueEmail avoids collisions across tests sharing the in-memory store.
func uniqueEmail(t *testing.T) string {
	return fmt.Sprintf("%s@example.com", t.Name())
}
