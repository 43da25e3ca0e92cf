package database

import (
	"database/sql"
	"log"
)

// CreateOwnershipIndexes creates the composite indexes used by the
// per-user/per-workflow equality filters that scope every query. AutoMigrate
// covers the single-column indexes declared on the models; the composite ones
// are raw SQL because the lookups always filter on both columns together.
// Failures are logged but not fatal: MySQL has no IF NOT EXISTS for indexes,
// so a rerun against an already-indexed schema may complain harmlessly.
func CreateOwnershipIndexes(db *sql.DB) {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_workflows_user_id_id ON workflows(user_id, id);`,
		`CREATE INDEX IF NOT EXISTS idx_qa_pairs_workflow_user ON qa_pairs(workflow_id, user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_wa_connections_workflow_user ON wa_connections(workflow_id, user_id);`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			log.Printf("warning: failed to create ownership index: %v", err)
		}
	}
}
