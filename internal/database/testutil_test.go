package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/partners/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setupTestDBFile creates a file-based database for testing persistence across restarts
func setupTestDBFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "partners-test.db")
}

// createTestPartner inserts a partner directly through the repository
func createTestPartner(t *testing.T, repo *PartnerRepo, name, stage string) *models.Partner {
	t.Helper()
	p, err := repo.Insert(context.Background(), models.PartnerFields{
		Name:  name,
		Email: name + "@example.com",
		Stage: stage,
	})
	if err != nil {
		t.Fatalf("Failed to create test partner: %v", err)
	}
	return p
}
