package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/partners/internal/database"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/types"
)

// SetupTestDB creates an in-memory database with the partner schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestPartner inserts a partner named name in stage and returns its ID.
// The email is derived from the name.
func CreateTestPartner(t *testing.T, db *sql.DB, name, stage string) types.PartnerID {
	t.Helper()
	p, err := database.NewPartnerRepo(db).Insert(context.Background(), models.PartnerFields{
		Name:  name,
		Email: name + "@example.com",
		Stage: stage,
	})
	if err != nil {
		t.Fatalf("Failed to create test partner: %v", err)
	}
	return p.ID
}
