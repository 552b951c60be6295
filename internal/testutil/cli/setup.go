package cli

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/thenoetrevino/partners/internal/app"
	"github.com/thenoetrevino/partners/internal/database"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/testutil"
	"github.com/thenoetrevino/partners/internal/types"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// Note: EventPublisher is nil - event publishing is tested elsewhere
	appInstance := app.New(database.NewPartnerRepo(db), nil,
		app.WithStageDefaults(models.DefaultStages()))
	t.Cleanup(func() { _ = appInstance.Close() })

	return db, appInstance
}

// CreateTestPartner wraps testutil.CreateTestPartner for CLI tests
func CreateTestPartner(t *testing.T, db *sql.DB, name, stage string) types.PartnerID {
	t.Helper()
	return testutil.CreateTestPartner(t, db, name, stage)
}

// ParseJSON parses a JSON object printed by a CLI command
func ParseJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}
