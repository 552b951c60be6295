package partner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	partnerscli "github.com/thenoetrevino/partners/internal/cli"
	"github.com/thenoetrevino/partners/internal/database"
	"github.com/thenoetrevino/partners/internal/testutil/cli"
	"github.com/thenoetrevino/partners/internal/types"
)

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var cmdErr *partnerscli.CommandError
	require.True(t, errors.As(err, &cmdErr), "expected *CommandError, got %v", err)
	return cmdErr.Code
}

// ============================================================================
// LIST
// ============================================================================

func TestListPartners(t *testing.T) {
	t.Run("sorted by name ascending", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		cli.CreateTestPartner(t, db, "bravo", "Design")
		cli.CreateTestPartner(t, db, "alpha", "Testing")
		cli.CreateTestPartner(t, db, "charlie", "Design")

		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
		require.NoError(t, err)

		result := cli.ParseJSON(t, output)
		partners := result["partners"].([]interface{})
		require.Len(t, partners, 3)
		names := make([]string, 0, 3)
		for _, p := range partners {
			names = append(names, p.(map[string]interface{})["name"].(string))
		}
		assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names)
		assert.Equal(t, "asc", result["sort"].(map[string]interface{})["direction"])
	})

	t.Run("descending by stage", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		cli.CreateTestPartner(t, db, "a", "Design")
		cli.CreateTestPartner(t, db, "b", "Testing")

		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--sort", "stage", "--desc", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "1"}, strings.Fields(output))
	})

	t.Run("stage filter", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		cli.CreateTestPartner(t, db, "a", "Design")
		id := cli.CreateTestPartner(t, db, "b", "Testing")

		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--stage", "Testing", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{id.String()}, strings.Fields(output))
	})

	t.Run("human table", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		cli.CreateTestPartner(t, db, "acme", "Design")

		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "acme@example.com")
		assert.Contains(t, output, "Design")
	})

	t.Run("unknown sort key is a usage error", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		_, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--sort", "priority"})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitUsage, exitCode(t, err))
	})
}

// ============================================================================
// SHOW
// ============================================================================

func TestShowPartner(t *testing.T) {
	t.Run("positional id", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Testing")

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{id.String()})
		require.NoError(t, err)
		assert.Contains(t, output, "acme")
		assert.Contains(t, output, "Testing")
	})

	t.Run("json with id flag", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Testing")

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", id.String(), "--json"})
		require.NoError(t, err)

		partner := cli.ParseJSON(t, output)["partner"].(map[string]interface{})
		assert.Equal(t, "acme@example.com", partner["email"])
		assert.EqualValues(t, id.ToInt64(), partner["id"])
	})

	t.Run("missing partner exits not found", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"999", "--json"})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitNotFound, exitCode(t, err))

		result := cli.ParseJSON(t, output)
		assert.Equal(t, false, result["success"])
		assert.Equal(t, "PARTNER_NOT_FOUND", result["error"].(map[string]interface{})["code"])
	})

	t.Run("malformed id exits usage", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"abc"})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitUsage, exitCode(t, err))
	})
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreatePartner(t *testing.T) {
	t.Run("defaults to the first stage", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)

		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Acme", "--email", "ops@acme.io", "--quiet",
		})
		require.NoError(t, err)

		id, err := types.ParsePartnerID(strings.TrimSpace(output))
		require.NoError(t, err)
		p, err := database.NewPartnerRepo(db).Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Design", p.Stage)
		assert.Equal(t, "Acme", p.Name)
	})

	t.Run("explicit stage", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Acme", "--email", "ops@acme.io", "--stage", "Testing", "--json",
		})
		require.NoError(t, err)
		partner := cli.ParseJSON(t, output)["partner"].(map[string]interface{})
		assert.Equal(t, "Testing", partner["stage"])
	})

	t.Run("validation lists every field", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", " ", "--email", "not-an-email", "--json",
		})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitValidation, exitCode(t, err))

		fields := cli.ParseJSON(t, output)["error"].(map[string]interface{})["fields"].(map[string]interface{})
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "email")
	})

	t.Run("unknown stage is rejected", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Acme", "--email", "ops@acme.io", "--stage", "Nowhere",
		})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitValidation, exitCode(t, err))
	})
}

// ============================================================================
// UPDATE
// ============================================================================

func TestUpdatePartner(t *testing.T) {
	t.Run("only given fields change", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Design")

		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{id.String(), "--email", "new@acme.io"})
		require.NoError(t, err)

		p, err := database.NewPartnerRepo(db).Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "new@acme.io", p.Email)
		assert.Equal(t, "acme", p.Name)
		assert.Equal(t, "Design", p.Stage)
	})

	t.Run("no fields is a usage error", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Design")

		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{id.String()})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitUsage, exitCode(t, err))
	})

	t.Run("missing partner", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"42", "--name", "x"})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitNotFound, exitCode(t, err))
	})
}

// ============================================================================
// DELETE
// ============================================================================

func TestDeletePartner(t *testing.T) {
	t.Run("force", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Design")

		output, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{id.String(), "--force"})
		require.NoError(t, err)
		assert.Contains(t, output, "deleted")

		_, err = database.NewPartnerRepo(db).Get(context.Background(), id)
		assert.Error(t, err)
	})

	t.Run("declined confirmation keeps the partner", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Design")

		res, err := cli.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{id.String()}, "n\n")
		require.NoError(t, err)
		assert.Contains(t, res.Stdout, "Cancelled")

		_, err = database.NewPartnerRepo(db).Get(context.Background(), id)
		assert.NoError(t, err)
	})

	t.Run("accepted confirmation", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Design")

		_, err := cli.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{id.String()}, "yes\n")
		require.NoError(t, err)

		_, err = database.NewPartnerRepo(db).Get(context.Background(), id)
		assert.Error(t, err)
	})

	t.Run("json skips confirmation", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Design")

		output, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", id.String(), "--json"})
		require.NoError(t, err)
		assert.EqualValues(t, id.ToInt64(), cli.ParseJSON(t, output)["partner_id"])
	})
}

// ============================================================================
// MOVE
// ============================================================================

func TestMovePartner(t *testing.T) {
	t.Run("cross stage move persists", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Design")

		output, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{id.String(), "--stage", "Testing", "--json"})
		require.NoError(t, err)

		result := cli.ParseJSON(t, output)
		assert.Equal(t, "Design", result["from"])
		assert.Equal(t, "Testing", result["to"])
		assert.Equal(t, true, result["persisted"])

		p, err := database.NewPartnerRepo(db).Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Testing", p.Stage)
	})

	t.Run("same stage reorder is not saved", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		first := cli.CreateTestPartner(t, db, "a", "Testing")
		cli.CreateTestPartner(t, db, "b", "Testing")

		output, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{
			first.String(), "--stage", "Testing", "--index", "1", "--json",
		})
		require.NoError(t, err)
		assert.Equal(t, false, cli.ParseJSON(t, output)["persisted"])

		p, err := database.NewPartnerRepo(db).Get(context.Background(), first)
		require.NoError(t, err)
		assert.Equal(t, "Testing", p.Stage)
	})

	t.Run("unknown stage", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		id := cli.CreateTestPartner(t, db, "acme", "Design")

		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{id.String(), "--stage", "Nowhere"})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitNotFound, exitCode(t, err))
	})

	t.Run("missing partner", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"7", "--stage", "Design"})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitNotFound, exitCode(t, err))
	})

	t.Run("stage flag required", func(t *testing.T) {
		_, app := cli.SetupCLITest(t)

		_, err := cli.ExecuteCLICommand(t, app, MoveCmd(), []string{"1"})
		require.Error(t, err)
		assert.Equal(t, partnerscli.ExitUsage, exitCode(t, err))
	})
}

func TestPartnerCmd_Subcommands(t *testing.T) {
	cmd := PartnerCmd()
	for _, name := range []string{"list", "show", "create", "update", "delete", "move"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name(), fmt.Sprintf("subcommand %s", name))
	}
}
