package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/partners/internal/testutil/cli"
)

func TestDashboard(t *testing.T) {
	t.Run("json counts per stage", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		cli.CreateTestPartner(t, db, "a", "Design")
		cli.CreateTestPartner(t, db, "b", "Testing")
		cli.CreateTestPartner(t, db, "c", "Testing")

		output, err := cli.ExecuteCLICommand(t, app, DashboardCmd(), []string{"--json"})
		require.NoError(t, err)

		result := cli.ParseJSON(t, output)
		assert.EqualValues(t, 3, result["total"])
		counts := map[string]float64{}
		for _, c := range result["stages"].([]interface{}) {
			entry := c.(map[string]interface{})
			counts[entry["stage"].(string)] = entry["count"].(float64)
		}
		assert.Equal(t, map[string]float64{"Design": 1, "Development": 0, "Testing": 2, "Completed": 0}, counts)
	})

	t.Run("quiet prints the total", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		cli.CreateTestPartner(t, db, "a", "Design")

		output, err := cli.ExecuteCLICommand(t, app, DashboardCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Equal(t, "1\n", output)
	})

	t.Run("plain output", func(t *testing.T) {
		db, app := cli.SetupCLITest(t)
		cli.CreateTestPartner(t, db, "a", "Design")

		output, err := cli.ExecuteCLICommand(t, app, DashboardCmd(), []string{"--plain"})
		require.NoError(t, err)
		assert.Contains(t, output, "partners in this stage")
		assert.Contains(t, output, "Total")
	})
}
