package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/types"
)

// ParseIDArg reads a partner ID from the first positional argument or the
// --id flag.
func ParseIDArg(cmd *cobra.Command, args []string) (types.PartnerID, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else if v, err := cmd.Flags().GetInt64("id"); err == nil && v != 0 {
		raw = fmt.Sprintf("%d", v)
	}
	if strings.TrimSpace(raw) == "" {
		return 0, fmt.Errorf("partner ID is required")
	}
	id, err := types.ParsePartnerID(raw)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// PartnerJSON is the wire shape of a partner in --json output.
func PartnerJSON(p *models.Partner) map[string]interface{} {
	out := map[string]interface{}{
		"id":    p.ID.ToInt64(),
		"name":  p.Name,
		"email": p.Email,
		"stage": p.Stage,
	}
	if !p.CreatedAt.IsZero() {
		out["created_at"] = p.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// PartnersJSON maps PartnerJSON over a list.
func PartnersJSON(partners []*models.Partner) []map[string]interface{} {
	out := make([]map[string]interface{}, len(partners))
	for i, p := range partners {
		out[i] = PartnerJSON(p)
	}
	return out
}
