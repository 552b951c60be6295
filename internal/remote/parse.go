package remote

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/types"
)

// partnerRow mirrors a design_partners row on the wire. Pointers let the
// parser tell a missing field from an empty one.
type partnerRow struct {
	ID        *int64  `json:"id"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Stage     *string `json:"stage"`
	CreatedAt *string `json:"created_at"`
}

// timestamptz values come back in either of these layouts
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parsePartner validates one raw row and converts it to a model.
func parsePartner(raw json.RawMessage) (*models.Partner, error) {
	var row partnerRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, &models.ParseError{Reason: err.Error(), Raw: truncate(string(raw))}
	}

	switch {
	case row.ID == nil:
		return nil, &models.ParseError{Field: "id", Reason: "missing", Raw: truncate(string(raw))}
	case *row.ID <= 0:
		return nil, &models.ParseError{Field: "id", Reason: "must be positive", Raw: truncate(string(raw))}
	case row.Name == nil:
		return nil, &models.ParseError{Field: "name", Reason: "missing", Raw: truncate(string(raw))}
	case row.Email == nil:
		return nil, &models.ParseError{Field: "email", Reason: "missing", Raw: truncate(string(raw))}
	case row.Stage == nil:
		return nil, &models.ParseError{Field: "stage", Reason: "missing", Raw: truncate(string(raw))}
	case row.CreatedAt == nil:
		return nil, &models.ParseError{Field: "created_at", Reason: "missing", Raw: truncate(string(raw))}
	}

	created, ok := parseTimestamp(*row.CreatedAt)
	if !ok {
		return nil, &models.ParseError{Field: "created_at", Reason: "not a timestamp", Raw: truncate(*row.CreatedAt)}
	}

	return &models.Partner{
		ID:        types.PartnerID(*row.ID),
		Name:      *row.Name,
		Email:     *row.Email,
		Stage:     *row.Stage,
		CreatedAt: created,
	}, nil
}

// parsePartners parses a JSON array of rows.
func parsePartners(data []byte) ([]*models.Partner, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &models.ParseError{Reason: "expected an array of rows: " + err.Error(), Raw: truncate(string(data))}
	}
	out := make([]*models.Partner, 0, len(raws))
	for _, raw := range raws {
		p, err := parsePartner(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// maxRawRunes bounds the raw input quoted in a ParseError.
const maxRawRunes = 120

// truncate shortens s to maxRawRunes, cutting on a rune boundary.
func truncate(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxRawRunes {
		return s
	}
	return string([]rune(s)[:maxRawRunes-3]) + "..."
}
