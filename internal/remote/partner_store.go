package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/types"
)

// PartnerStore implements database.PartnerStore against the hosted table.
type PartnerStore struct {
	client *Client
	table  string
}

// NewPartnerStore creates a store for table (DefaultTable when empty).
func NewPartnerStore(client *Client, table string) *PartnerStore {
	if table == "" {
		table = DefaultTable
	}
	return &PartnerStore{client: client, table: table}
}

func (s *PartnerStore) path() string {
	return "/rest/v1/" + s.table
}

func byID(id types.PartnerID) url.Values {
	q := url.Values{}
	q.Set("id", "eq."+id.String())
	return q
}

// storeErr converts transport and parse failures into a StoreError.
func storeErr(op string, err error) error {
	var pe *models.ParseError
	if errors.As(err, &pe) {
		return &models.StoreError{Op: op, Message: pe.Error(), Err: pe}
	}
	return models.NewStoreError(op, err)
}

func notFound(op string, id types.PartnerID) error {
	return &models.StoreError{
		Op:      op,
		Message: fmt.Sprintf("partner %d not found", id),
		Err:     models.ErrPartnerNotFound,
	}
}

// List fetches every row ordered by id
func (s *PartnerStore) List(ctx context.Context) ([]*models.Partner, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "id.asc")
	data, err := s.client.do(ctx, request{method: http.MethodGet, path: s.path(), query: q})
	if err != nil {
		return nil, storeErr("list", err)
	}
	partners, err := parsePartners(data)
	if err != nil {
		return nil, storeErr("list", err)
	}
	return partners, nil
}

// Get fetches one row by id
func (s *PartnerStore) Get(ctx context.Context, id types.PartnerID) (*models.Partner, error) {
	q := byID(id)
	q.Set("select", "*")
	data, err := s.client.do(ctx, request{method: http.MethodGet, path: s.path(), query: q})
	if err != nil {
		return nil, storeErr("get", err)
	}
	return single("get", id, data)
}

func single(op string, id types.PartnerID, data []byte) (*models.Partner, error) {
	partners, err := parsePartners(data)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if len(partners) == 0 {
		return nil, notFound(op, id)
	}
	return partners[0], nil
}

type insertBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Stage string `json:"stage"`
}

// Insert creates a row and returns it as stored
func (s *PartnerStore) Insert(ctx context.Context, fields models.PartnerFields) (*models.Partner, error) {
	body := []insertBody{{Name: fields.Name, Email: fields.Email, Stage: fields.Stage}}
	data, err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   s.path(),
		body:   body,
		prefer: "return=representation",
	})
	if err != nil {
		return nil, storeErr("insert", err)
	}
	partners, err := parsePartners(data)
	if err != nil {
		return nil, storeErr("insert", err)
	}
	if len(partners) == 0 {
		return nil, &models.StoreError{Op: "insert", Message: "backend returned no row"}
	}
	return partners[0], nil
}

type patchBody struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Stage *string `json:"stage,omitempty"`
}

// Update patches the given fields of one row
func (s *PartnerStore) Update(ctx context.Context, id types.PartnerID, patch models.PartnerPatch) (*models.Partner, error) {
	if patch.IsEmpty() {
		return s.Get(ctx, id)
	}
	data, err := s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   s.path(),
		query:  byID(id),
		body:   patchBody{Name: patch.Name, Email: patch.Email, Stage: patch.Stage},
		prefer: "return=representation",
	})
	if err != nil {
		return nil, storeErr("update", err)
	}
	return single("update", id, data)
}

// Delete removes one row
func (s *PartnerStore) Delete(ctx context.Context, id types.PartnerID) error {
	data, err := s.client.do(ctx, request{
		method: http.MethodDelete,
		path:   s.path(),
		query:  byID(id),
		prefer: "return=representation",
	})
	if err != nil {
		return storeErr("delete", err)
	}
	if _, err := single("delete", id, data); err != nil {
		return err
	}
	return nil
}
