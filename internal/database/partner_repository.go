package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/types"
)

const partnerColumns = `id, name, email, stage, created_at`

// PartnerRepo handles pure data access for design partners.
// No validation, no events - just database operations.
type PartnerRepo struct {
	db *sql.DB
}

// NewPartnerRepo creates a repository over an initialized database
func NewPartnerRepo(db *sql.DB) *PartnerRepo {
	return &PartnerRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPartner(row rowScanner) (*models.Partner, error) {
	p := &models.Partner{}
	var id int64
	if err := row.Scan(&id, &p.Name, &p.Email, &p.Stage, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.ID = types.PartnerID(id)
	return p, nil
}

// List returns every partner in insertion order
func (r *PartnerRepo) List(ctx context.Context) ([]*models.Partner, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+partnerColumns+` FROM design_partners ORDER BY id`)
	if err != nil {
		return nil, models.NewStoreError("list", err)
	}
	defer func() { _ = rows.Close() }()

	partners := make([]*models.Partner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, models.NewStoreError("list", err)
		}
		partners = append(partners, p)
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewStoreError("list", err)
	}
	return partners, nil
}

// Get retrieves a single partner
func (r *PartnerRepo) Get(ctx context.Context, id types.PartnerID) (*models.Partner, error) {
	return r.get(ctx, r.db, "get", id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *PartnerRepo) get(ctx context.Context, q queryRower, op string, id types.PartnerID) (*models.Partner, error) {
	p, err := scanPartner(q.QueryRowContext(ctx,
		`SELECT `+partnerColumns+` FROM design_partners WHERE id = ?`, id.ToInt64()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.StoreError{
			Op:      op,
			Message: fmt.Sprintf("partner %d not found", id),
			Err:     models.ErrPartnerNotFound,
		}
	}
	if err != nil {
		return nil, models.NewStoreError(op, err)
	}
	return p, nil
}

// Insert creates a partner; id and created_at are assigned by the database
func (r *PartnerRepo) Insert(ctx context.Context, fields models.PartnerFields) (*models.Partner, error) {
	var created *models.Partner
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO design_partners (name, email, stage) VALUES (?, ?, ?)`,
			fields.Name, fields.Email, fields.Stage)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		created, err = r.get(ctx, tx, "insert", types.PartnerID(id))
		return err
	})
	if err != nil {
		var se *models.StoreError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, models.NewStoreError("insert", err)
	}
	return created, nil
}

// Update applies a field-level patch and returns the updated row
func (r *PartnerRepo) Update(ctx context.Context, id types.PartnerID, patch models.PartnerPatch) (*models.Partner, error) {
	var cols []string
	var vals []any
	if patch.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *patch.Name)
	}
	if patch.Email != nil {
		cols = append(cols, "email")
		vals = append(vals, *patch.Email)
	}
	if patch.Stage != nil {
		cols = append(cols, "stage")
		vals = append(vals, *patch.Stage)
	}
	if len(cols) == 0 {
		return r.Get(ctx, id)
	}

	var updated *models.Partner
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		set, args := buildPatchSet(cols, vals)
		args = append(args, id.ToInt64())
		result, err := tx.ExecContext(ctx, `UPDATE design_partners SET `+set+` WHERE id = ?`, args...)
		if err != nil {
			return err
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return &models.StoreError{
				Op:      "update",
				Message: fmt.Sprintf("partner %d not found", id),
				Err:     models.ErrPartnerNotFound,
			}
		}
		updated, err = r.get(ctx, tx, "update", id)
		return err
	})
	if err != nil {
		var se *models.StoreError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, models.NewStoreError("update", err)
	}
	return updated, nil
}

// Delete removes a partner
func (r *PartnerRepo) Delete(ctx context.Context, id types.PartnerID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM design_partners WHERE id = ?`, id.ToInt64())
	if err != nil {
		return models.NewStoreError("delete", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return models.NewStoreError("delete", err)
	}
	if n == 0 {
		return &models.StoreError{
			Op:      "delete",
			Message: fmt.Sprintf("partner %d not found", id),
			Err:     models.ErrPartnerNotFound,
		}
	}
	return nil
}
