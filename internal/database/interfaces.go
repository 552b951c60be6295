package database

import (
	"context"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/types"
)

// PartnerStore is the record store contract shared by the local SQLite
// repository and the hosted REST client.
// Every failure is reported as a *models.StoreError.
type PartnerStore interface {
	List(ctx context.Context) ([]*models.Partner, error)
	Get(ctx context.Context, id types.PartnerID) (*models.Partner, error)
	Insert(ctx context.Context, fields models.PartnerFields) (*models.Partner, error)
	Update(ctx context.Context, id types.PartnerID, patch models.PartnerPatch) (*models.Partner, error)
	Delete(ctx context.Context, id types.PartnerID) error
}

// Compile-time verification that *PartnerRepo implements PartnerStore
var _ PartnerStore = (*PartnerRepo)(nil)
