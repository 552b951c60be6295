package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/types"
)

func TestPartnerRepo_InsertAssignsIDAndCreatedAt(t *testing.T) {
	t.Parallel()
	repo := NewPartnerRepo(setupTestDB(t))

	p, err := repo.Insert(context.Background(), models.PartnerFields{
		Name:  "Acme Inc",
		Email: "hello@acme.io",
		Stage: models.StageDesign,
	})
	require.NoError(t, err)

	assert.True(t, p.ID.Valid())
	assert.Equal(t, "Acme Inc", p.Name)
	assert.Equal(t, "hello@acme.io", p.Email)
	assert.Equal(t, models.StageDesign, p.Stage)
	assert.False(t, p.CreatedAt.IsZero(), "created_at should be set by the database")
}

func TestPartnerRepo_ListKeepsInsertionOrder(t *testing.T) {
	t.Parallel()
	repo := NewPartnerRepo(setupTestDB(t))

	createTestPartner(t, repo, "b", models.StageTesting)
	createTestPartner(t, repo, "a", models.StageDesign)
	createTestPartner(t, repo, "c", models.StageDesign)

	partners, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, partners, 3)

	assert.Equal(t, "b", partners[0].Name)
	assert.Equal(t, "a", partners[1].Name)
	assert.Equal(t, "c", partners[2].Name)
}

func TestPartnerRepo_ListEmpty(t *testing.T) {
	t.Parallel()
	repo := NewPartnerRepo(setupTestDB(t))

	partners, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, partners)
	assert.Empty(t, partners)
}

func TestPartnerRepo_UpdateOnlyPatchedFields(t *testing.T) {
	t.Parallel()
	repo := NewPartnerRepo(setupTestDB(t))
	p := createTestPartner(t, repo, "acme", models.StageDesign)

	updated, err := repo.Update(context.Background(), p.ID, models.StagePatch(models.StageTesting))
	require.NoError(t, err)

	assert.Equal(t, models.StageTesting, updated.Stage)
	assert.Equal(t, "acme", updated.Name)
	assert.Equal(t, "acme@example.com", updated.Email)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt, "created_at is immutable")
}

func TestPartnerRepo_UpdateEmptyPatchReturnsRow(t *testing.T) {
	t.Parallel()
	repo := NewPartnerRepo(setupTestDB(t))
	p := createTestPartner(t, repo, "acme", models.StageDesign)

	got, err := repo.Update(context.Background(), p.ID, models.PartnerPatch{})
	require.NoError(t, err)
	assert.Equal(t, p.Stage, got.Stage)
}

func TestPartnerRepo_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewPartnerRepo(setupTestDB(t))
	ctx := context.Background()
	missing := types.PartnerID(999)

	_, err := repo.Get(ctx, missing)
	assertNotFound(t, err, "get")

	_, err = repo.Update(ctx, missing, models.StagePatch("Design"))
	assertNotFound(t, err, "update")

	err = repo.Delete(ctx, missing)
	assertNotFound(t, err, "delete")
}

func assertNotFound(t *testing.T, err error, op string) {
	t.Helper()
	require.Error(t, err)
	var se *models.StoreError
	require.True(t, errors.As(err, &se), "expected StoreError, got %T", err)
	assert.Equal(t, op, se.Op)
	assert.True(t, models.IsNotFound(err))
}

func TestPartnerRepo_Delete(t *testing.T) {
	t.Parallel()
	repo := NewPartnerRepo(setupTestDB(t))
	p := createTestPartner(t, repo, "acme", models.StageDesign)

	require.NoError(t, repo.Delete(context.Background(), p.ID))

	partners, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, partners)
}
