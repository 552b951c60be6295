package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/thenoetrevino/partners/internal/database"
	"github.com/thenoetrevino/partners/internal/events"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/querycache"
	"github.com/thenoetrevino/partners/internal/services/stage"
	"github.com/thenoetrevino/partners/internal/testutil"
	"github.com/thenoetrevino/partners/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type fixture struct {
	svc       Service
	store     *countingStore
	cache     *querycache.Cache
	stages    stage.Service
	publisher *testutil.EventRecorder
}

// countingStore counts List calls so tests can observe cache hits.
type countingStore struct {
	database.PartnerStore
	lists    int
	failNext error
}

func (c *countingStore) List(ctx context.Context) ([]*models.Partner, error) {
	c.lists++
	return c.PartnerStore.List(ctx)
}

func (c *countingStore) Update(ctx context.Context, id types.PartnerID, patch models.PartnerPatch) (*models.Partner, error) {
	if c.failNext != nil {
		err := c.failNext
		c.failNext = nil
		return nil, err
	}
	return c.PartnerStore.Update(ctx, id, patch)
}

func setupService(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)

	f := &fixture{
		store:     &countingStore{PartnerStore: database.NewPartnerRepo(db)},
		cache:     querycache.New(),
		stages:    stage.NewService(models.DefaultStages()),
		publisher: testutil.NewEventRecorder(),
	}
	f.svc = NewService(f.store, f.cache, f.stages, f.publisher)
	return f
}

func (f *fixture) create(t *testing.T, name, stage string) *models.Partner {
	t.Helper()
	p, err := f.svc.CreatePartner(context.Background(), CreatePartnerRequest{
		Name:  name,
		Email: name + "@example.com",
		Stage: stage,
	})
	if err != nil {
		t.Fatalf("CreatePartner(%s): %v", name, err)
	}
	return p
}

func ptr(s string) *string { return &s }

// ============================================================================
// Create
// ============================================================================

func TestCreatePartner_TrimsAndPublishes(t *testing.T) {
	f := setupService(t)

	p, err := f.svc.CreatePartner(context.Background(), CreatePartnerRequest{
		Name:  "  Acme  ",
		Email: " ana@acme.io ",
		Stage: models.StageDesign,
	})
	if err != nil {
		t.Fatalf("CreatePartner: %v", err)
	}
	if p.Name != "Acme" || p.Email != "ana@acme.io" {
		t.Errorf("expected trimmed fields, got %q %q", p.Name, p.Email)
	}

	sent := f.publisher.Events()
	if len(sent) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sent))
	}
	if sent[0].Type != events.EventPartnersChanged || sent[0].PartnerID != p.ID.ToInt64() {
		t.Errorf("unexpected event %+v", sent[0])
	}
}

func TestCreatePartner_ValidationBlocksStore(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.CreatePartner(context.Background(), CreatePartnerRequest{Name: "", Email: "x", Stage: "Nowhere"})
	if !models.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(models.FieldErrors(err)) != 3 {
		t.Errorf("expected 3 field errors, got %v", models.FieldErrors(err))
	}

	partners, _ := f.svc.ListPartners(context.Background())
	if len(partners) != 0 {
		t.Errorf("nothing should be stored, got %d partners", len(partners))
	}
	if f.publisher.EventCount() != 0 {
		t.Error("no event should be published for a rejected form")
	}
}

func TestCreatePartner_ProvisionalStageBecomesObserved(t *testing.T) {
	f := setupService(t)
	if _, err := f.stages.AddStage("Pilot"); err != nil {
		t.Fatalf("AddStage: %v", err)
	}

	f.create(t, "acme", "Pilot")
	if _, err := f.svc.ListPartners(context.Background()); err != nil {
		t.Fatalf("ListPartners: %v", err)
	}

	for _, s := range f.stages.Provisional() {
		if s == "Pilot" {
			t.Error("Pilot should be observed after a partner adopted it")
		}
	}
	if f.stages.Members("Pilot") != 1 {
		t.Errorf("expected 1 member in Pilot, got %d", f.stages.Members("Pilot"))
	}
}

// ============================================================================
// Cache behaviour
// ============================================================================

func TestListPartners_CachedUntilMutation(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	f.create(t, "acme", models.StageDesign)

	for i := 0; i < 3; i++ {
		if _, err := f.svc.ListPartners(ctx); err != nil {
			t.Fatalf("ListPartners: %v", err)
		}
	}
	if f.store.lists != 1 {
		t.Errorf("expected 1 store read, got %d", f.store.lists)
	}

	f.create(t, "globex", models.StageTesting)
	partners, err := f.svc.ListPartners(ctx)
	if err != nil {
		t.Fatalf("ListPartners: %v", err)
	}
	if f.store.lists != 2 {
		t.Errorf("expected refetch after mutation, got %d reads", f.store.lists)
	}
	if len(partners) != 2 {
		t.Errorf("expected 2 partners, got %d", len(partners))
	}
}

func TestGetPartner_InvalidatedWithCollection(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	p := f.create(t, "acme", models.StageDesign)

	got, err := f.svc.GetPartner(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPartner: %v", err)
	}
	if got.Stage != models.StageDesign {
		t.Fatalf("unexpected stage %s", got.Stage)
	}

	if _, err := f.svc.UpdateStage(ctx, p.ID, models.StageTesting); err != nil {
		t.Fatalf("UpdateStage: %v", err)
	}

	got, err = f.svc.GetPartner(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPartner: %v", err)
	}
	if got.Stage != models.StageTesting {
		t.Errorf("expected refreshed stage Testing, got %s", got.Stage)
	}
}

// ============================================================================
// Update / UpdateStage / Delete
// ============================================================================

func TestUpdatePartner(t *testing.T) {
	f := setupService(t)
	p := f.create(t, "acme", models.StageDesign)

	updated, err := f.svc.UpdatePartner(context.Background(), p.ID, UpdatePartnerRequest{Name: ptr(" Acme Corp ")})
	if err != nil {
		t.Fatalf("UpdatePartner: %v", err)
	}
	if updated.Name != "Acme Corp" {
		t.Errorf("expected trimmed name, got %q", updated.Name)
	}
	if updated.Email != p.Email || updated.Stage != p.Stage {
		t.Error("unpatched fields changed")
	}
}

func TestUpdatePartner_Errors(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	p := f.create(t, "acme", models.StageDesign)

	if _, err := f.svc.UpdatePartner(ctx, p.ID, UpdatePartnerRequest{}); !errors.Is(err, ErrEmptyPatch) {
		t.Errorf("expected ErrEmptyPatch, got %v", err)
	}
	if _, err := f.svc.UpdatePartner(ctx, 0, UpdatePartnerRequest{Name: ptr("x")}); !errors.Is(err, ErrInvalidPartnerID) {
		t.Errorf("expected ErrInvalidPartnerID, got %v", err)
	}
	if _, err := f.svc.UpdatePartner(ctx, p.ID, UpdatePartnerRequest{Email: ptr("broken")}); !models.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := f.svc.UpdatePartner(ctx, 999, UpdatePartnerRequest{Name: ptr("x")}); !models.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateStage_UnknownStageRejected(t *testing.T) {
	f := setupService(t)
	p := f.create(t, "acme", models.StageDesign)
	f.publisher.Reset()

	_, err := f.svc.UpdateStage(context.Background(), p.ID, "Limbo")
	if !models.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.publisher.EventCount() != 0 {
		t.Error("rejected move must not publish")
	}
}

func TestUpdateStage_StoreFailureInvalidates(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	p := f.create(t, "acme", models.StageDesign)
	if _, err := f.svc.ListPartners(ctx); err != nil {
		t.Fatalf("ListPartners: %v", err)
	}
	f.publisher.Reset()

	f.store.failNext = &models.StoreError{Op: "update", Message: "network down"}
	_, err := f.svc.UpdateStage(ctx, p.ID, models.StageTesting)

	var se *models.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	res, _ := f.cache.Peek(querycache.PartnersKey)
	if !res.Stale {
		t.Error("failed move should mark the collection stale")
	}
	if f.publisher.EventCount() != 0 {
		t.Error("failed move must not publish")
	}
}

func TestDeletePartner(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	p := f.create(t, "acme", models.StageDesign)

	if err := f.svc.DeletePartner(ctx, p.ID); err != nil {
		t.Fatalf("DeletePartner: %v", err)
	}
	if _, err := f.svc.GetPartner(ctx, p.ID); !models.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := f.svc.DeletePartner(ctx, p.ID); !models.IsNotFound(err) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

// Design is empty and Testing holds p1 and p2; moving p1 to Testing again
// leaves both counts and membership unchanged.
func TestScenario_UpdateToCurrentStage(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	p1 := f.create(t, "p1", models.StageTesting)
	p2 := f.create(t, "p2", models.StageTesting)

	if _, err := f.svc.UpdateStage(ctx, p1.ID, models.StageTesting); err != nil {
		t.Fatalf("UpdateStage: %v", err)
	}

	partners, err := f.svc.ListPartners(ctx)
	if err != nil {
		t.Fatalf("ListPartners: %v", err)
	}
	if f.stages.Members(models.StageDesign) != 0 || f.stages.Members(models.StageTesting) != 2 {
		t.Errorf("expected Design=0 Testing=2, got %d/%d",
			f.stages.Members(models.StageDesign), f.stages.Members(models.StageTesting))
	}
	if partners[0].ID != p1.ID || partners[1].ID != p2.ID {
		t.Error("partner order changed")
	}
}
