package stage

import (
	"errors"
	"slices"
	"testing"

	"github.com/thenoetrevino/partners/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func partnersIn(stages ...string) []*models.Partner {
	out := make([]*models.Partner, len(stages))
	for i, s := range stages {
		out[i] = &models.Partner{Name: "p", Stage: s}
	}
	return out
}

func assertStages(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("expected stages %v, got %v", want, got)
	}
}

// ============================================================================
// ListStages
// ============================================================================

func TestListStages_DefaultsOnFreshRegistry(t *testing.T) {
	svc := NewService(models.DefaultStages())
	assertStages(t, svc.ListStages(), []string{"Design", "Development", "Testing", "Completed"})
	assertStages(t, svc.Provisional(), []string{"Design", "Development", "Testing", "Completed"})
	if len(svc.Observed()) != 0 {
		t.Errorf("expected nothing observed, got %v", svc.Observed())
	}
}

func TestListStages_CanonicalOrder(t *testing.T) {
	svc := NewService([]string{"Design", "Testing"})
	if _, err := svc.AddStage("Beta"); err != nil {
		t.Fatalf("AddStage: %v", err)
	}

	svc.Refresh(partnersIn("Pilot", "Testing", "Archived", "Pilot", "Design"))

	assertStages(t, svc.ListStages(), []string{"Design", "Testing", "Pilot", "Archived", "Beta"})
	assertStages(t, svc.Observed(), []string{"Pilot", "Testing", "Archived", "Design"})
}

func TestNewService_IgnoresBlankAndDuplicateDefaults(t *testing.T) {
	svc := NewService([]string{" Design ", "", "Design", "Testing"})
	assertStages(t, svc.ListStages(), []string{"Design", "Testing"})
}

// ============================================================================
// AddStage
// ============================================================================

func TestAddStage_TrimsAndAppends(t *testing.T) {
	svc := NewService(nil)

	name, err := svc.AddStage("  QA  ")
	if err != nil {
		t.Fatalf("AddStage: %v", err)
	}
	if name != "QA" {
		t.Errorf("expected trimmed name QA, got %q", name)
	}
	if !svc.IsKnown("QA") {
		t.Error("QA should be known after adding")
	}
	assertStages(t, svc.Provisional(), []string{"QA"})
}

func TestAddStage_Validation(t *testing.T) {
	svc := NewService(nil)

	for _, name := range []string{"", "   ", string(make([]byte, MaxNameLength+1))} {
		_, err := svc.AddStage(name)
		if !models.IsValidation(err) {
			t.Errorf("AddStage(%q): expected validation error, got %v", name, err)
		}
	}
	if len(svc.ListStages()) != 0 {
		t.Errorf("invalid names must not be added, got %v", svc.ListStages())
	}
}

func TestAddStage_Existing(t *testing.T) {
	svc := NewService([]string{"Design"})
	svc.Refresh(partnersIn("Pilot"))

	for _, name := range []string{"Design", "Pilot", " Pilot"} {
		if _, err := svc.AddStage(name); !errors.Is(err, ErrStageExists) {
			t.Errorf("AddStage(%q): expected ErrStageExists, got %v", name, err)
		}
	}
	assertStages(t, svc.ListStages(), []string{"Design", "Pilot"})
}

// ============================================================================
// RemoveStage
// ============================================================================

func TestRemoveStage_InUse(t *testing.T) {
	svc := NewService(models.DefaultStages())
	svc.Refresh(partnersIn("Testing", "Testing", "Design"))

	err := svc.RemoveStage("Testing")
	if !errors.Is(err, models.ErrStageInUse) {
		t.Fatalf("expected ErrStageInUse, got %v", err)
	}
	var inUse *models.StageInUseError
	if !errors.As(err, &inUse) || inUse.Members != 2 {
		t.Errorf("expected 2 members in error, got %v", err)
	}
	if !svc.IsKnown("Testing") {
		t.Error("stage in use must remain")
	}
}

func TestRemoveStage_EmptyStage(t *testing.T) {
	svc := NewService(models.DefaultStages())
	svc.Refresh(partnersIn("Testing"))

	if err := svc.RemoveStage("Development"); err != nil {
		t.Fatalf("RemoveStage(Development): %v", err)
	}
	assertStages(t, svc.ListStages(), []string{"Design", "Testing", "Completed"})

	if err := svc.RemoveStage("Development"); !errors.Is(err, ErrStageNotFound) {
		t.Errorf("second removal: expected ErrStageNotFound, got %v", err)
	}
}

func TestRemoveStage_SucceedsIffNoMembers(t *testing.T) {
	svc := NewService([]string{"A", "B"})
	svc.Refresh(partnersIn("A"))

	for _, name := range []string{"A", "B"} {
		err := svc.RemoveStage(name)
		inUse := errors.Is(err, models.ErrStageInUse)
		if inUse != (svc.Members(name) > 0) {
			t.Errorf("RemoveStage(%s): in-use=%v members=%d", name, inUse, svc.Members(name))
		}
	}
}

func TestRemoveStage_UntrimmedPartnerStage(t *testing.T) {
	svc := NewService(models.DefaultStages())
	svc.Refresh(partnersIn(" Design "))

	err := svc.RemoveStage(" Design ")
	var inUse *models.StageInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("expected StageInUseError, got %v", err)
	}
	if inUse.Stage != " Design " || inUse.Members != 1 {
		t.Errorf("got stage %q with %d members", inUse.Stage, inUse.Members)
	}
	if !svc.IsKnown("Design") {
		t.Error("the configured Design stage must not be removed")
	}
}

// ============================================================================
// Refresh
// ============================================================================

func TestRefresh_PromotesProvisionalStage(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.AddStage("Pilot"); err != nil {
		t.Fatalf("AddStage: %v", err)
	}
	assertStages(t, svc.Provisional(), []string{"Pilot"})

	svc.Refresh(partnersIn("Pilot"))
	if len(svc.Provisional()) != 0 {
		t.Errorf("Pilot should no longer be provisional, got %v", svc.Provisional())
	}
	assertStages(t, svc.Observed(), []string{"Pilot"})

	// partner leaves, the stage stays for this session
	svc.Refresh(nil)
	assertStages(t, svc.ListStages(), []string{"Pilot"})
}

func TestRefresh_DefaultStageRemovedThenObservedAgain(t *testing.T) {
	svc := NewService([]string{"Design", "Testing"})
	if err := svc.RemoveStage("Design"); err != nil {
		t.Fatalf("RemoveStage: %v", err)
	}
	assertStages(t, svc.ListStages(), []string{"Testing"})

	svc.Refresh(partnersIn("Design"))
	assertStages(t, svc.ListStages(), []string{"Design", "Testing"})
}
