package partner

import (
	"strings"
	"testing"

	"github.com/thenoetrevino/partners/internal/models"
)

type knownStages []string

func (k knownStages) IsKnown(name string) bool {
	for _, s := range k {
		if s == name {
			return true
		}
	}
	return false
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ana@acme.io", true},
		{"  ana@acme.io  ", true},
		{"first.last@sub.example.com", true},
		{"a@b.c", true},
		{"", false},
		{"ana", false},
		{"@acme.io", false},
		{"ana@", false},
		{"ana@acme", false},
		{"ana@.acme", false},
		{"ana@acme.", false},
		{"ana@b@acme.io", false},
		{"ana smith@acme.io", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.email, err)
			}
			if !tt.valid && !models.IsValidation(err) {
				t.Errorf("expected validation error for %q, got %v", tt.email, err)
			}
		})
	}
}

func TestValidateFields_JoinsPerField(t *testing.T) {
	err := ValidateFields(models.PartnerFields{Name: "  ", Email: "nope", Stage: "Limbo"}, knownStages{"Design"})

	fields := models.FieldErrors(err)
	for _, f := range []string{"name", "email", "stage"} {
		if fields[f] == "" {
			t.Errorf("expected an error for %s, got %v", f, fields)
		}
	}
	if !strings.Contains(fields["stage"], "Limbo") {
		t.Errorf("stage error should name the stage, got %q", fields["stage"])
	}
}

func TestValidateFields_Valid(t *testing.T) {
	err := ValidateFields(models.PartnerFields{Name: "Acme", Email: "a@acme.io", Stage: "Design"}, knownStages{"Design"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateName_TooLong(t *testing.T) {
	if err := ValidateName(strings.Repeat("x", MaxNameLength+1)); !models.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestValidatePatch_OnlyPresentFields(t *testing.T) {
	bad := "bad"
	if err := ValidatePatch(models.PartnerPatch{Email: &bad}, knownStages{}); models.FieldErrors(err)["email"] == "" {
		t.Errorf("expected email error, got %v", err)
	}
	if err := ValidatePatch(models.PartnerPatch{}, knownStages{}); err != nil {
		t.Errorf("empty patch has nothing to validate, got %v", err)
	}
}
