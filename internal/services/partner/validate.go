package partner

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/partners/internal/models"
)

// StageChecker reports whether a stage name may be assigned.
type StageChecker interface {
	IsKnown(name string) bool
}

// ValidateName checks a trimmed partner name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("name", "name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return models.NewValidationError("name", fmt.Sprintf("name cannot exceed %d characters", MaxNameLength))
	}
	return nil
}

// ValidateEmail checks the local@domain shape: one @, a non-empty local
// part, and a domain with a dot that is neither first nor last.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.NewValidationError("email", "email is required")
	}
	if strings.ContainsAny(email, " \t") {
		return models.NewValidationError("email", "email cannot contain spaces")
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return models.NewValidationError("email", "email must look like name@domain.tld")
	}
	dot := strings.Index(domain, ".")
	if dot <= 0 || strings.HasSuffix(domain, ".") {
		return models.NewValidationError("email", "email must look like name@domain.tld")
	}
	return nil
}

// ValidateStage checks that stage is a known stage name.
func ValidateStage(stage string, stages StageChecker) error {
	if strings.TrimSpace(stage) == "" {
		return models.NewValidationError("stage", "stage is required")
	}
	if stages != nil && !stages.IsKnown(stage) {
		return models.NewValidationError("stage", fmt.Sprintf("unknown stage %q", stage))
	}
	return nil
}

// ValidateFields checks every field and joins the failures.
func ValidateFields(f models.PartnerFields, stages StageChecker) error {
	return errors.Join(
		ValidateName(f.Name),
		ValidateEmail(f.Email),
		ValidateStage(f.Stage, stages),
	)
}

// ValidatePatch checks only the fields present in the patch.
func ValidatePatch(p models.PartnerPatch, stages StageChecker) error {
	var errs []error
	if p.Name != nil {
		errs = append(errs, ValidateName(*p.Name))
	}
	if p.Email != nil {
		errs = append(errs, ValidateEmail(*p.Email))
	}
	if p.Stage != nil {
		errs = append(errs, ValidateStage(*p.Stage, stages))
	}
	return errors.Join(errs...)
}

// normalize trims the free-text fields.
func normalize(f models.PartnerFields) models.PartnerFields {
	return models.PartnerFields{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Stage: f.Stage,
	}
}

func normalizePatch(p models.PartnerPatch) models.PartnerPatch {
	out := p
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		out.Name = &v
	}
	if p.Email != nil {
		v := strings.TrimSpace(*p.Email)
		out.Email = &v
	}
	return out
}
