package models

import (
	"time"

	"github.com/thenoetrevino/partners/internal/types"
)

// Partner is a design partner tracked through the pipeline.
// Stage holds the name of the stage the partner currently sits in.
type Partner struct {
	ID        types.PartnerID
	Name      string
	Email     string
	Stage     string
	CreatedAt time.Time // server assigned
}

// Clone returns a shallow copy so callers can mutate the stage without
// touching cached data.
func (p *Partner) Clone() *Partner {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// PartnerFields is the input for inserting a partner.
type PartnerFields struct {
	Name  string
	Email string
	Stage string
}

// PartnerPatch is a field-level update. Nil fields are left untouched.
type PartnerPatch struct {
	Name  *string
	Email *string
	Stage *string
}

// IsEmpty reports whether the patch changes nothing.
func (p PartnerPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Stage == nil
}

// StagePatch builds a patch that only moves the partner to stage.
func StagePatch(stage string) PartnerPatch {
	return PartnerPatch{Stage: &stage}
}
