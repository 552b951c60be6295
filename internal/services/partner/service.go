package partner

import (
	"context"
	"log/slog"

	"github.com/thenoetrevino/partners/internal/database"
	"github.com/thenoetrevino/partners/internal/events"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/pipeline"
	"github.com/thenoetrevino/partners/internal/querycache"
	"github.com/thenoetrevino/partners/internal/services/stage"
	"github.com/thenoetrevino/partners/internal/types"
)

// Service defines all partner-related business operations
type Service interface {
	// Read operations
	ListPartners(ctx context.Context) ([]*models.Partner, error)
	GetPartner(ctx context.Context, id types.PartnerID) (*models.Partner, error)

	// Write operations
	CreatePartner(ctx context.Context, req CreatePartnerRequest) (*models.Partner, error)
	UpdatePartner(ctx context.Context, id types.PartnerID, req UpdatePartnerRequest) (*models.Partner, error)
	UpdateStage(ctx context.Context, id types.PartnerID, stage string) (*models.Partner, error)
	DeletePartner(ctx context.Context, id types.PartnerID) error

	// Validate runs the form checks without touching the store
	Validate(req CreatePartnerRequest) error
}

// CreatePartnerRequest encapsulates data for creating a partner
type CreatePartnerRequest struct {
	Name  string
	Email string
	Stage string
}

func (r CreatePartnerRequest) fields() models.PartnerFields {
	return models.PartnerFields{Name: r.Name, Email: r.Email, Stage: r.Stage}
}

// UpdatePartnerRequest encapsulates a partial update. Nil fields are kept.
type UpdatePartnerRequest struct {
	Name  *string
	Email *string
	Stage *string
}

func (r UpdatePartnerRequest) patch() models.PartnerPatch {
	return models.PartnerPatch{Name: r.Name, Email: r.Email, Stage: r.Stage}
}

// service implements Service on top of a record store and the query cache
type service struct {
	store       database.PartnerStore
	cache       *querycache.Cache
	stages      stage.Service
	eventClient events.EventPublisher
}

// NewService creates a new partner service. eventClient may be nil.
func NewService(store database.PartnerStore, cache *querycache.Cache, stages stage.Service, eventClient events.EventPublisher) Service {
	return &service{
		store:       store,
		cache:       cache,
		stages:      stages,
		eventClient: eventClient,
	}
}

// ListPartners returns the partner collection, from the cache when fresh.
// Every fetch refreshes the stage registry.
func (s *service) ListPartners(ctx context.Context) ([]*models.Partner, error) {
	return querycache.Query(ctx, s.cache, querycache.PartnersKey, func(ctx context.Context) ([]*models.Partner, error) {
		partners, err := s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		s.stages.Refresh(partners)
		if lost := pipeline.Unassigned(partners, s.stages.ListStages()); len(lost) > 0 {
			ids := make([]int64, len(lost))
			for i, p := range lost {
				ids[i] = p.ID.ToInt64()
			}
			slog.Warn("partners with unknown stage left out of stage counts", "count", len(lost), "ids", ids)
		}
		return partners, nil
	})
}

// GetPartner returns one partner
func (s *service) GetPartner(ctx context.Context, id types.PartnerID) (*models.Partner, error) {
	if !id.Valid() {
		return nil, ErrInvalidPartnerID
	}
	return querycache.Query(ctx, s.cache, querycache.PartnerKey(id), func(ctx context.Context) (*models.Partner, error) {
		return s.store.Get(ctx, id)
	})
}

// Validate checks a create request
func (s *service) Validate(req CreatePartnerRequest) error {
	return ValidateFields(req.fields(), s.stages)
}

// CreatePartner validates and inserts a partner
func (s *service) CreatePartner(ctx context.Context, req CreatePartnerRequest) (*models.Partner, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	p, err := s.store.Insert(ctx, normalize(req.fields()))
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, p.ID)
	return p, nil
}

// UpdatePartner validates the present fields and patches the partner
func (s *service) UpdatePartner(ctx context.Context, id types.PartnerID, req UpdatePartnerRequest) (*models.Partner, error) {
	if !id.Valid() {
		return nil, ErrInvalidPartnerID
	}
	patch := req.patch()
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if err := ValidatePatch(patch, s.stages); err != nil {
		return nil, err
	}

	p, err := s.store.Update(ctx, id, normalizePatch(patch))
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, id)
	return p, nil
}

// UpdateStage moves a partner to stage. The board calls this once per
// cross-column drop.
func (s *service) UpdateStage(ctx context.Context, id types.PartnerID, stage string) (*models.Partner, error) {
	if !id.Valid() {
		return nil, ErrInvalidPartnerID
	}
	if err := ValidateStage(stage, s.stages); err != nil {
		return nil, err
	}

	p, err := s.store.Update(ctx, id, models.StagePatch(stage))
	if err != nil {
		// the optimistic layout is reverted from fresh data
		s.cache.Invalidate(querycache.PartnersKey)
		return nil, err
	}

	s.afterMutation(ctx, id)
	return p, nil
}

// DeletePartner removes a partner
func (s *service) DeletePartner(ctx context.Context, id types.PartnerID) error {
	if !id.Valid() {
		return ErrInvalidPartnerID
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, id)
	return nil
}

// afterMutation invalidates the partner queries and tells other clients.
func (s *service) afterMutation(ctx context.Context, id types.PartnerID) {
	s.cache.Invalidate(querycache.PartnersKey)
	s.publishPartnerEvent(ctx, id)
}

// publishPartnerEvent publishes a change event if an event client exists.
// Failures only cost other clients a live refresh.
func (s *service) publishPartnerEvent(ctx context.Context, id types.PartnerID) {
	if s.eventClient == nil {
		return
	}
	_ = events.PublishPartnerChange(ctx, s.eventClient, id.ToInt64(), events.DefaultBackoff)
}
