package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/domain/events"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/logger"
	"github.com/hubverse/hub-services/internal/pkg/strutil"
)

const (
	fallbackSlug    = "business"
	maxSlugLength   = 120
	slugCreateTries = 3
)

// businessService implements the BusinessService interface
type businessService struct {
	businessRepo businesses.BusinessRepository
	publisher    events.Publisher
	logger       logger.Logger
}

// NewBusinessService creates a new instance of BusinessService
func NewBusinessService(businessRepo businesses.BusinessRepository, publisher events.Publisher, logger logger.Logger) (businesses.BusinessService, error) {
	if publisher == nil {
		return nil, errNilPublisher
	}
	return &businessService{
		businessRepo: businessRepo,
		publisher:    publisher,
		logger:       logger,
	}, nil
}

// Create derives a slug from the name. Taken slugs get -2, -3 and so on appended.
func (s *businessService) Create(ctx context.Context, caller auth.Principal, input *businesses.BusinessInput) (*businesses.Business, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	base := baseSlug(input.Name)
	now := time.Now().UTC()
	business := &businesses.Business{
		ID:              uuid.NewString(),
		OwnerID:         caller.UserID,
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Website:         input.Website,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}

	for attempt := 1; ; attempt++ {
		taken, err := s.businessRepo.SlugsWithPrefix(ctx, base)
		if err != nil {
			return nil, err
		}
		business.Slug = nextSlug(base, taken)

		err = s.businessRepo.Create(ctx, business)
		if err == nil {
			return business, nil
		}
		// A concurrent create took the slug between the lookup and the insert.
		if !errors.Is(err, apperr.ErrConflict) || attempt == slugCreateTries {
			return nil, err
		}
	}
}

func baseSlug(name string) string {
	slug := strutil.Slugify(name)
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// nextSlug returns base, or base-N with the smallest N >= 2 not in taken.
func nextSlug(base string, taken []string) string {
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		used[t] = true
	}
	if !used[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !used[candidate] {
			return candidate
		}
	}
}

func (s *businessService) List(ctx context.Context, query *businesses.BusinessQuery) ([]*businesses.Business, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.businessRepo.List(ctx, query)
}

func (s *businessService) Get(ctx context.Context, idOrSlug string) (*businesses.Business, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return s.businessRepo.GetByID(ctx, idOrSlug)
	}
	return s.businessRepo.GetBySlug(ctx, strings.ToLower(idOrSlug))
}

func (s *businessService) Update(ctx context.Context, caller auth.Principal, businessID string, update *businesses.BusinessUpdate) (*businesses.Business, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	business, err := s.ownedBusiness(ctx, caller, businessID)
	if err != nil {
		return nil, err
	}

	update.Apply(business)
	business.DateTimeUpdated = time.Now().UTC()

	if err := s.businessRepo.UpdateByID(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

func (s *businessService) DeleteByID(ctx context.Context, caller auth.Principal, businessID string) error {
	if _, err := s.ownedBusiness(ctx, caller, businessID); err != nil {
		return err
	}
	return s.businessRepo.DeleteByID(ctx, businessID)
}

func (s *businessService) Verify(ctx context.Context, caller auth.Principal, businessID string) (*businesses.Business, error) {
	if !caller.IsAdmin() {
		return nil, apperr.Forbidden("only admins may verify businesses")
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.Verified {
		return business, nil
	}

	now := time.Now().UTC()
	verified, err := s.businessRepo.MarkVerified(ctx, businessID, now)
	if err != nil {
		return nil, err
	}
	if !verified {
		return s.businessRepo.GetByID(ctx, businessID)
	}
	business.Verified = true
	business.DateTimeUpdated = now

	publish(ctx, s.publisher, s.logger, events.New(events.BusinessVerified, business.ID, caller.UserID, map[string]interface{}{
		"slug":     business.Slug,
		"owner_id": business.OwnerID,
	}))
	return business, nil
}

func (s *businessService) ownedBusiness(ctx context.Context, caller auth.Principal, businessID string) (*businesses.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(business.OwnerID) {
		return nil, apperr.Forbidden("business %s belongs to another user", businessID)
	}
	return business, nil
}

// activityService implements the ActivityService interface
type activityService struct {
	activityRepo businesses.ActivityRepository
	logger       logger.Logger
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(activityRepo businesses.ActivityRepository, logger logger.Logger) (businesses.ActivityService, error) {
	return &activityService{
		activityRepo: activityRepo,
		logger:       logger,
	}, nil
}

// Record stores event as an activity. Events that can never be stored are logged
// and skipped so the consumer does not redeliver them forever.
func (s *activityService) Record(ctx context.Context, event *events.Event) error {
	var payload string
	if len(event.Payload) > 0 {
		raw, err := json.Marshal(event.Payload)
		if err != nil {
			s.logger.Warn("Skipping event ", event.ID, " with unencodable payload: ", err)
			return nil
		}
		payload = string(raw)
	}

	occurred := event.OccurredAt.UTC()
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	activity := &businesses.Activity{
		ID:               uuid.NewString(),
		EventID:          event.ID,
		Type:             event.Type,
		Source:           event.Source,
		SubjectID:        event.SubjectID,
		ActorID:          event.ActorID,
		Payload:          payload,
		DateTimeOccurred: occurred,
		DateTimeRecorded: time.Now().UTC(),
	}

	created, err := s.activityRepo.Create(ctx, activity)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidInput) {
			s.logger.Warn("Skipping invalid event ", event.ID, ": ", err)
			return nil
		}
		return fmt.Errorf("record event %s: %w", event.ID, err)
	}
	if !created {
		s.logger.Debug("Event ", event.ID, " already recorded")
	}
	return nil
}

func (s *activityService) List(ctx context.Context, query *businesses.ActivityQuery) ([]*businesses.Activity, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.activityRepo.List(ctx, query)
}

func (s *activityService) Stats(ctx context.Context) ([]*businesses.ActivityStat, error) {
	return s.activityRepo.CountByType(ctx)
}
