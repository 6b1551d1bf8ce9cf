package profiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/dmitrijs2005/onboarding/internal/profile"
	"github.com/dmitrijs2005/onboarding/internal/server/events"
)

// Service guards a profile.Store so a caller can only touch the record keyed
// by its own uid.
type Service struct {
	store  profile.Store
	events events.Publisher
	logger logging.Logger
}

func NewService(store profile.Store, publisher events.Publisher, logger logging.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{store: store, events: publisher, logger: logger.With("module", "profiles")}
}

func authorize(caller, uid string) error {
	if uid == "" {
		return fmt.Errorf("%w: uid is required", common.ErrorValidation)
	}
	if caller != uid {
		return common.ErrorPermissionDenied
	}
	return nil
}

func (s *Service) Write(ctx context.Context, caller, uid string, fields profile.Fields) error {
	if err := authorize(caller, uid); err != nil {
		return err
	}
	if err := s.store.Write(ctx, uid, fields); err != nil {
		return err
	}
	s.publish(ctx, events.New(events.ProfileWritten, uid, nil))
	return nil
}

func (s *Service) UpdateField(ctx context.Context, caller, uid, key string, value any) error {
	if err := authorize(caller, uid); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%w: field key is required", common.ErrorValidation)
	}
	if err := s.store.UpdateField(ctx, uid, key, value); err != nil {
		return err
	}
	s.publish(ctx, events.New(events.ProfileFieldUpdated, uid, map[string]any{"key": key, "value": value}))
	return nil
}

func (s *Service) Read(ctx context.Context, caller, uid string) (profile.Fields, error) {
	if err := authorize(caller, uid); err != nil {
		return nil, err
	}
	return s.store.Read(ctx, uid)
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn(ctx, "event publish failed", "type", e.Type, "error", err)
	}
}
