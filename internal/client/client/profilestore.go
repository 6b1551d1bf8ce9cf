package client

import (
	"context"

	"github.com/dmitrijs2005/onboarding/internal/profile"
)

// ProfileAPI is the part of the server API that stores profiles.
type ProfileAPI interface {
	WriteProfile(ctx context.Context, uid string, fields map[string]any) error
	UpdateProfileField(ctx context.Context, uid, key string, value any) error
	ReadProfile(ctx context.Context, uid string) (map[string]any, error)
}

// ProfileStore is a profile.Store backed by the server.
type ProfileStore struct {
	api ProfileAPI
}

var _ profile.Store = (*ProfileStore)(nil)

func NewProfileStore(api ProfileAPI) *ProfileStore {
	return &ProfileStore{api: api}
}

func (s *ProfileStore) Write(ctx context.Context, uid string, fields profile.Fields) error {
	return s.api.WriteProfile(ctx, uid, fields)
}

func (s *ProfileStore) UpdateField(ctx context.Context, uid string, key string, value any) error {
	return s.api.UpdateProfileField(ctx, uid, key, value)
}

func (s *ProfileStore) Read(ctx context.Context, uid string) (profile.Fields, error) {
	fields, err := s.api.ReadProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	return profile.Fields(fields), nil
}
