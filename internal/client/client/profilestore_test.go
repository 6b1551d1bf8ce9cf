package client

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryAPI serves ProfileAPI from a profile.MemoryStore.
type memoryAPI struct {
	mem *profile.MemoryStore
}

func (m memoryAPI) WriteProfile(ctx context.Context, uid string, fields map[string]any) error {
	return m.mem.Write(ctx, uid, fields)
}
func (m memoryAPI) UpdateProfileField(ctx context.Context, uid, key string, value any) error {
	return m.mem.UpdateField(ctx, uid, key, value)
}
func (m memoryAPI) ReadProfile(ctx context.Context, uid string) (map[string]any, error) {
	return m.mem.Read(ctx, uid)
}

func TestProfileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(memoryAPI{mem: profile.NewMemoryStore()})

	_, err := s.Read(ctx, "u1")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, s.Write(ctx, "u1", profile.Fields{"email": "a@b.com", "fullname": "A", "hasSeenOnboarding": false}))
	require.NoError(t, s.UpdateField(ctx, "u1", "hasSeenOnboarding", true))

	got, err := s.Read(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, profile.Fields{"email": "a@b.com", "fullname": "A", "hasSeenOnboarding": true}, got)
}
