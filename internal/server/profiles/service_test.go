package profiles

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/dmitrijs2005/onboarding/internal/profile"
	"github.com/dmitrijs2005/onboarding/internal/server/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu   sync.Mutex
	sent []events.Event
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, e := range p.sent {
		out = append(out, e.Type)
	}
	return out
}

func TestService_OwnRecord(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(profile.NewMemoryStore(), pub, logging.Nop{})
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "u1", "u1", profile.Fields{"email": "a@example.com", "hasSeenOnboarding": false}))
	require.NoError(t, svc.UpdateField(ctx, "u1", "u1", "hasSeenOnboarding", true))

	got, err := svc.Read(ctx, "u1", "u1")
	require.NoError(t, err)
	assert.Equal(t, true, got["hasSeenOnboarding"])
	assert.Equal(t, []string{events.ProfileWritten, events.ProfileFieldUpdated}, pub.types())
}

func TestService_OtherUsersRecordDenied(t *testing.T) {
	store := profile.NewMemoryStore()
	svc := NewService(store, nil, logging.Nop{})
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, "victim", profile.Fields{"email": "v@example.com"}))

	assert.ErrorIs(t, svc.Write(ctx, "attacker", "victim", profile.Fields{}), common.ErrorPermissionDenied)
	assert.ErrorIs(t, svc.UpdateField(ctx, "attacker", "victim", "email", "x"), common.ErrorPermissionDenied)
	_, err := svc.Read(ctx, "attacker", "victim")
	assert.ErrorIs(t, err, common.ErrorPermissionDenied)

	got, err := store.Read(ctx, "victim")
	require.NoError(t, err)
	assert.Equal(t, "v@example.com", got["email"])
}

func TestService_Validation(t *testing.T) {
	svc := NewService(profile.NewMemoryStore(), nil, logging.Nop{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.Write(ctx, "", "", profile.Fields{}), common.ErrorValidation)
	assert.ErrorIs(t, svc.UpdateField(ctx, "u1", "u1", "", true), common.ErrorValidation)
}

func TestService_ReadMissingPassesNotFound(t *testing.T) {
	svc := NewService(profile.NewMemoryStore(), nil, logging.Nop{})

	_, err := svc.Read(context.Background(), "u1", "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestService_PublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewService(profile.NewMemoryStore(), pub, logging.Nop{})

	require.NoError(t, svc.Write(context.Background(), "u1", "u1", profile.Fields{}))
	assert.Len(t, pub.types(), 1)
}
