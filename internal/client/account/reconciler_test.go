package account

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/dmitrijs2005/onboarding/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSession string

func (s staticSession) CurrentSessionUID() (string, bool) {
	return string(s), s != ""
}

func TestFetchCurrentUser_NoSession(t *testing.T) {
	store := &countingStore{Store: profile.NewMemoryStore()}
	r := NewReconciler(store, staticSession(""), logging.Nop{})

	_, err := r.FetchCurrentUser(context.Background())

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "no user currently logged in", se.Message)
	assert.NotErrorIs(t, err, ErrDecoding)
	assert.Zero(t, store.calls())
}

func TestFetchCurrentUser_MalformedRecord(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		fields profile.Fields
	}{
		{name: "missing fullname", fields: profile.Fields{"email": "a@b.com"}},
		{name: "missing email", fields: profile.Fields{"fullname": "A"}},
		{name: "bad flag", fields: profile.Fields{"email": "a@b.com", "fullname": "A", "hasSeenOnboarding": "no"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := profile.NewMemoryStore()
			require.NoError(t, mem.Write(ctx, "u1", tt.fields))
			r := NewReconciler(mem, staticSession("u1"), logging.Nop{})

			_, err := r.FetchCurrentUser(ctx)
			assert.ErrorIs(t, err, ErrDecoding)
			assert.False(t, IsServerError(err))
		})
	}
}

func TestFetchCurrentUser_MissingRecordIsDecodingError(t *testing.T) {
	r := NewReconciler(profile.NewMemoryStore(), staticSession("u1"), logging.Nop{})

	_, err := r.FetchCurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrDecoding)
}

func TestFetchCurrentUser_CorruptRecordIsDecodingError(t *testing.T) {
	store := &countingStore{
		Store:   profile.NewMemoryStore(),
		readErr: fmt.Errorf("decode profile: %w", common.ErrorCorruptRecord),
	}
	r := NewReconciler(store, staticSession("u1"), logging.Nop{})

	_, err := r.FetchCurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrDecoding)
	assert.False(t, IsServerError(err))
}

func TestFetchCurrentUser_StoreFailureIsServerError(t *testing.T) {
	store := &countingStore{Store: profile.NewMemoryStore(), readErr: errors.New("unavailable")}
	r := NewReconciler(store, staticSession("u1"), logging.Nop{})

	_, err := r.FetchCurrentUser(context.Background())
	assert.True(t, IsServerError(err))
	assert.NotErrorIs(t, err, ErrDecoding)
}

func TestCreateProfile_ReadsBackStoredValue(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: profile.NewMemoryStore()}
	r := NewReconciler(store, staticSession("u1"), logging.Nop{})

	u, err := r.CreateProfile(ctx, "u1", "a@b.com", "A B")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UID)
	assert.Equal(t, 1, store.writes)
	assert.Equal(t, 1, store.reads)
}

func TestReconcileFederatedIdentity(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(profile.NewMemoryStore(), staticSession("u1"), logging.Nop{})

	created, err := r.ReconcileFederatedIdentity(ctx, "u1", "a@b.com", "A B")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", created.Email)
	assert.Equal(t, "A B", created.Fullname)
	assert.False(t, created.HasSeenOnboarding)

	again, err := r.ReconcileFederatedIdentity(ctx, "u1", "other@b.com", "Other")
	require.NoError(t, err)
	assert.Equal(t, created, again)
}

// A transient read failure is treated like a missing profile, so the record
// is rewritten from federated data.
func TestReconcileFederatedIdentity_FetchFailureOverwrites(t *testing.T) {
	ctx := context.Background()
	mem := profile.NewMemoryStore()
	require.NoError(t, mem.Write(ctx, "u1", profile.Fields{"email": "a@b.com", "fullname": "A B", "hasSeenOnboarding": true}))

	store := &flakyStore{Store: mem, failReads: 1}
	r := NewReconciler(store, staticSession("u1"), logging.Nop{})

	u, err := r.ReconcileFederatedIdentity(ctx, "u1", "new@b.com", "New")
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", u.Email)
	assert.False(t, u.HasSeenOnboarding)
}

func TestMarkOnboardingSeen_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: profile.NewMemoryStore()}
	r := NewReconciler(store, staticSession("u1"), logging.Nop{})
	_, err := r.CreateProfile(ctx, "u1", "a@b.com", "A B")
	require.NoError(t, err)

	first, err := r.MarkOnboardingSeen(ctx)
	require.NoError(t, err)
	assert.True(t, first.HasSeenOnboarding)

	second, err := r.MarkOnboardingSeen(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, store.updates)
}

func TestMarkOnboardingSeen_NoSession(t *testing.T) {
	store := &countingStore{Store: profile.NewMemoryStore()}
	r := NewReconciler(store, staticSession(""), logging.Nop{})

	_, err := r.MarkOnboardingSeen(context.Background())
	assert.True(t, IsServerError(err))
	assert.Zero(t, store.calls())
}

type flakyStore struct {
	profile.Store
	failReads int
}

func (s *flakyStore) Read(ctx context.Context, uid string) (profile.Fields, error) {
	if s.failReads > 0 {
		s.failReads--
		return nil, errors.New("connection reset")
	}
	return s.Store.Read(ctx, uid)
}
