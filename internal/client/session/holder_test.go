package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHolder_Lifecycle(t *testing.T) {
	h := NewHolder()

	_, ok := h.UID()
	assert.False(t, ok)

	h.Set(Session{UID: "u-1", AccessToken: "a1", RefreshToken: "r1"})
	uid, ok := h.UID()
	assert.True(t, ok)
	assert.Equal(t, "u-1", uid)

	h.UpdateTokens("a2", "r2")
	s, _ := h.Current()
	assert.Equal(t, Session{UID: "u-1", AccessToken: "a2", RefreshToken: "r2"}, s)

	h.Clear()
	_, ok = h.Current()
	assert.False(t, ok)
}

func TestHolder_EmptyUIDIsNotASession(t *testing.T) {
	h := NewHolder()
	h.Set(Session{AccessToken: "a"})

	_, ok := h.Current()
	assert.False(t, ok)
}

func TestHolder_UpdateTokensWithoutSession(t *testing.T) {
	h := NewHolder()
	h.UpdateTokens("a", "r")

	s, ok := h.Current()
	assert.False(t, ok)
	assert.Empty(t, s.AccessToken)
}

func TestHolder_ConcurrentAccess(t *testing.T) {
	h := NewHolder()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.Set(Session{UID: "u", AccessToken: "a"})
		}()
		go func() {
			defer wg.Done()
			_, _ = h.UID()
		}()
	}
	wg.Wait()

	uid, ok := h.UID()
	assert.True(t, ok)
	assert.Equal(t, "u", uid)
}

func TestHolder_OnChange(t *testing.T) {
	h := NewHolder()

	type change struct {
		s      Session
		active bool
	}
	var got []change
	h.OnChange(func(s Session, active bool) { got = append(got, change{s, active}) })

	h.UpdateTokens("ignored", "ignored")
	h.Set(Session{UID: "u-1", AccessToken: "a1", RefreshToken: "r1"})
	h.UpdateTokens("a2", "r2")
	h.Clear()

	assert.Equal(t, []change{
		{Session{UID: "u-1", AccessToken: "a1", RefreshToken: "r1"}, true},
		{Session{UID: "u-1", AccessToken: "a2", RefreshToken: "r2"}, true},
		{Session{}, false},
	}, got)
}

func TestHolder_OnChangeMayReadHolder(t *testing.T) {
	h := NewHolder()
	var seen string
	h.OnChange(func(Session, bool) { seen, _ = h.UID() })

	h.Set(Session{UID: "u-2"})
	assert.Equal(t, "u-2", seen)
}
