// Package session holds the client's current authenticated session.
//
// There is exactly one Holder per client process. The identity provider
// adapter owns it and is the only writer; everything else reads through it.
package session

import "sync"

// Session is what the server hands back after a successful sign-in.
type Session struct {
	UID          string
	AccessToken  string
	RefreshToken string
}

type Holder struct {
	mu       sync.RWMutex
	current  Session
	active   bool
	onChange func(Session, bool)
}

func NewHolder() *Holder {
	return &Holder{}
}

// OnChange registers fn to be called after every change, outside the lock,
// with the new session and whether it is active. Only one observer is kept.
func (h *Holder) OnChange(fn func(Session, bool)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = fn
}

func notify(s Session, active bool, fn func(Session, bool)) {
	if fn != nil {
		fn(s, active)
	}
}

// Set replaces the current session.
func (h *Holder) Set(s Session) {
	h.mu.Lock()
	h.current = s
	h.active = s.UID != ""
	cur, active, fn := h.current, h.active, h.onChange
	h.mu.Unlock()

	notify(cur, active, fn)
}

// UpdateTokens swaps the token pair after a refresh, keeping the uid.
// It is a no-op when no session is active.
func (h *Holder) UpdateTokens(access, refresh string) {
	h.mu.Lock()
	if !h.active {
		h.mu.Unlock()
		return
	}
	h.current.AccessToken = access
	h.current.RefreshToken = refresh
	cur, fn := h.current, h.onChange
	h.mu.Unlock()

	notify(cur, true, fn)
}

func (h *Holder) Clear() {
	h.mu.Lock()
	h.current = Session{}
	h.active = false
	fn := h.onChange
	h.mu.Unlock()

	notify(Session{}, false, fn)
}

// Current returns a copy of the session and whether one is active.
func (h *Holder) Current() (Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, h.active
}

func (h *Holder) UID() (string, bool) {
	s, ok := h.Current()
	return s.UID, ok
}
