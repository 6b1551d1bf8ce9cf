package account

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/onboarding/internal/client/federated"
	"github.com/dmitrijs2005/onboarding/internal/profile"
)

var errBadCredentials = errors.New("invalid email or password")

type fakeProvider struct {
	mu        sync.Mutex
	passwords map[string]string // email -> password
	uids      map[string]string // email -> uid
	federated map[string]string // token -> uid
	session   string

	fedUser      *federated.User
	fedErr       error
	signOutErr   error
	resetErr     error
	resetEmails  []string
	exchangeCall int
	nextID       int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		passwords: map[string]string{},
		uids:      map[string]string{},
		federated: map[string]string{},
	}
}

func (p *fakeProvider) newUID() string {
	p.nextID++
	return "uid-" + string(rune('0'+p.nextID))
}

func (p *fakeProvider) CurrentSessionUID() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session, p.session != ""
}

func (p *fakeProvider) SignIn(_ context.Context, email, password string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pw, ok := p.passwords[email]; !ok || pw != password {
		return "", errBadCredentials
	}
	p.session = p.uids[email]
	return p.session, nil
}

func (p *fakeProvider) CreateAccount(_ context.Context, email, password string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.passwords[email]; ok {
		return "", errors.New("email already in use")
	}
	uid := p.newUID()
	p.passwords[email] = password
	p.uids[email] = uid
	p.session = uid
	return uid, nil
}

func (p *fakeProvider) FederatedSignIn(context.Context, federated.Presenter) (*federated.User, error) {
	return p.fedUser, p.fedErr
}

func (p *fakeProvider) ExchangeFederatedToken(_ context.Context, token string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exchangeCall++
	if token == "rejected" {
		return "", errors.New("token rejected")
	}
	uid, ok := p.federated[token]
	if !ok {
		uid = p.newUID()
		p.federated[token] = uid
	}
	p.session = uid
	return uid, nil
}

func (p *fakeProvider) SignOut(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.signOutErr != nil {
		return p.signOutErr
	}
	p.session = ""
	return nil
}

func (p *fakeProvider) SendPasswordReset(_ context.Context, email string) error {
	p.resetEmails = append(p.resetEmails, email)
	return p.resetErr
}

// countingStore records every call that reaches the backend.
type countingStore struct {
	profile.Store
	reads, writes, updates int
	readErr                error
}

func (s *countingStore) Write(ctx context.Context, uid string, f profile.Fields) error {
	s.writes++
	return s.Store.Write(ctx, uid, f)
}

func (s *countingStore) UpdateField(ctx context.Context, uid, key string, v any) error {
	s.updates++
	return s.Store.UpdateField(ctx, uid, key, v)
}

func (s *countingStore) Read(ctx context.Context, uid string) (profile.Fields, error) {
	s.reads++
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.Store.Read(ctx, uid)
}

func (s *countingStore) calls() int {
	return s.reads + s.writes + s.updates
}
