package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/profile"
	"github.com/dmitrijs2005/onboarding/internal/server/accounts"
	"github.com/dmitrijs2005/onboarding/internal/server/auth"
)

const testSecret = "test-secret"

// fakeAccounts hands out real JWTs so the interceptor can be exercised
// end to end; everything else is canned.
type fakeAccounts struct {
	mu sync.Mutex

	signInErr    error
	createErr    error
	exchangeErr  error
	signOutErr   error
	resetErr     error
	confirmErr   error
	refreshCalls int
	signedOut    []string
	lastProvider string
	lastIDToken  string
	resetEmail   string
	confirmed    [2]string
}

func (f *fakeAccounts) session(uid string, validity time.Duration) (*accounts.Session, error) {
	access, err := auth.GenerateToken(uid, []byte(testSecret), validity)
	if err != nil {
		return nil, err
	}
	return &accounts.Session{UID: uid, AccessToken: access, RefreshToken: "refresh-" + uid}, nil
}

func (f *fakeAccounts) SignIn(ctx context.Context, email, password string) (*accounts.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session("uid-"+email, time.Hour)
}

func (f *fakeAccounts) CreateAccount(ctx context.Context, email, password string) (*accounts.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.session("uid-"+email, time.Hour)
}

func (f *fakeAccounts) ExchangeFederatedToken(ctx context.Context, provider, idToken string) (*accounts.Session, error) {
	f.mu.Lock()
	f.lastProvider, f.lastIDToken = provider, idToken
	f.mu.Unlock()
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.session("uid-fed", time.Hour)
}

func (f *fakeAccounts) RefreshToken(ctx context.Context, refreshToken string) (*accounts.Session, error) {
	f.mu.Lock()
	f.refreshCalls++
	f.mu.Unlock()
	if len(refreshToken) <= len("refresh-") {
		return nil, common.ErrInvalidToken
	}
	return f.session(refreshToken[len("refresh-"):], time.Hour)
}

func (f *fakeAccounts) SignOut(ctx context.Context, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = append(f.signedOut, refreshToken)
	return f.signOutErr
}

func (f *fakeAccounts) SendPasswordReset(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetEmail = email
	return f.resetErr
}

func (f *fakeAccounts) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = [2]string{token, password}
	return f.confirmErr
}

// brokenStore serves canned reads over an in-memory store.
type brokenStore struct {
	profile.Store
	fields  profile.Fields
	readErr error
}

func (b *brokenStore) Read(ctx context.Context, uid string) (profile.Fields, error) {
	if b.readErr != nil || b.fields != nil {
		return b.fields, b.readErr
	}
	return b.Store.Read(ctx, uid)
}
