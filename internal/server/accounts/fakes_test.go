package accounts

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/dbx"
	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/dmitrijs2005/onboarding/internal/server/config"
	"github.com/dmitrijs2005/onboarding/internal/server/events"
	"github.com/dmitrijs2005/onboarding/internal/server/federation"
	"github.com/dmitrijs2005/onboarding/internal/server/models"
	accountsrepo "github.com/dmitrijs2005/onboarding/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/onboarding/internal/server/repositories/identities"
	"github.com/dmitrijs2005/onboarding/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/onboarding/internal/server/resettokens"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAccounts struct {
	mu      sync.Mutex
	byID    map[string]*models.Account
	getErr  error
	created int
}

func (f *fakeAccounts) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == a.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	cp := *a
	f.byID[a.ID] = &cp
	f.created++
	return a, nil
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAccounts) GetByID(ctx context.Context, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) UpdatePasswordHash(ctx context.Context, id string, hash []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.PasswordHash = hash
	return nil
}

type fakeIdentities struct {
	mu sync.Mutex
	m  map[string]*models.FederatedIdentity
}

func (f *fakeIdentities) Find(ctx context.Context, provider, subject string) (*models.FederatedIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fi, ok := f.m[provider+"|"+subject]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return fi, nil
}

func (f *fakeIdentities) Create(ctx context.Context, fi *models.FederatedIdentity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[fi.Provider+"|"+fi.Subject] = fi
	return nil
}

type fakeRefresh struct {
	mu        sync.Mutex
	m         map[string]*models.RefreshToken
	createErr error
}

func (f *fakeRefresh) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.m[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefresh) Consume(ctx context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rt, ok := f.m[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.m, token)
	return rt, nil
}

func (f *fakeRefresh) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, token)
	return nil
}

func (f *fakeRefresh) DeleteByUser(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, v := range f.m {
		if v.UserID == userID {
			delete(f.m, k)
		}
	}
	return nil
}

func (f *fakeRefresh) countFor(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.m {
		if v.UserID == userID {
			n++
		}
	}
	return n
}

type fakeManager struct {
	accounts   *fakeAccounts
	identities *fakeIdentities
	refresh    *fakeRefresh
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeManager) Accounts(dbx.DBTX) accountsrepo.Repository       { return m.accounts }
func (m *fakeManager) Identities(dbx.DBTX) identities.Repository       { return m.identities }
func (m *fakeManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.refresh }

type fakeVerifier struct {
	name   string
	claims *federation.Claims
	err    error
}

func (v *fakeVerifier) Name() string { return v.name }

func (v *fakeVerifier) Verify(ctx context.Context, raw string) (*federation.Claims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	to   string
	link string
	sent int
	err  error
}

func (m *fakeMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.to, m.link = to, link
	m.sent++
	return nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, e)
	return nil
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

type harness struct {
	svc      *Service
	mock     sqlmock.Sqlmock
	repos    *fakeManager
	verifier *fakeVerifier
	mail     *fakeMailer
	events   *recordingPublisher
	cfg      *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.MaxLoginAttempts = 3

	h := &harness{
		mock: mock,
		repos: &fakeManager{
			accounts:   &fakeAccounts{byID: map[string]*models.Account{}},
			identities: &fakeIdentities{m: map[string]*models.FederatedIdentity{}},
			refresh:    &fakeRefresh{m: map[string]*models.RefreshToken{}},
		},
		verifier: &fakeVerifier{name: "google"},
		mail:     &fakeMailer{},
		events:   &recordingPublisher{},
		cfg:      cfg,
	}

	h.svc = NewService(Deps{
		DB:          db,
		Repos:       h.repos,
		Verifiers:   federation.NewRegistry(h.verifier),
		Mailer:      h.mail,
		ResetTokens: resettokens.NewMemoryStore(),
		Events:      h.events,
		Logger:      logging.Nop{},
	}, cfg)
	h.svc.bcryptCost = bcrypt.MinCost
	return h
}

func (h *harness) expectCommit() {
	h.mock.ExpectBegin()
	h.mock.ExpectCommit()
}

func (h *harness) expectRollback() {
	h.mock.ExpectBegin()
	h.mock.ExpectRollback()
}

// register creates a password account directly in the fake repository.
func (h *harness) register(t *testing.T, id, email, password string) {
	t.Helper()
	var hash []byte
	if password != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
	}
	_, err := h.repos.accounts.Create(context.Background(), &models.Account{ID: id, Email: email, PasswordHash: hash})
	require.NoError(t, err)
}
