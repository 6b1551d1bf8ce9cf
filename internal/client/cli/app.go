package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/onboarding/internal/client/account"
	"github.com/dmitrijs2005/onboarding/internal/client/client"
	"github.com/dmitrijs2005/onboarding/internal/client/config"
	"github.com/dmitrijs2005/onboarding/internal/client/federated"
	"github.com/dmitrijs2005/onboarding/internal/client/models"
	"github.com/dmitrijs2005/onboarding/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/onboarding/internal/client/session"
	"github.com/dmitrijs2005/onboarding/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// authFlows is what the screens need from the credential resolver.
type authFlows interface {
	Login(ctx context.Context, email, password string) (*account.Identity, error)
	Register(ctx context.Context, email, password, fullname string) (*models.User, error)
	SignInWithFederatedProvider(ctx context.Context, p federated.Presenter) (*models.User, error)
	Logout(ctx context.Context)
	ResetPassword(ctx context.Context, email string) error
}

// profileFlows is what the screens need from the profile reconciler.
type profileFlows interface {
	FetchCurrentUser(ctx context.Context) (*models.User, error)
	MarkOnboardingSeen(ctx context.Context) (*models.User, error)
}

// serverAPI covers the calls the CLI makes to the server directly.
type serverAPI interface {
	Ping(ctx context.Context) error
	ConfirmPasswordReset(ctx context.Context, token, password string) error
	Close() error
}

type App struct {
	config    *config.Config
	auth      authFlows
	profiles  profileFlows
	api       serverAPI
	presenter federated.Presenter
	logger    logging.Logger
	local     io.Closer
	restored  bool

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	user *models.User
	mode Mode
}

// NewApp wires the local session database, gRPC client, identity provider,
// profile store and account core for the given configuration.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("local database: %w", err)
	}

	holder := session.NewHolder()
	restored := client.RestoreSession(ctx, holder, sessions.NewSQLiteRepository(db), logger)

	api, err := client.NewGRPCClient(c.ServerEndpointAddr, holder)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var handshake client.Handshake
	if c.GoogleClientID != "" {
		handshake = federated.NewGoogle(federated.GoogleConfig{
			ClientID:     c.GoogleClientID,
			ClientSecret: c.GoogleClientSecret,
			RedirectPort: c.RedirectPort,
		}, logger)
	}

	provider := client.NewProvider(api, handshake, holder, logger)
	reconciler := account.NewReconciler(client.NewProfileStore(api), provider, logger)
	resolver := account.NewResolver(provider, reconciler, logger)

	return &App{
		config:    c,
		auth:      resolver,
		profiles:  reconciler,
		api:       api,
		presenter: federated.WriterPresenter{W: os.Stdout},
		logger:    logger.With("module", "cli"),
		local:     db,
		restored:  restored,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run starts the connectivity watcher and the REPL. It returns when the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.api.Close(); err != nil {
			a.logger.Warn(ctx, "close connection", "error", err)
		}
		if a.local != nil {
			if err := a.local.Close(); err != nil {
				a.logger.Warn(ctx, "close local database", "error", err)
			}
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to the Onboarding Tutorial CLI (type 'help' for commands)")
	a.authenticateUser(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		printlnFn(fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.user != nil {
		s = a.user.Email + " "
	}
	s += string(a.mode)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
