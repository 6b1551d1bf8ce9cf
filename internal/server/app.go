// Package server wires the account and profile services to their backends
// and runs the gRPC server until the context is cancelled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/dmitrijs2005/onboarding/internal/server/accounts"
	"github.com/dmitrijs2005/onboarding/internal/server/config"
	"github.com/dmitrijs2005/onboarding/internal/server/events"
	"github.com/dmitrijs2005/onboarding/internal/server/federation"
	"github.com/dmitrijs2005/onboarding/internal/server/mailer"
	"github.com/dmitrijs2005/onboarding/internal/server/profiles"
	"github.com/dmitrijs2005/onboarding/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/onboarding/internal/server/resettokens"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/onboarding/internal/server/grpc"
)

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepoManager = func() repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager()
	}
	newObjectAPI = func(ctx context.Context, cfg *config.Config) (profiles.ObjectAPI, error) {
		return profiles.NewS3Client(ctx, cfg)
	}
	newPublisher = func(url, exchange string) (events.Publisher, error) {
		return events.NewAMQPPublisher(url, exchange)
	}
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	server   *gs.GRPCServer
	closers  []io.Closer
	accounts *accounts.Service
	profiles *profiles.Service
}

// NewApp opens the database, applies migrations and builds every backend
// the configuration asks for. Anything opened is closed again on error.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (_ *App, err error) {
	app := &App{config: cfg, logger: logger.With("module", "app")}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	db, err := openDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.closers = append(app.closers, db)

	repos := newRepoManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	var rdb redis.UniversalClient
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		app.closers = append(app.closers, rdb)
	}

	backends := profiles.Backends{DB: db, Bucket: cfg.S3Bucket}
	if cfg.ProfileBackend == config.ProfileBackendKeyPath {
		backends.Redis = rdb
	}
	if cfg.ProfileBackend == config.ProfileBackendObject {
		if backends.Objects, err = newObjectAPI(ctx, cfg); err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
	}
	store, err := profiles.NewStore(cfg.ProfileBackend, backends)
	if err != nil {
		return nil, err
	}

	var resets resettokens.Store = resettokens.NewMemoryStore()
	if rdb != nil {
		resets = resettokens.NewRedisStore(rdb)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		p, err := newPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("amqp init error: %w", err)
		}
		if c, ok := p.(io.Closer); ok {
			app.closers = append(app.closers, c)
		}
		publisher = p
	}

	var m mailer.Mailer = mailer.NewLogMailer(logger)
	if cfg.ResendAPIKey != "" {
		m = mailer.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	}

	app.accounts = accounts.NewService(accounts.Deps{
		DB:          db,
		Repos:       repos,
		Verifiers:   federation.NewRegistry(federation.NewGoogleVerifier(cfg.GoogleClientID)),
		Mailer:      m,
		ResetTokens: resets,
		Events:      publisher,
		Logger:      logger,
	}, cfg)
	app.profiles = profiles.NewService(store, publisher, logger)
	app.server = gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, app.accounts, app.profiles, cfg.SecretKey)

	app.logger.Info(ctx, "App initialized", "profile_backend", cfg.ProfileBackend)
	return app, nil
}

func (app *App) close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}

// Run serves gRPC until ctx is done, then releases every backend.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	err := app.server.Run(ctx)
	if cerr := app.close(); cerr != nil {
		app.logger.Error(ctx, "shutdown", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
