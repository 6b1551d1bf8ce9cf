package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/onboarding/internal/client/migrations"
	"github.com/dmitrijs2005/onboarding/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/onboarding/internal/client/session"
	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local SQLite file at dsn and
// brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RestoreSession loads a saved session into holder and from then on mirrors
// every holder change into repo. It reports whether a session was restored.
// Persistence failures are logged and never block sign-in.
func RestoreSession(ctx context.Context, holder *session.Holder, repo sessions.Repository, logger logging.Logger) bool {
	restored := false
	s, err := repo.Load(ctx)
	switch {
	case err == nil:
		holder.Set(s)
		restored = true
	case !errors.Is(err, common.ErrorNotFound):
		logger.Warn(ctx, "load saved session", "error", err)
	}

	holder.OnChange(func(s session.Session, active bool) {
		var err error
		if active {
			err = repo.Save(context.WithoutCancel(ctx), s)
		} else {
			err = repo.Delete(context.WithoutCancel(ctx))
		}
		if err != nil {
			logger.Warn(ctx, "persist session", "error", err)
		}
	})

	return restored
}
