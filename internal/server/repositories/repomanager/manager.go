package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/onboarding/internal/dbx"
	"github.com/dmitrijs2005/onboarding/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/onboarding/internal/server/repositories/identities"
	"github.com/dmitrijs2005/onboarding/internal/server/repositories/refreshtokens"
)

// RepositoryManager hands out repositories bound to a DBTX, so the same
// service code runs against *sql.DB or inside a dbx.WithTx transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Identities(db dbx.DBTX) identities.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
