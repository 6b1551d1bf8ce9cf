package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/dbx"
	"github.com/dmitrijs2005/onboarding/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Find(ctx context.Context, provider, subject string) (*models.FederatedIdentity, error) {
	query :=
		`SELECT provider, subject, account_id, email, created_at FROM federated_identities
		 WHERE provider = $1 AND subject = $2
		 `

	fi := &models.FederatedIdentity{}
	err := r.db.QueryRowContext(ctx, query, provider, subject).
		Scan(&fi.Provider, &fi.Subject, &fi.AccountID, &fi.Email, &fi.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return fi, nil
}

func (r *PostgresRepository) Create(ctx context.Context, identity *models.FederatedIdentity) error {
	query :=
		`INSERT INTO federated_identities (provider, subject, account_id, email)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		identity.Provider, identity.Subject, identity.AccountID, identity.Email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
