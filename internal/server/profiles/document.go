package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/dbx"
	"github.com/dmitrijs2005/onboarding/internal/profile"
)

// DocumentStore keeps one JSONB document per uid in the profiles table.
// UpdateField patches a single top-level key with jsonb_set, creating the
// row when it is missing.
type DocumentStore struct {
	db dbx.DBTX
}

func NewDocumentStore(db dbx.DBTX) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Write(ctx context.Context, uid string, fields profile.Fields) error {
	if fields == nil {
		fields = profile.Fields{}
	}
	doc, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	query :=
		`INSERT INTO profiles (user_id, fields, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET fields = EXCLUDED.fields, updated_at = now()
		 `

	if _, err := s.db.ExecContext(ctx, query, uid, string(doc)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *DocumentStore) UpdateField(ctx context.Context, uid string, key string, value any) error {
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode profile field: %w", err)
	}

	query :=
		`INSERT INTO profiles (user_id, fields, updated_at)
		 VALUES ($1, jsonb_build_object($2::text, $3::jsonb), now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET fields = jsonb_set(profiles.fields, ARRAY[$2::text], $3::jsonb, true), updated_at = now()
		 `

	if _, err := s.db.ExecContext(ctx, query, uid, key, string(v)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *DocumentStore) Read(ctx context.Context, uid string) (profile.Fields, error) {
	query :=
		`SELECT fields FROM profiles
		 WHERE user_id = $1
		 `

	var raw []byte
	if err := s.db.QueryRowContext(ctx, query, uid).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	fields := profile.Fields{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode profile: %w: %w", common.ErrorCorruptRecord, err)
	}
	return fields, nil
}
