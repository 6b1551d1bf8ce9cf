package profiles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/profile"
	"github.com/redis/go-redis/v9"
)

// recordMarker is always present in a written hash so that an empty profile
// still reads back as existing.
const recordMarker = "__record"

// KeyPathStore keeps each profile as a Redis hash at users/<uid>. Hash values
// are JSON so booleans and numbers survive the round trip.
type KeyPathStore struct {
	rdb redis.UniversalClient
}

func NewKeyPathStore(rdb redis.UniversalClient) *KeyPathStore {
	return &KeyPathStore{rdb: rdb}
}

func userKey(uid string) string {
	return "users/" + uid
}

func encodeHash(fields profile.Fields) (map[string]any, error) {
	out := make(map[string]any, len(fields)+1)
	out[recordMarker] = "1"
	for k, v := range fields {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode profile field %q: %w", k, err)
		}
		out[k] = string(b)
	}
	return out, nil
}

// Write replaces the whole hash atomically.
func (s *KeyPathStore) Write(ctx context.Context, uid string, fields profile.Fields) error {
	values, err := encodeHash(fields)
	if err != nil {
		return err
	}

	key := userKey(uid)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, values)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (s *KeyPathStore) UpdateField(ctx context.Context, uid string, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode profile field %q: %w", key, err)
	}

	if err := s.rdb.HSet(ctx, userKey(uid), recordMarker, "1", key, string(b)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (s *KeyPathStore) Read(ctx context.Context, uid string) (profile.Fields, error) {
	m, err := s.rdb.HGetAll(ctx, userKey(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}
	if len(m) == 0 {
		return nil, common.ErrorNotFound
	}

	fields := make(profile.Fields, len(m))
	for k, raw := range m {
		if k == recordMarker {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			// written by something else; keep the raw string
			v = raw
		}
		fields[k] = v
	}
	return fields, nil
}
