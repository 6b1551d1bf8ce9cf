// Package profile defines the Profile Store contract: user profile records
// keyed by uid, written whole, patched one field at a time and read back.
//
// Implementations live elsewhere (Postgres JSONB documents, Redis key paths,
// S3 objects, the gRPC client). Code that reconciles profiles is written once
// against Store and never learns which backend it got.
package profile

import "context"

// Fields is the raw content of a profile record.
type Fields map[string]any

// Clone returns a shallow copy; profile values are scalars.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Store persists profile records keyed by uid.
//
// Read returns common.ErrorNotFound when no record exists for uid.
type Store interface {
	// Write replaces the whole record for uid.
	Write(ctx context.Context, uid string, fields Fields) error
	// UpdateField sets a single key, leaving the others untouched.
	UpdateField(ctx context.Context, uid string, key string, value any) error
	Read(ctx context.Context, uid string) (Fields, error)
}
