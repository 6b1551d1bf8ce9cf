// Package federation verifies ID tokens issued by external identity
// providers before the server trusts the identity they assert.
package federation

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/onboarding/internal/common"
)

// Claims is the part of a verified ID token the server keeps.
type Claims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

type Verifier interface {
	Name() string
	Verify(ctx context.Context, rawIDToken string) (*Claims, error)
}

// Registry looks verifiers up by provider name.
type Registry struct {
	verifiers map[string]Verifier
}

func NewRegistry(verifiers ...Verifier) *Registry {
	r := &Registry{verifiers: make(map[string]Verifier, len(verifiers))}
	for _, v := range verifiers {
		r.verifiers[v.Name()] = v
	}
	return r
}

func (r *Registry) Get(name string) (Verifier, error) {
	v, ok := r.verifiers[name]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported identity provider %q", common.ErrorValidation, name)
	}
	return v, nil
}
