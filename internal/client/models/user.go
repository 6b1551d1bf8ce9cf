// Package models defines the client-side domain types.
package models

import (
	"fmt"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/profile"
)

// User is the canonical profile of a signed-in person.
type User struct {
	UID               string
	Email             string
	Fullname          string
	HasSeenOnboarding bool
}

// NewUserFields returns the record written when a profile is first created.
func NewUserFields(email, fullname string) profile.Fields {
	return profile.Fields{
		common.FieldEmail:             email,
		common.FieldFullname:          fullname,
		common.FieldHasSeenOnboarding: false,
	}
}

// UserFromFields decodes a stored record. email and fullname must be present
// strings; hasSeenOnboarding may be absent but, if present, must be a bool.
func UserFromFields(uid string, f profile.Fields) (*User, error) {
	if f == nil {
		return nil, fmt.Errorf("empty profile record")
	}

	email, err := requiredString(f, common.FieldEmail)
	if err != nil {
		return nil, err
	}
	fullname, err := requiredString(f, common.FieldFullname)
	if err != nil {
		return nil, err
	}

	var seen bool
	if raw, ok := f[common.FieldHasSeenOnboarding]; ok && raw != nil {
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("field %q has type %T, want bool", common.FieldHasSeenOnboarding, raw)
		}
		seen = b
	}

	return &User{UID: uid, Email: email, Fullname: fullname, HasSeenOnboarding: seen}, nil
}

func requiredString(f profile.Fields, key string) (string, error) {
	raw, ok := f[key]
	if !ok {
		return "", fmt.Errorf("field %q is missing", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("field %q has type %T, want string", key, raw)
	}
	return s, nil
}
