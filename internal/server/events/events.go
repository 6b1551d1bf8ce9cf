// Package events publishes account and profile lifecycle events so other
// services can react to sign-ups and onboarding progress.
package events

import (
	"context"
	"time"
)

// Routing keys.
const (
	AccountCreated        = "account.created"
	AccountSignedIn       = "account.signed_in"
	FederatedLinked       = "account.federated_linked"
	PasswordResetSent     = "account.password_reset_sent"
	PasswordResetComplete = "account.password_reset_completed"
	ProfileWritten        = "profile.written"
	ProfileFieldUpdated   = "profile.field_updated"
)

type Event struct {
	Type string         `json:"type"`
	UID  string         `json:"uid,omitempty"`
	At   time.Time      `json:"at"`
	Data map[string]any `json:"data,omitempty"`
}

func New(typ, uid string, data map[string]any) Event {
	return Event{Type: typ, UID: uid, At: time.Now().UTC(), Data: data}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
