// Package account turns sign-in actions into a canonical, persisted user.
//
// Resolver talks to the identity provider (password login, registration,
// federated sign-in, logout, password reset). Reconciler maps the resolved
// uid to a profile record, creating it when a new identity shows up.
//
// Failures are either a *ServerError (the provider or the store said no, the
// federated handshake came back incomplete, or there is no session) or
// ErrDecoding (a profile record is missing or cannot be read as a User).
package account
