package models

import "time"

// Account is a password and/or federated login owned by one uid.
// PasswordHash is nil for accounts created through a federated provider
// that never set a password.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// HasPassword reports whether the account can sign in with a password.
func (a *Account) HasPassword() bool {
	return len(a.PasswordHash) > 0
}

// FederatedIdentity links an external provider subject to an account.
type FederatedIdentity struct {
	Provider  string
	Subject   string
	AccountID string
	Email     string
	CreatedAt time.Time
}
