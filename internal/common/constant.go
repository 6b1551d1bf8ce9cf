// Package common contains shared constants and sentinel errors used across
// the onboarding client and server.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Profile field names. They are the only keys ever written to a profile
// record, on the wire and in every storage backend.
const (
	FieldEmail             = "email"
	FieldFullname          = "fullname"
	FieldHasSeenOnboarding = "hasSeenOnboarding"
)
