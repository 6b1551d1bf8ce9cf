// Package client talks to the onboarding backend over gRPC.
//
// # Overview
//
// The package provides:
//  1. GRPCClient, a thin typed wrapper over the AccountService RPCs. It
//     attaches the current access token to every call, transparently
//     refreshes an expired token once, and maps gRPC status codes to
//     sentinel errors.
//  2. Provider, the identity provider the account core signs in through.
//     It owns the client's session.Holder and runs the federated handshake.
//  3. ProfileStore, a profile.Store whose records live on the server.
//
// # Error Handling
//
// Transport-level conditions are exposed as sentinel errors that callers can
// match with errors.Is: ErrUnavailable, ErrUnauthorized, plus the shared
// common.ErrorNotFound, common.ErrorAlreadyExists, common.ErrorValidation and
// common.ErrTooManyLoginAttempts. The server's status message is kept in the
// error text.
package client
