package account

import (
	"errors"
	"fmt"
)

// ErrDecoding reports a profile record that is absent or does not decode to a User.
var ErrDecoding = errors.New("profile record could not be decoded")

const (
	msgNoSession           = "no user currently logged in"
	msgMissingProfileField = "missing profile fields"
)

// ServerError is a failure reported by the identity provider or the profile
// store, or a precondition the remote side would have rejected anyway.
type ServerError struct {
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	return e.Message
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

func serverError(err error) error {
	return &ServerError{Message: err.Error(), Err: err}
}

func serverErrorf(format string, args ...any) error {
	return &ServerError{Message: fmt.Sprintf(format, args...)}
}

func decodingError(err error) error {
	return fmt.Errorf("%w: %v", ErrDecoding, err)
}

// IsServerError reports whether err is, or wraps, a *ServerError.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
