// Package federated runs the client half of a federated (OAuth / OpenID
// Connect) sign-in: it sends the user to the provider, waits for the
// redirect and returns the identity the provider asserted.
//
// It makes no decisions about accounts. Whether the returned identity is
// complete enough to use, and what to do with it, is up to the caller.
package federated

import (
	"context"
	"fmt"
	"io"
)

// User is the provider's view of the person who signed in. Any field may be
// empty if the provider did not assert it.
type User struct {
	Token       string // raw OpenID Connect ID token
	Email       string
	DisplayName string
}

// Presenter shows the provider's consent page to the user. It is the CLI
// equivalent of the view controller a mobile SDK presents from.
type Presenter interface {
	Present(ctx context.Context, authURL string) error
}

// WriterPresenter prints the consent URL and asks the user to open it.
type WriterPresenter struct {
	W io.Writer
}

func (p WriterPresenter) Present(ctx context.Context, authURL string) error {
	_, err := fmt.Fprintf(p.W, "Open the following URL in your browser to continue:\n\n  %s\n\n", authURL)
	return err
}
