package federation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/dmitrijs2005/onboarding/internal/common"
)

const (
	GoogleProviderName = "google"
	googleIssuer       = "https://accounts.google.com"
)

// GoogleVerifier checks Google ID tokens against Google's published keys and
// the configured OAuth client id.
type GoogleVerifier struct {
	clientID string
	issuer   string

	once     sync.Once
	verifier *oidc.IDTokenVerifier
	initErr  error
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, issuer: googleIssuer}
}

func (g *GoogleVerifier) Name() string {
	return GoogleProviderName
}

func (g *GoogleVerifier) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	g.once.Do(func() {
		if g.verifier != nil {
			return
		}
		provider, err := oidc.NewProvider(ctx, g.issuer)
		if err != nil {
			g.initErr = fmt.Errorf("google discovery failed: %w", err)
			return
		}
		g.verifier = provider.Verifier(&oidc.Config{ClientID: g.clientID})
	})
	return g.verifier, g.initErr
}

func (g *GoogleVerifier) Verify(ctx context.Context, rawIDToken string) (*Claims, error) {
	if g.clientID == "" {
		return nil, errors.New("google sign-in is not configured")
	}

	v, err := g.idTokenVerifier(ctx)
	if err != nil {
		return nil, err
	}

	idToken, err := v.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if idToken.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: id token missing required claims", common.ErrInvalidToken)
	}

	return &Claims{
		Subject:       idToken.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
	}, nil
}
