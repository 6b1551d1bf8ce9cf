package federated

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/logging"
	"golang.org/x/oauth2"
)

const (
	GoogleProviderName = "google"
	googleIssuer       = "https://accounts.google.com"
	callbackPath       = "/callback"
)

// GoogleConfig configures the desktop OAuth client used for the handshake.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	// RedirectPort is the loopback port the consent page redirects to; 0 picks a free one.
	RedirectPort int
}

// Google performs "Sign in with Google" using the authorization code flow
// with PKCE and a loopback redirect.
type Google struct {
	cfg    GoogleConfig
	logger logging.Logger

	issuer string
	listen func(network, address string) (net.Listener, error)

	once     sync.Once
	provider *oidc.Provider
	initErr  error
}

func NewGoogle(cfg GoogleConfig, logger logging.Logger) *Google {
	return &Google{
		cfg:    cfg,
		logger: logger.With("module", "federated_google"),
		issuer: googleIssuer,
		listen: net.Listen,
	}
}

func (g *Google) Name() string {
	return GoogleProviderName
}

// discover fetches the provider's OpenID configuration once, on first use,
// so that starting the CLI does not need network access.
func (g *Google) discover(ctx context.Context) (*oidc.Provider, error) {
	g.once.Do(func() {
		g.provider, g.initErr = oidc.NewProvider(ctx, g.issuer)
	})
	return g.provider, g.initErr
}

// SignIn presents the consent page and blocks until the provider redirects
// back, the context ends, or the exchange fails.
func (g *Google) SignIn(ctx context.Context, p Presenter) (*User, error) {
	if g.cfg.ClientID == "" {
		return nil, errors.New("google sign-in is not configured")
	}

	provider, err := g.discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("google discovery failed: %w", err)
	}

	ln, err := g.listen("tcp", fmt.Sprintf("127.0.0.1:%d", g.cfg.RedirectPort))
	if err != nil {
		return nil, fmt.Errorf("cannot listen for oauth redirect: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     g.cfg.ClientID,
		ClientSecret: g.cfg.ClientSecret,
		RedirectURL:  "http://" + ln.Addr().String() + callbackPath,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	state, err := common.MakeRandHexString(16)
	if err != nil {
		_ = ln.Close()
		return nil, err
	}
	verifier := oauth2.GenerateVerifier()

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.Handle(callbackPath, callbackHandler(state, results))
	srv := &http.Server{Handler: mux}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Warn(ctx, "oauth redirect listener stopped", "error", err)
		}
	}()
	defer func() { _ = srv.Close() }()

	authURL := oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier))
	if err := p.Present(ctx, authURL); err != nil {
		return nil, err
	}

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, res.err
	}

	token, err := oauthCfg.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	if rawIDToken == "" {
		return nil, errors.New("google did not return id_token")
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: g.cfg.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("google id_token verification failed: %w", err)
	}

	var claims idClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("google id_token claims parse failed: %w", err)
	}

	g.logger.Debug(ctx, "google handshake complete",
		"email_present", claims.Email != "",
		"name_present", claims.Name != "",
	)

	return claims.user(rawIDToken), nil
}

type idClaims struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// user builds the display name from "name", falling back to given + family name.
func (c idClaims) user(rawIDToken string) *User {
	name := c.Name
	if name == "" {
		switch {
		case c.GivenName != "" && c.FamilyName != "":
			name = c.GivenName + " " + c.FamilyName
		default:
			name = c.GivenName + c.FamilyName
		}
	}
	return &User{Token: rawIDToken, Email: c.Email, DisplayName: name}
}

type callbackResult struct {
	code string
	err  error
}

// callbackHandler accepts exactly one redirect. It checks state, reports the
// code or the provider error, and tells the browser it can close the tab.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	var once sync.Once
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var res callbackResult
		switch {
		case q.Get("state") != state:
			res.err = errors.New("oauth state mismatch")
		case q.Get("error") != "":
			res.err = fmt.Errorf("provider returned error: %s", q.Get("error"))
		case q.Get("code") == "":
			res.err = errors.New("oauth redirect without code")
		default:
			res.code = q.Get("code")
		}

		once.Do(func() { results <- res })

		if res.err != nil {
			http.Error(w, "Sign-in failed. You can close this window.", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("Signed in. You can close this window and return to the terminal."))
	})
}
