// Package googleauth runs the native-app Google sign-in flow: it opens the
// provider's consent page in a browser, catches the redirect on a loopback
// listener, and exchanges the authorization code for a verified ID token.
// The raw ID token is what the backend accepts as a login credential.
package googleauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/studyhub/studyhub-cli/internal/common"
	"github.com/studyhub/studyhub-cli/internal/logging"
)

const googleIssuer = "https://accounts.google.com"

// callbackPath is where the loopback listener expects the redirect.
const callbackPath = "/oauth2/callback"

// Config holds the OAuth client registration and where to listen for the
// redirect.
type Config struct {
	ClientID     string
	ClientSecret string
	ListenAddr   string
}

// claims is the subset of the ID token the flow inspects locally.
type claims struct {
	Nonce string `json:"nonce"`
	Email string `json:"email"`
}

// verifyFunc checks a raw ID token and returns its claims. Swapped out in
// tests.
type verifyFunc func(ctx context.Context, rawIDToken string) (*claims, error)

// Flow drives one interactive sign-in.
type Flow struct {
	oauth   *oauth2.Config
	verify  verifyFunc
	listen  string
	openURL func(url string) error
	log     logging.Logger
}

// New discovers the Google OIDC endpoints and prepares a sign-in flow.
func New(ctx context.Context, cfg *Config, openURL func(url string) error, log logging.Logger) (*Flow, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("creating OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	return &Flow{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verify: func(ctx context.Context, raw string) (*claims, error) {
			idToken, err := verifier.Verify(ctx, raw)
			if err != nil {
				return nil, fmt.Errorf("verifying ID token: %w", err)
			}
			var c claims
			if err := idToken.Claims(&c); err != nil {
				return nil, fmt.Errorf("extracting claims: %w", err)
			}
			return &c, nil
		},
		listen:  cfg.ListenAddr,
		openURL: openURL,
		log:     log,
	}, nil
}

// callbackResult is what the redirect handler hands back to SignIn.
type callbackResult struct {
	code string
	err  error
}

// SignIn runs the full flow and returns the verified raw ID token. It
// blocks until the user completes consent in the browser, the redirect
// arrives, or ctx is canceled.
func (f *Flow) SignIn(ctx context.Context) (string, error) {
	state, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}
	nonce, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	ln, err := net.Listen("tcp", f.listen)
	if err != nil {
		return "", fmt.Errorf("starting redirect listener: %w", err)
	}
	defer ln.Close()

	cfg := *f.oauth
	cfg.RedirectURL = fmt.Sprintf("http://%s%s", ln.Addr().String(), callbackPath)

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		res := parseCallback(r, state)
		if res.err != nil {
			http.Error(w, "Sign-in failed. You can close this window.", http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Signed in. You can close this window.")
		}
		select {
		case results <- res:
		default:
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go srv.Serve(ln)
	defer srv.Close()

	authURL := cfg.AuthCodeURL(state, oidc.Nonce(nonce))
	if err := f.openURL(authURL); err != nil {
		return "", fmt.Errorf("opening browser: %w", err)
	}

	var res callbackResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-results:
	}
	if res.err != nil {
		return "", res.err
	}

	token, err := cfg.Exchange(ctx, res.code)
	if err != nil {
		return "", fmt.Errorf("exchanging authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return "", errors.New("no ID token in provider response")
	}

	c, err := f.verify(ctx, rawIDToken)
	if err != nil {
		return "", err
	}
	if c.Nonce != nonce {
		return "", errors.New("ID token nonce mismatch")
	}

	f.log.Debug(ctx, "google sign-in completed", "email", c.Email)
	return rawIDToken, nil
}

// parseCallback validates the redirect request and extracts the code.
func parseCallback(r *http.Request, wantState string) callbackResult {
	if e := r.FormValue("error"); e != "" {
		return callbackResult{err: fmt.Errorf("authorization failed: %s (%s)", e, r.FormValue("error_description"))}
	}
	if got := r.FormValue("state"); got != wantState {
		return callbackResult{err: errors.New("state parameter mismatch")}
	}
	code := r.FormValue("code")
	if code == "" {
		return callbackResult{err: errors.New("missing authorization code")}
	}
	return callbackResult{code: code}
}
