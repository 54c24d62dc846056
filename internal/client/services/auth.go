// Package services contains application services for the StudyHub client.
// Each service wraps a slice of the backend API, layers the query cache on
// reads, and invalidates the cache keys its mutations dirty. This file
// defines the authentication service: interactive Google sign-in, sign-out,
// and session refresh.
package services

import (
	"context"
	"time"

	"github.com/studyhub/studyhub-cli/internal/client/models"
	"github.com/studyhub/studyhub-cli/internal/logging"
)

// cacheTTL is how long cached reads stay fresh before a service refetches.
const cacheTTL = 5 * time.Minute

// signInFlow produces a verified Google ID token via the interactive
// browser flow.
type signInFlow interface {
	SignIn(ctx context.Context) (string, error)
}

// authAPI is the slice of the backend client the auth service needs.
type authAPI interface {
	Login(ctx context.Context, idToken string) (*models.User, error)
	Logout(ctx context.Context) error
}

// sessionManager is the slice of the session manager the auth service
// drives.
type sessionManager interface {
	Login(ctx context.Context, user *models.User)
	Logout(ctx context.Context)
	Refresh(ctx context.Context) error
	User() *models.User
	IsAuthenticated() bool
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignIn: run the Google flow, log in against the server, install the session.
//   - SignOut: terminate the session locally even when the server call fails.
//   - Refresh: renew the session credential.
//   - CurrentUser: the signed-in identity, or nil.
type AuthService interface {
	SignIn(ctx context.Context) (*models.User, error)
	SignOut(ctx context.Context) error
	Refresh(ctx context.Context) error
	CurrentUser() *models.User
	IsAuthenticated() bool
}

type authService struct {
	flow    signInFlow
	api     authAPI
	session sessionManager
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the sign-in flow, the
// API client, and the session manager.
func NewAuthService(flow signInFlow, api authAPI, session sessionManager, log logging.Logger) AuthService {
	return &authService{flow: flow, api: api, session: session, log: log}
}

// SignIn obtains a Google ID token interactively, exchanges it with the
// backend for a session, and installs the returned user.
func (a *authService) SignIn(ctx context.Context) (*models.User, error) {
	idToken, err := a.flow.SignIn(ctx)
	if err != nil {
		return nil, err
	}

	user, err := a.api.Login(ctx, idToken)
	if err != nil {
		return nil, err
	}

	a.session.Login(ctx, user)
	return user, nil
}

// SignOut ends the session. The server call is best effort: a failure is
// logged, and the local session is cleared regardless, so the user is never
// stuck signed in.
func (a *authService) SignOut(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
	}
	a.session.Logout(ctx)
	return nil
}

func (a *authService) Refresh(ctx context.Context) error {
	return a.session.Refresh(ctx)
}

func (a *authService) CurrentUser() *models.User {
	return a.session.User()
}

func (a *authService) IsAuthenticated() bool {
	return a.session.IsAuthenticated()
}
