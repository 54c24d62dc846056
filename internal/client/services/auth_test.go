package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/studyhub/studyhub-cli/internal/client/models"
	"github.com/studyhub/studyhub-cli/internal/logging"
)

type fakeFlow struct {
	token string
	err   error
	calls int
}

func (f *fakeFlow) SignIn(ctx context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

type fakeAuthAPI struct {
	user      *models.User
	loginErr  error
	logoutErr error
	gotToken  string
	logouts   int
}

func (f *fakeAuthAPI) Login(ctx context.Context, idToken string) (*models.User, error) {
	f.gotToken = idToken
	return f.user, f.loginErr
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

type fakeSession struct {
	user    *models.User
	logins  int
	logouts int
}

func (f *fakeSession) Login(ctx context.Context, user *models.User) {
	f.logins++
	f.user = user
}

func (f *fakeSession) Logout(ctx context.Context) {
	f.logouts++
	f.user = nil
}

func (f *fakeSession) Refresh(ctx context.Context) error { return nil }
func (f *fakeSession) User() *models.User                { return f.user }
func (f *fakeSession) IsAuthenticated() bool             { return f.user != nil }

func TestSignIn_HappyPath(t *testing.T) {
	want := &models.User{ID: "u1", Email: "alice@example.com"}
	flow := &fakeFlow{token: "id-token-1"}
	api := &fakeAuthAPI{user: want}
	session := &fakeSession{}
	svc := NewAuthService(flow, api, session, logging.NewNop())

	got, err := svc.SignIn(context.Background())

	require.NoError(t, err)
	require.Same(t, want, got)
	require.Equal(t, "id-token-1", api.gotToken)
	require.Equal(t, 1, session.logins)
	require.True(t, svc.IsAuthenticated())
	require.Same(t, want, svc.CurrentUser())
}

func TestSignIn_FlowFailureSkipsBackend(t *testing.T) {
	flow := &fakeFlow{err: errors.New("browser closed")}
	api := &fakeAuthAPI{}
	session := &fakeSession{}
	svc := NewAuthService(flow, api, session, logging.NewNop())

	_, err := svc.SignIn(context.Background())

	require.Error(t, err)
	require.Empty(t, api.gotToken)
	require.Zero(t, session.logins)
}

func TestSignIn_BackendRejection(t *testing.T) {
	flow := &fakeFlow{token: "id-token-1"}
	api := &fakeAuthAPI{loginErr: errors.New("invalid token")}
	session := &fakeSession{}
	svc := NewAuthService(flow, api, session, logging.NewNop())

	_, err := svc.SignIn(context.Background())

	require.Error(t, err)
	require.Zero(t, session.logins, "no session without a backend login")
}

func TestSignOut_ClearsSession(t *testing.T) {
	api := &fakeAuthAPI{}
	session := &fakeSession{user: &models.User{ID: "u1"}}
	svc := NewAuthService(&fakeFlow{}, api, session, logging.NewNop())

	require.NoError(t, svc.SignOut(context.Background()))

	require.Equal(t, 1, api.logouts)
	require.Equal(t, 1, session.logouts)
	require.False(t, svc.IsAuthenticated())
}

func TestSignOut_ServerFailureStillClearsLocally(t *testing.T) {
	api := &fakeAuthAPI{logoutErr: errors.New("503")}
	session := &fakeSession{user: &models.User{ID: "u1"}}
	svc := NewAuthService(&fakeFlow{}, api, session, logging.NewNop())

	require.NoError(t, svc.SignOut(context.Background()))

	require.Equal(t, 1, session.logouts, "local logout must not depend on the server")
}
