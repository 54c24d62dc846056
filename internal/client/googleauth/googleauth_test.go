package googleauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/studyhub/studyhub-cli/internal/logging"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr string
	}{
		{name: "valid", query: "state=s1&code=c1"},
		{name: "provider error", query: "error=access_denied&error_description=nope", wantErr: "authorization failed"},
		{name: "state mismatch", query: "state=evil&code=c1", wantErr: "state parameter mismatch"},
		{name: "missing code", query: "state=s1", wantErr: "missing authorization code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/oauth2/callback?"+tt.query, nil)
			res := parseCallback(r, "s1")
			if tt.wantErr == "" {
				require.NoError(t, res.err)
				require.Equal(t, "c1", res.code)
			} else {
				require.ErrorContains(t, res.err, tt.wantErr)
			}
		})
	}
}

// TestSignIn_FullFlow drives the whole loopback dance against a fake
// provider: the "browser" follows the auth URL programmatically and the
// token endpoint returns a canned ID token.
func TestSignIn_FullFlow(t *testing.T) {
	const rawIDToken = "header.payload.signature"

	var gotNonce string
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			gotNonce = r.URL.Query().Get("nonce")
			// Redirect back to the flow's loopback listener.
			redirect, err := url.Parse(r.URL.Query().Get("redirect_uri"))
			require.NoError(t, err)
			q := redirect.Query()
			q.Set("state", r.URL.Query().Get("state"))
			q.Set("code", "auth-code-1")
			redirect.RawQuery = q.Encode()
			http.Redirect(w, r, redirect.String(), http.StatusFound)
		case "/token":
			require.NoError(t, r.ParseForm())
			require.Equal(t, "auth-code-1", r.FormValue("code"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "at-1",
				"token_type":   "Bearer",
				"expires_in":   3600,
				"id_token":     rawIDToken,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer provider.Close()

	f := &Flow{
		oauth: &oauth2.Config{
			ClientID: "client-1",
			Endpoint: oauth2.Endpoint{
				AuthURL:  provider.URL + "/auth",
				TokenURL: provider.URL + "/token",
			},
		},
		verify: func(ctx context.Context, raw string) (*claims, error) {
			require.Equal(t, rawIDToken, raw)
			return &claims{Nonce: gotNonce, Email: "alice@example.com"}, nil
		},
		listen: "127.0.0.1:0",
		openURL: func(u string) error {
			// Stand in for the browser.
			go func() {
				resp, err := http.Get(u)
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		},
		log: logging.NewNop(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := f.SignIn(ctx)
	require.NoError(t, err)
	require.Equal(t, rawIDToken, got)
}

func TestSignIn_NonceMismatchRejected(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			redirect, err := url.Parse(r.URL.Query().Get("redirect_uri"))
			require.NoError(t, err)
			q := redirect.Query()
			q.Set("state", r.URL.Query().Get("state"))
			q.Set("code", "auth-code-1")
			redirect.RawQuery = q.Encode()
			http.Redirect(w, r, redirect.String(), http.StatusFound)
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "at-1",
				"token_type":   "Bearer",
				"id_token":     "raw",
			})
		}
	}))
	defer provider.Close()

	f := &Flow{
		oauth: &oauth2.Config{
			ClientID: "client-1",
			Endpoint: oauth2.Endpoint{
				AuthURL:  provider.URL + "/auth",
				TokenURL: provider.URL + "/token",
			},
		},
		verify: func(ctx context.Context, raw string) (*claims, error) {
			return &claims{Nonce: "replayed-nonce"}, nil
		},
		listen: "127.0.0.1:0",
		openURL: func(u string) error {
			go func() {
				resp, err := http.Get(u)
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		},
		log: logging.NewNop(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := f.SignIn(ctx)
	require.ErrorContains(t, err, "nonce mismatch")
}

func TestSignIn_CanceledContext(t *testing.T) {
	f := &Flow{
		oauth:   &oauth2.Config{},
		listen:  "127.0.0.1:0",
		openURL: func(string) error { return nil },
		log:     logging.NewNop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.SignIn(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
