package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/studyhub/studyhub-cli/internal/client/models"
)

// accessTokenCookie is the cookie the backend sets on login and refresh.
const accessTokenCookie = "accessToken"

type loginRequest struct {
	IDToken string `json:"idToken"`
}

type loginResponse struct {
	User *models.User `json:"user"`
}

// Login exchanges a Google ID token for a backend session. The backend sets
// the session cookies on the response; they land in the client's jar. A 401
// here is terminal: it is never retried and announces logout.
func (c *HTTPClient) Login(ctx context.Context, idToken string) (*models.User, error) {
	var resp loginResponse
	err := c.doAuth(ctx, "/api/auth/login", loginRequest{IDToken: idToken}, &resp, true)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Refresh extends the current session using the ambient refresh cookie.
// No body is required. Like Login, a 401 is terminal.
func (c *HTTPClient) Refresh(ctx context.Context) error {
	return c.doAuth(ctx, "/api/auth/refresh", nil, nil, true)
}

// Logout invalidates the session server-side. Failures here do not
// broadcast anything: the caller clears local state regardless.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doAuth(ctx, "/api/auth/logout", nil, nil, false)
}

func (c *HTTPClient) doAuth(ctx context.Context, path string, in, out any, broadcast bool) error {
	var body []byte
	contentType := ""
	if in != nil {
		var err error
		body, err = marshalJSON(in)
		if err != nil {
			return err
		}
		contentType = "application/json"
	}
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		body:        body,
		contentType: contentType,
		auth:        true,
		broadcast:   broadcast,
	}, out)
}

// AccessTokenExpiry reports the expiry of the access-token cookie, when one
// is present and carries a readable JWT exp claim. The token is parsed
// without verification: the client only schedules refreshes from it, the
// backend remains the authority on validity.
func (c *HTTPClient) AccessTokenExpiry() (time.Time, bool) {
	base, err := url.Parse(c.baseURL)
	if err != nil || c.http.Jar == nil {
		return time.Time{}, false
	}
	for _, ck := range c.http.Jar.Cookies(base) {
		if ck.Name != accessTokenCookie || ck.Value == "" {
			continue
		}
		token, _, err := jwt.NewParser().ParseUnverified(ck.Value, jwt.MapClaims{})
		if err != nil {
			return time.Time{}, false
		}
		exp, err := token.Claims.GetExpirationTime()
		if err != nil || exp == nil {
			return time.Time{}, false
		}
		return exp.Time, true
	}
	return time.Time{}, false
}
