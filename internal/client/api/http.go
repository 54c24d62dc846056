// Package api implements the HTTP client for the StudyHub backend.
//
// All requests go through a single transport path that attaches session
// cookies automatically and reacts uniformly to authentication failures:
// a 401 on a regular endpoint triggers one refresh through the bound
// session coordinator followed by exactly one resend; a 401 on an auth
// endpoint is never retried and, for login/refresh, announces a
// process-wide logout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studyhub/studyhub-cli/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// Refresher obtains a valid session, deduplicating concurrent demands onto
// a single network attempt. Implemented by session.Manager.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// LogoutAnnouncer broadcasts session termination to every listener.
// Implemented by session.Bus.
type LogoutAnnouncer interface {
	AnnounceLogout()
}

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	log       logging.Logger
	refresher Refresher
	announcer LogoutAnnouncer
}

// New constructs an HTTPClient for the given backend base URL. Session
// credentials live in the cookie jar, so they ride along on every request
// without explicit handling per endpoint.
func New(baseURL string, log logging.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		log: log,
	}, nil
}

// BindSession wires in the refresh coordinator and logout broadcast. The
// client and the session manager reference each other, so this runs after
// both are constructed. Until bound, 401 responses propagate without
// recovery.
func (c *HTTPClient) BindSession(r Refresher, a LogoutAnnouncer) {
	c.refresher = r
	c.announcer = a
}

// call describes one logical request. auth marks requests to the auth
// endpoints themselves, which are never retried after a 401; broadcast
// additionally announces logout on such a 401 (login/refresh, not logout).
type call struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	auth        bool
	broadcast   bool
}

// execute runs a call through the recovery path and returns the final
// response body and status.
//
// Recovery contract: a 401 on a non-auth endpoint asks the Refresher for a
// valid session and resends the original request exactly once. A second 401
// on the resent request propagates as a plain failure, never another
// refresh cycle.
func (c *HTTPClient) execute(ctx context.Context, cl call) ([]byte, int, error) {
	reqID := uuid.NewString()

	data, status, err := c.send(ctx, cl, reqID)
	if err != nil {
		return nil, 0, err
	}
	if status != http.StatusUnauthorized {
		return data, status, nil
	}

	if cl.auth {
		if cl.broadcast && c.announcer != nil {
			c.announcer.AnnounceLogout()
		}
		return data, status, nil
	}
	if c.refresher == nil {
		return data, status, nil
	}

	if rerr := c.refresher.Refresh(ctx); rerr != nil {
		// The coordinator has already ended the session; surface the
		// original authentication failure to the caller.
		c.log.Warn(ctx, "refresh after 401 failed", "path", cl.path, "error", rerr)
		return data, status, nil
	}

	c.log.Debug(ctx, "retrying request after refresh", "path", cl.path, "request_id", reqID)
	return c.send(ctx, cl, reqID)
}

// do executes a call and decodes a 2xx JSON body into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, cl call, out any) error {
	data, status, err := c.execute(ctx, cl)
	if err != nil {
		return err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return decodeError(data, status)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// doRaw executes a call and returns the raw 2xx body, for downloads.
func (c *HTTPClient) doRaw(ctx context.Context, cl call) ([]byte, error) {
	data, status, err := c.execute(ctx, cl)
	if err != nil {
		return nil, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, decodeError(data, status)
	}
	return data, nil
}

// send performs one HTTP round-trip and reads the full response body.
// The body is rebuilt from the buffered bytes on every invocation, so a
// retried call resends an identical payload.
func (c *HTTPClient) send(ctx context.Context, cl call, reqID string) ([]byte, int, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		body = bytes.NewReader(cl.body)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}
	return data, resp.StatusCode, nil
}

func decodeError(data []byte, status int) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(data, &payload)
	return &APIError{Status: status, Message: payload.Message}
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, call{method: http.MethodGet, path: path, query: query}, out)
}

func marshalJSON(in any) ([]byte, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	return b, nil
}

// sendJSON issues a request with a JSON body using the given method.
func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = marshalJSON(in)
		if err != nil {
			return err
		}
	}
	return c.do(ctx, call{
		method:      method,
		path:        path,
		body:        body,
		contentType: "application/json",
	}, out)
}

// delete issues a DELETE to the given path.
func (c *HTTPClient) delete(ctx context.Context, path string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: path}, nil)
}
