package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/studyhub/studyhub-cli/internal/client/models"
	"github.com/studyhub/studyhub-cli/internal/logging"
)

// ---- fakes ----

type fakeRefresher struct {
	calls int32
	err   error
	fn    func(ctx context.Context) error
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	atomic.AddInt32(&f.calls, 1)
	if f.fn != nil {
		return f.fn(ctx)
	}
	return f.err
}

type fakeAnnouncer struct {
	calls int32
}

func (f *fakeAnnouncer) AnnounceLogout() { atomic.AddInt32(&f.calls, 1) }

func newTestClient(t *testing.T, srv *httptest.Server) *HTTPClient {
	t.Helper()
	c, err := New(srv.URL, logging.NewNop())
	require.NoError(t, err)
	return c
}

// ---- transport recovery ----

func TestDo_RetriesOnceAfterSuccessfulRefresh(t *testing.T) {
	var resourceCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/documents/user", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		if atomic.AddInt32(&resourceCalls, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"documents": []map[string]any{{"id": "d1", "title": "Notes"}},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ref := &fakeRefresher{}
	ann := &fakeAnnouncer{}
	c.BindSession(ref, ann)

	docs, err := c.UserDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "d1", docs[0].ID)

	require.EqualValues(t, 2, atomic.LoadInt32(&resourceCalls), "one retry after refresh")
	require.EqualValues(t, 1, atomic.LoadInt32(&ref.calls))
	require.EqualValues(t, 0, atomic.LoadInt32(&ann.calls))
}

func TestDo_SecondUnauthorizedPropagatesWithoutAnotherRefresh(t *testing.T) {
	var resourceCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&resourceCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ref := &fakeRefresher{}
	c.BindSession(ref, &fakeAnnouncer{})

	_, err := c.UserDocuments(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	require.EqualValues(t, 2, atomic.LoadInt32(&resourceCalls), "exactly one resend, never more")
	require.EqualValues(t, 1, atomic.LoadInt32(&ref.calls), "second 401 must not trigger another refresh")
}

func TestDo_FailedRefreshPropagatesOriginalFailure(t *testing.T) {
	var resourceCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&resourceCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ref := &fakeRefresher{err: ErrUnauthorized}
	c.BindSession(ref, &fakeAnnouncer{})

	_, err := c.UserDocuments(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.EqualValues(t, 1, atomic.LoadInt32(&resourceCalls), "no resend when refresh fails")
}

// ---- auth endpoints are never retried ----

func TestLogin_UnauthorizedBroadcastsAndNeverRetries(t *testing.T) {
	var loginCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		atomic.AddInt32(&loginCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ref := &fakeRefresher{}
	ann := &fakeAnnouncer{}
	c.BindSession(ref, ann)

	_, err := c.Login(context.Background(), "bad-token")
	require.ErrorIs(t, err, ErrUnauthorized)

	require.EqualValues(t, 1, atomic.LoadInt32(&loginCalls))
	require.EqualValues(t, 0, atomic.LoadInt32(&ref.calls), "auth endpoints never trigger recovery")
	require.EqualValues(t, 1, atomic.LoadInt32(&ann.calls))
}

func TestRefresh_UnauthorizedBroadcastsAndNeverRetries(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/refresh", r.URL.Path)
		atomic.AddInt32(&refreshCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ref := &fakeRefresher{}
	ann := &fakeAnnouncer{}
	c.BindSession(ref, ann)

	err := c.Refresh(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	require.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))
	require.EqualValues(t, 0, atomic.LoadInt32(&ref.calls))
	require.EqualValues(t, 1, atomic.LoadInt32(&ann.calls))
}

func TestLogout_FailureDoesNotBroadcast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ann := &fakeAnnouncer{}
	c.BindSession(&fakeRefresher{}, ann)

	err := c.Logout(context.Background())
	require.Error(t, err)
	require.EqualValues(t, 0, atomic.LoadInt32(&ann.calls), "logout failures are absorbed locally")
}

// ---- full scenario: login, 401, refresh, retry ----

func TestScenario_LoginThen401ThenRefreshThenRetry(t *testing.T) {
	// Stateful backend: login and refresh rotate the session cookie;
	// the resource endpoint requires the newest cookie value.
	var current string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		current = "tok-1"
		http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, Value: current, Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": "u1"}})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		current = "tok-2"
		http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, Value: current, Path: "/"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/documents/user", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(accessTokenCookie)
		if err != nil || ck.Value != "tok-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"documents": []map[string]any{{"id": "d1"}},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	// Wire the refresher to the client's own refresh endpoint, as the
	// session coordinator does in production.
	c.BindSession(&fakeRefresher{fn: c.Refresh}, &fakeAnnouncer{})

	user, err := c.Login(context.Background(), "google-id-token")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	// First attempt carries tok-1, gets a 401, refreshes to tok-2, and the
	// retried request succeeds: the caller never sees the 401.
	docs, err := c.UserDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

// ---- cookie introspection ----

func TestAccessTokenExpiry(t *testing.T) {
	exp := time.Now().Add(42 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, Value: signed, Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": "u1"}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err = c.Login(context.Background(), "id-token")
	require.NoError(t, err)

	got, ok := c.AccessTokenExpiry()
	require.True(t, ok)
	require.WithinDuration(t, exp, got, time.Second)
}

func TestAccessTokenExpiry_NoCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, ok := c.AccessTokenExpiry()
	require.False(t, ok)
}

// ---- error mapping ----

func TestDo_ServerDownMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	c := newTestClient(t, srv)
	_, err := c.UserDocuments(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestAPIError_CarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "document not found"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Document(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "document not found", apiErr.Message)
}

func TestMultipartUpload_FieldsAndFileArrive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Algebra notes", r.FormValue("title"))
		require.Equal(t, "true", r.FormValue("isPublic"))
		require.ElementsMatch(t, []string{"math", "algebra"}, r.MultipartForm.Value["keywords"])

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "notes.pdf", hdr.Filename)

		_ = json.NewEncoder(w).Encode(map[string]any{"document": map[string]any{"id": "d9"}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	public := true
	doc, err := c.CreateDocument(context.Background(), models.DocumentUpload{
		Title:    "Algebra notes",
		IsPublic: &public,
		Keywords: []string{"math", "algebra"},
		FileName: "notes.pdf",
		File:     []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	require.Equal(t, "d9", doc.ID)
}

// ---- backend routes ----

func TestShareListings_HitScopedRoutes(t *testing.T) {
	var gets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		gets = append(gets, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ctx := context.Background()

	_, err := c.SharedDocuments(ctx)
	require.NoError(t, err)
	_, err = c.DocumentShares(ctx, "d1")
	require.NoError(t, err)
	_, err = c.SharedLectures(ctx)
	require.NoError(t, err)
	_, err = c.LectureShares(ctx, "l1")
	require.NoError(t, err)

	require.Equal(t, []string{
		"/api/document-shares/shared-with-me",
		"/api/document-shares/by-document/d1",
		"/api/lecture-shares",
		"/api/lecture-shares/by-lecture/l1",
	}, gets)
}

func TestRevokeDocumentShare_DeletesByShareID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/document-shares/s1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	require.NoError(t, c.RevokeDocumentShare(context.Background(), "s1"))
}

func TestSearchQuestions_QueriesQuestionsCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/qa/questions", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "derivatives", q.Get("q"))
		require.Equal(t, "calculus", q.Get("tag"))
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "10", q.Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"questions":  []map[string]any{{"id": "q1"}},
			"pagination": map[string]any{"page": 2, "totalPages": 3},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	qs, pg, err := c.SearchQuestions(context.Background(), models.ListQuery{
		Query: "derivatives",
		Tag:   "calculus",
		Page:  2,
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.Equal(t, 3, pg.TotalPages)
}

func TestCollectionItems_Routes(t *testing.T) {
	type seen struct {
		method string
		path   string
		kind   string
		body   map[string]any
	}
	var calls []seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := seen{method: r.Method, path: r.URL.Path, kind: r.URL.Query().Get("kind")}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&s.body)
		}
		calls = append(calls, s)
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ctx := context.Background()

	err := c.AddCollectionItems(ctx, "c1", []models.CollectionItemInput{
		{Kind: models.SavedKindLecture, Ref: "l1", TitleOverride: "Week 1"},
	})
	require.NoError(t, err)
	require.NoError(t, c.RemoveCollectionItem(ctx, "c1", "i1", models.SavedKindLecture))
	require.NoError(t, c.ReorderCollectionItems(ctx, "c1", models.SavedKindLecture, []string{"i2", "i1"}))

	require.Len(t, calls, 3)

	require.Equal(t, http.MethodPost, calls[0].method)
	require.Equal(t, "/api/collections/c1/items", calls[0].path)
	require.Equal(t, []any{map[string]any{
		"kind": "lecture", "ref": "l1", "titleOverride": "Week 1",
	}}, calls[0].body["items"])

	require.Equal(t, http.MethodDelete, calls[1].method)
	require.Equal(t, "/api/collections/c1/items/i1", calls[1].path)
	require.Equal(t, "lecture", calls[1].kind)

	require.Equal(t, http.MethodPost, calls[2].method)
	require.Equal(t, "/api/collections/c1/items/reorder", calls[2].path)
	require.Equal(t, "lecture", calls[2].body["kind"])
	require.Equal(t, []any{"i2", "i1"}, calls[2].body["order"])
}
