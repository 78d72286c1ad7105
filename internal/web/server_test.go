package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/renderers/vanilla"
	"github.com/goliatone/go-formstep/pkg/storage"
)

const testSession = "session-1"

func newTestServer(t *testing.T, store storage.Store) *Server {
	t.Helper()
	renderer, err := vanilla.New()
	require.NoError(t, err)
	srv, err := New(store, renderer, WithSessionIDs(func() string { return testSession }))
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return doAs(t, h, testSession, method, target, form)
}

// doAs sends a request carrying the session cookie id; an empty id sends none.
func doAs(t *testing.T, h http.Handler, id, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if id != "" {
		req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: id})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func step0Form() url.Values {
	return url.Values{
		ActionField: {string(model.ActionNext1)},
		"name":      {"Ada Lovelace"},
		"dob":       {"1990-12-10"},
		"gender":    {"Female"},
	}
}

func step1Form() url.Values {
	return url.Values{
		ActionField: {string(model.ActionNext2)},
		"email":     {"ada@example.com"},
		"phone":     {"5551234567"},
		"address":   {"12 Analytical Row"},
	}
}

func activeStep(t *testing.T, body string) string {
	t.Helper()
	marker := `class="form-step active"`
	idx := strings.Index(body, marker)
	require.NotEqual(t, -1, idx, "no active step in body")
	open := strings.LastIndex(body[:idx], `id="`)
	require.NotEqual(t, -1, open)
	rest := body[open+len(`id="`):]
	return rest[:strings.Index(rest, `"`)]
}

func TestServer_IssuesSessionCookie(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.Equal(t, testSession, cookies[0].Value)
	assert.Equal(t, "step-1", activeStep(t, rec.Body.String()))
}

func TestServer_FullFlow(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	srv := newTestServer(t, store)
	key := srv.Key(testSession)

	rec := do(t, srv, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodPost, "/", step0Form())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "step-2", activeStep(t, rec.Body.String()))

	saved, err := storage.LoadRecord(ctx, store, key)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", saved.Name)
	assert.Empty(t, saved.Email)

	bad := step1Form()
	bad.Set("email", "not-an-email")
	rec = do(t, srv, http.MethodPost, "/", bad)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "step-2", activeStep(t, rec.Body.String()))
	assert.Contains(t, rec.Body.String(), "Please enter a valid email address.")

	rec = do(t, srv, http.MethodPost, "/", step1Form())
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "step-3", activeStep(t, body))
	assert.Contains(t, body, "<p><strong>Email:</strong> ada@example.com</p>")
	assert.NotContains(t, body, "Please enter a valid email address.")

	rec = do(t, srv, http.MethodPost, "/", url.Values{ActionField: {string(model.ActionSubmit)}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Form submitted successfully!")

	_, err = store.Load(ctx, key)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, 0, sessionCount(srv), "a submitted session is dropped")

	rec = do(t, srv, http.MethodPost, "/", url.Values{ActionField: {string(model.ActionBack3)}})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "step-1", activeStep(t, rec.Body.String()))

	rec = do(t, srv, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "step-1", activeStep(t, rec.Body.String()))
	assert.NotContains(t, rec.Body.String(), "Ada Lovelace")
}

func TestServer_ReloadResumesSavedProgress(t *testing.T) {
	store := storage.NewMemory()
	first := newTestServer(t, store)

	do(t, first, http.MethodGet, "/", nil)
	rec := do(t, first, http.MethodPost, "/", step0Form())
	require.Equal(t, http.StatusOK, rec.Code)

	second := newTestServer(t, store)
	rec = do(t, second, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "step-1", activeStep(t, body))
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Contains(t, body, `<option value="Female" selected>`)
}

func TestServer_BackDoesNotSave(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	srv := newTestServer(t, store)

	do(t, srv, http.MethodGet, "/", nil)
	do(t, srv, http.MethodPost, "/", step0Form())

	back := url.Values{ActionField: {string(model.ActionBack2)}, "email": {"typed@example.com"}}
	rec := do(t, srv, http.MethodPost, "/", back)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "step-1", activeStep(t, rec.Body.String()))

	saved, err := storage.LoadRecord(ctx, store, srv.Key(testSession))
	require.NoError(t, err)
	assert.Empty(t, saved.Email)
}

func TestServer_RejectsUnknownAndStaleActions(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())
	do(t, srv, http.MethodGet, "/", nil)

	rec := do(t, srv, http.MethodPost, "/", url.Values{ActionField: {"launch"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), alertUnknown)

	rec = do(t, srv, http.MethodPost, "/", url.Values{ActionField: {string(model.ActionNext2)}})
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, alertUnavailable)
	assert.Equal(t, "step-1", activeStep(t, body))
	assert.NotContains(t, body, "controller:")
	assert.NotContains(t, body, "stale")

	rec = do(t, srv, http.MethodPost, "/?format=json", url.Values{ActionField: {string(model.ActionBack3)}})
	assert.Equal(t, http.StatusConflict, rec.Code)
	var snap snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, alertUnavailable, snap.Alert)

	rec = do(t, srv, http.MethodGet, "/", nil)
	assert.NotContains(t, rec.Body.String(), alertUnavailable, "alerts last one request")
}

func TestServer_SessionLimitEvictsLeastRecentlyUsed(t *testing.T) {
	store := storage.NewMemory()
	renderer, err := vanilla.New()
	require.NoError(t, err)
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	next := 0
	srv, err := New(store, renderer,
		WithSessionLimit(3),
		WithClock(func() time.Time { return now }),
		WithSessionIDs(func() string {
			next++
			return fmt.Sprintf("session-%d", next)
		}),
	)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		now = now.Add(time.Second)
		rec := doAs(t, srv, "", http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.LessOrEqual(t, sessionCount(srv), 3)
	}

	srv.mu.Lock()
	_, kept := srv.sessions["session-50"]
	_, dropped := srv.sessions["session-1"]
	srv.mu.Unlock()
	assert.True(t, kept, "newest session is kept")
	assert.False(t, dropped, "oldest session is evicted")
}

func TestServer_IdleSessionsExpire(t *testing.T) {
	store := storage.NewMemory()
	renderer, err := vanilla.New()
	require.NoError(t, err)
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	srv, err := New(store, renderer,
		WithSessionTTL(time.Minute),
		WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	doAs(t, srv, "idle", http.MethodGet, "/", nil)
	rec := doAs(t, srv, "idle", http.MethodPost, "/", step0Form())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, sessionCount(srv))

	now = now.Add(2 * time.Minute)
	doAs(t, srv, "fresh", http.MethodGet, "/", nil)
	assert.Equal(t, 1, sessionCount(srv), "idle session swept")

	rec = doAs(t, srv, "idle", http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "step-1", activeStep(t, rec.Body.String()))
	assert.Contains(t, rec.Body.String(), `value="Ada Lovelace"`, "saved record outlives the session")
}

func TestServer_JSONSnapshot(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())
	do(t, srv, http.MethodGet, "/", nil)

	form := step0Form()
	form.Set("name", "R2D2")
	rec := do(t, srv, http.MethodPost, "/?format=json", form)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 0, snap.Step)
	assert.False(t, snap.Submitted)
	assert.Equal(t, "Name must contain only letters and spaces.", snap.Errors["name"])
}

func TestServer_MethodAndPath(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	rec := do(t, srv, http.MethodDelete, "/", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, srv, http.MethodGet, "/elsewhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func sessionCount(s *Server) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func TestValidSessionID(t *testing.T) {
	assert.True(t, validSessionID("0b7f6c1e-8d5a-4a53-b0c4-6b7b2c1c9d10"))
	assert.False(t, validSessionID(""))
	assert.False(t, validSessionID("../etc/passwd"))
	assert.False(t, validSessionID(strings.Repeat("a", 65)))
}
