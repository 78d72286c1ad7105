// Package web serves the multi-step form as a server-rendered HTML page. Each
// browser session gets its own controller and page state; the storage key is
// derived from the session cookie so concurrent visitors never share a record.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstep/pkg/controller"
	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/renderers/vanilla"
	"github.com/goliatone/go-formstep/pkg/storage"
)

const (
	// DefaultCookieName carries the session id.
	DefaultCookieName = "formstep_session"
	// ActionField is the form field naming the control that was used.
	ActionField = "action"
	// DefaultMaxSessions caps the sessions kept in memory.
	DefaultMaxSessions = 1000
	// DefaultSessionTTL drops sessions idle for longer than this.
	DefaultSessionTTL = 30 * time.Minute
)

// Alerts shown on the page when a request is rejected.
const (
	alertUnavailable = "That action is not available on this step."
	alertUnknown     = "Unknown action."
	alertBadPayload  = "The form could not be read."
)

// Option configures the server.
type Option func(*Server)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithKeyPrefix sets the storage key prefix; keys look like "<prefix>:<session>".
func WithKeyPrefix(prefix string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			s.keyPrefix = trimmed
		}
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.cookieName = trimmed
		}
	}
}

// WithControllerOptions passes options to every controller the server builds.
// WithKey is applied after them and always wins.
func WithControllerOptions(options ...controller.Option) Option {
	return func(s *Server) {
		s.ctrlOptions = append(s.ctrlOptions, options...)
	}
}

// WithSessionIDs overrides the session id generator.
func WithSessionIDs(next func() string) Option {
	return func(s *Server) {
		if next != nil {
			s.newID = next
		}
	}
}

// WithSessionLimit caps how many sessions are held at once. When the cap is
// reached the least recently used session is dropped; its saved record stays
// in the store.
func WithSessionLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionTTL drops sessions idle for longer than ttl. Zero disables idle
// expiry.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl >= 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server is an http.Handler rendering the form.
type Server struct {
	store       storage.Store
	renderer    *vanilla.Renderer
	logger      *zap.Logger
	keyPrefix   string
	cookieName  string
	ctrlOptions []controller.Option
	newID       func() string
	maxSessions int
	sessionTTL  time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	mux      *http.ServeMux
}

type session struct {
	mu          sync.Mutex
	page        *vanilla.Page
	ctrl        *controller.Controller
	handlers    controller.Handlers
	initialized bool

	// guarded by Server.mu
	lastSeen time.Time
}

func (s *session) On(action model.ActionID, handler controller.Handler) {
	s.handlers.On(action, handler)
}

// New builds a server around store and renderer.
func New(store storage.Store, renderer *vanilla.Renderer, options ...Option) (*Server, error) {
	if store == nil {
		return nil, errors.New("web: store is required")
	}
	if renderer == nil {
		return nil, errors.New("web: renderer is required")
	}
	s := &Server{
		store:       store,
		renderer:    renderer,
		logger:      zap.NewNop(),
		keyPrefix:   storage.DefaultKey,
		cookieName:  DefaultCookieName,
		newID:       uuid.NewString,
		maxSessions: DefaultMaxSessions,
		sessionTTL:  DefaultSessionTTL,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleForm)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux = mux
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Key returns the storage key used for a session id.
func (s *Server) Key(sessionID string) string {
	return s.keyPrefix + ":" + sessionID
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within grace.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	s.logger.Info("listening", zap.String("addr", addr))

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("web: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	id, sess, err := s.session(w, r)
	if err != nil {
		s.logger.Error("create session", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	ctx := r.Context()
	status := http.StatusOK
	sess.page.Alert = ""

	if r.Method == http.MethodGet || !sess.initialized {
		sess.page.Reset()
		if err := sess.ctrl.Initialize(ctx); err != nil {
			s.logger.Error("initialise form", zap.String("key", sess.ctrl.Key()), zap.Error(err))
			http.Error(w, "could not load saved progress", http.StatusInternalServerError)
			return
		}
		sess.initialized = true
	}

	if r.Method == http.MethodPost {
		var alert string
		status, alert, err = s.dispatch(ctx, sess, r)
		if err != nil {
			http.Error(w, "could not save progress", status)
			return
		}
		sess.page.Alert = alert
		if sess.ctrl.Submitted() {
			s.forget(id, sess)
		}
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		s.writeJSON(w, sess, status)
		return
	}

	out, err := s.renderer.Render(ctx, sess.page)
	if err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.logger.Debug("write response", zap.Error(err))
	}
}

// dispatch applies the posted values and action. A rejected request yields a
// 4xx status and an alert for the page; err is set only when the request
// could not be served at all.
func (s *Server) dispatch(ctx context.Context, sess *session, r *http.Request) (int, string, error) {
	if err := r.ParseForm(); err != nil {
		s.logger.Debug("parse form", zap.Error(err))
		return http.StatusBadRequest, alertBadPayload, nil
	}
	values := make(map[model.FieldID]string, len(model.Fields()))
	for _, field := range model.Fields() {
		if _, ok := r.PostForm[string(field)]; ok {
			values[field] = r.PostForm.Get(string(field))
		}
	}
	sess.page.Fill(values)
	sess.page.Notice = ""

	action := model.ActionID(strings.TrimSpace(r.PostForm.Get(ActionField)))
	err := sess.handlers.Dispatch(ctx, action)
	switch {
	case err == nil:
		return http.StatusOK, "", nil
	case errors.Is(err, controller.ErrUnknownAction):
		s.logger.Debug("reject action", zap.String("action", string(action)), zap.Error(err))
		return http.StatusBadRequest, alertUnknown, nil
	case errors.Is(err, controller.ErrStaleAction),
		errors.Is(err, controller.ErrSubmitted),
		errors.Is(err, controller.ErrAtFirstStep),
		errors.Is(err, controller.ErrAtLastStep),
		errors.Is(err, controller.ErrNotOnSubmitStep):
		s.logger.Debug("reject action", zap.String("action", string(action)), zap.String("key", sess.ctrl.Key()), zap.Error(err))
		return http.StatusConflict, alertUnavailable, nil
	default:
		s.logger.Error("handle action", zap.String("action", string(action)), zap.String("key", sess.ctrl.Key()), zap.Error(err))
		return http.StatusInternalServerError, "", err
	}
}

type snapshot struct {
	Step      int               `json:"step"`
	Submitted bool              `json:"submitted"`
	Data      model.FormData    `json:"data"`
	Errors    map[string]string `json:"errors,omitempty"`
	Alert     string            `json:"alert,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, sess *session, status int) {
	snap := snapshot{
		Step:      sess.ctrl.Current(),
		Submitted: sess.ctrl.Submitted(),
		Data:      sess.ctrl.Data(),
		Alert:     sess.page.Alert,
	}
	if len(sess.page.Errors) > 0 {
		snap.Errors = make(map[string]string, len(sess.page.Errors))
		for field, msg := range sess.page.Errors {
			snap.Errors[string(field)] = msg
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.logger.Debug("write json response", zap.Error(err))
	}
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, *session, error) {
	id := ""
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		id = strings.TrimSpace(cookie.Value)
	}
	if !validSessionID(id) {
		id = ""
	}
	if id == "" {
		id = s.newID()
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if sess, ok := s.sessions[id]; ok && !s.expired(sess, now) {
		sess.lastSeen = now
		return id, sess, nil
	}
	s.evict(now)

	sess := &session{handlers: controller.Handlers{}, lastSeen: now}
	opts := append([]controller.Option{controller.WithLogger(s.logger)}, s.ctrlOptions...)
	opts = append(opts, controller.WithKey(s.Key(id)))
	page := vanilla.NewPage(model.DefaultSteps())
	ctrl, err := controller.New(s.store, page, opts...)
	if err != nil {
		return "", nil, err
	}
	page.Steps = ctrl.Steps()
	ctrl.Bind(sess)
	sess.page = page
	sess.ctrl = ctrl
	s.sessions[id] = sess
	return id, sess, nil
}

func (s *Server) expired(sess *session, now time.Time) bool {
	return s.sessionTTL > 0 && now.Sub(sess.lastSeen) > s.sessionTTL
}

// evict drops idle sessions, then the least recently used ones until there
// is room for one more. Caller holds s.mu.
func (s *Server) evict(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
	for len(s.sessions) >= s.maxSessions {
		oldestID := ""
		var oldest time.Time
		for id, sess := range s.sessions {
			if oldestID == "" || sess.lastSeen.Before(oldest) {
				oldestID, oldest = id, sess.lastSeen
			}
		}
		delete(s.sessions, oldestID)
		s.logger.Debug("evict session", zap.String("key", s.Key(oldestID)))
	}
}

// forget drops a finished session; the next request for id starts afresh.
func (s *Server) forget(id string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[id] == sess {
		delete(s.sessions, id)
	}
}

// validSessionID keeps cookie values usable as storage key suffixes.
func validSessionID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}
