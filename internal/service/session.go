package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"monteuros/internal/backend"
	"monteuros/internal/logger"
	"monteuros/internal/models"
	"monteuros/internal/repository"
)

type SessionState string

const (
	SessionLoading         SessionState = "loading"
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionAuthenticated   SessionState = "authenticated"
)

// MockSessionKey is the local storage key of the persisted mock session.
const MockSessionKey = "monteuros_mock_session"

// Test identity used by the login action.
const (
	TestEmail    = "test@barts.nl"
	TestPassword = "test123"
)

const (
	mockUserID      = "test-monteur-001"
	mockFullName    = "Test Monteur"
	mockAccessToken = "mock-token"
	mockSessionTTL  = 24 * time.Hour
)

// SessionView is the resolver state as exposed to the UI.
type SessionView struct {
	State    SessionState    `json:"state"`
	Session  *models.Session `json:"session"`
	MockMode bool            `json:"mock_mode"`
}

// activityRecorder is the part of the activity log the flows write to.
type activityRecorder interface {
	Record(ctx context.Context, typ models.ActivityType, description string, meta any)
}

// SessionResolver decides who is signed in. It starts in SessionLoading and
// leaves it once Start has resolved a session (or none).
type SessionResolver struct {
	client   backend.Client
	store    repository.LocalStore
	activity activityRecorder
	events   *Notifier
	log      *logger.Logger
	now      func() time.Time

	mu      sync.RWMutex
	state   SessionState
	session *models.Session
	sub     backend.Subscription
	// gen counts session changes. Start drops its result if gen moved
	// while it was resolving.
	gen uint64
}

func NewSessionResolver(
	client backend.Client,
	store repository.LocalStore,
	activity activityRecorder,
	events *Notifier,
	log *logger.Logger,
) *SessionResolver {
	return &SessionResolver{
		client:   client,
		store:    store,
		activity: activity,
		events:   events,
		log:      log,
		now:      time.Now,
		state:    SessionLoading,
	}
}

// Start resolves the initial session. A persisted mock session wins and skips the
// backend entirely; otherwise the backend session is adopted and auth changes are
// followed until Close.
func (r *SessionResolver) Start(ctx context.Context) {
	r.unsubscribe()

	r.mu.RLock()
	gen := r.gen
	r.mu.RUnlock()

	if s, ok := r.loadStoredSession(ctx); ok {
		r.adopt(gen, s)
		return
	}

	sub, err := r.client.Auth().OnAuthStateChange(r.onAuthEvent)
	if err != nil {
		r.log.Warnw("auth_subscribe_failed", "err", err)
	} else {
		r.mu.Lock()
		r.sub = sub
		r.mu.Unlock()
	}

	s, err := r.client.Auth().GetSession(ctx)
	if err != nil {
		r.log.Infow("session_query_failed", "err", err, "mock_mode", r.client.IsMock())
	}
	r.adopt(gen, s)
}

// Login signs in the test identity. Any backend failure falls back to a local
// mock session, so Login always returns a session.
func (r *SessionResolver) Login(ctx context.Context) *models.Session {
	s, err := r.signIn(ctx)
	if err == nil && s != nil {
		r.set(s)
		r.activity.Record(ctx, models.EventLogin, "signed in", loginMeta(s, models.ProvenanceBackend))
		return s
	}
	if err != nil {
		r.log.Infow("backend_login_failed", "err", err)
	} else {
		r.log.Infow("backend_login_without_session")
	}

	mock := newMockSession(r.now())
	if raw, err := json.Marshal(mock); err != nil {
		r.log.Warnw("mock_session_encode_failed", "err", err)
	} else if err := r.store.Set(ctx, MockSessionKey, string(raw)); err != nil {
		r.log.Warnw("mock_session_persist_failed", "err", err)
	}
	r.set(mock)
	r.activity.Record(ctx, models.EventLogin, "signed in", loginMeta(mock, models.ProvenanceMock))
	return mock
}

// Logout clears the persisted mock session and signs out of the backend.
func (r *SessionResolver) Logout(ctx context.Context) {
	if err := r.store.Delete(ctx, MockSessionKey); err != nil {
		r.log.Warnw("mock_session_delete_failed", "err", err)
	}
	if err := r.client.Auth().SignOut(ctx); err != nil {
		r.log.Infow("backend_sign_out_failed", "err", err)
	}
	r.set(nil)
	r.activity.Record(ctx, models.EventLogout, "signed out", nil)
}

func (r *SessionResolver) Current() *models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.session
}

func (r *SessionResolver) State() SessionState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *SessionResolver) Snapshot() SessionView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return SessionView{State: r.state, Session: r.session, MockMode: r.client.IsMock()}
}

// Close drops the auth change subscription.
func (r *SessionResolver) Close() {
	r.unsubscribe()
}

func (r *SessionResolver) unsubscribe() {
	r.mu.Lock()
	sub := r.sub
	r.sub = nil
	r.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

func (r *SessionResolver) onAuthEvent(event string, s *models.Session) {
	r.log.Debugw("auth_event", "event", event)
	r.set(s)
}

// signIn turns a panicking backend into an ordinary error.
func (r *SessionResolver) signIn(ctx context.Context) (s *models.Session, err error) {
	defer func() {
		if p := recover(); p != nil {
			s, err = nil, fmt.Errorf("sign in panicked: %v", p)
		}
	}()
	return r.client.Auth().SignInWithPassword(ctx, TestEmail, TestPassword)
}

// loadStoredSession reads the persisted mock session. ok is false when nothing
// usable is stored; a malformed value is removed.
func (r *SessionResolver) loadStoredSession(ctx context.Context) (*models.Session, bool) {
	raw, ok, err := r.store.Get(ctx, MockSessionKey)
	if err != nil {
		r.log.Warnw("mock_session_read_failed", "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var s *models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		r.log.Warnw("mock_session_malformed", "err", err)
		if err := r.store.Delete(ctx, MockSessionKey); err != nil {
			r.log.Warnw("mock_session_delete_failed", "err", err)
		}
		return nil, false
	}
	if s != nil && s.Provenance == "" {
		s.Provenance = models.ProvenanceMock
	}
	return s, true
}

func (r *SessionResolver) set(s *models.Session) {
	r.mu.Lock()
	view := r.apply(s)
	r.mu.Unlock()

	r.events.Publish(UIEvent{Type: UIEventSession, Data: view})
}

// adopt sets s unless the session changed since gen was read.
func (r *SessionResolver) adopt(gen uint64, s *models.Session) {
	r.mu.Lock()
	if r.gen != gen {
		r.mu.Unlock()
		r.log.Debugw("session_resolve_superseded")
		return
	}
	view := r.apply(s)
	r.mu.Unlock()

	r.events.Publish(UIEvent{Type: UIEventSession, Data: view})
}

// apply must be called with r.mu held.
func (r *SessionResolver) apply(s *models.Session) SessionView {
	r.gen++
	r.session = s
	if s == nil {
		r.state = SessionUnauthenticated
	} else {
		r.state = SessionAuthenticated
	}
	return SessionView{State: r.state, Session: s, MockMode: r.client.IsMock()}
}

func loginMeta(s *models.Session, provenance string) models.SessionActivity {
	return models.SessionActivity{Provenance: provenance, Email: s.User.Email}
}

func newMockSession(now time.Time) *models.Session {
	return &models.Session{
		User: models.User{
			ID:           mockUserID,
			Email:        TestEmail,
			UserMetadata: models.UserMetadata{FullName: mockFullName},
		},
		AccessToken: mockAccessToken,
		ExpiresAt:   now.Add(mockSessionTTL).UnixMilli(),
		Provenance:  models.ProvenanceMock,
	}
}
