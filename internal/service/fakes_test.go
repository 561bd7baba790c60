package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"monteuros/internal/backend"
	"monteuros/internal/models"
)

// memStore is an in-memory repository.LocalStore.
type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	deletes int
	getErr  error
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	delete(m.data, key)
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// recorder captures activity events.
type recorder struct {
	mu    sync.Mutex
	types []models.ActivityType
	metas []any
}

func (r *recorder) Record(_ context.Context, typ models.ActivityType, _ string, meta any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, typ)
	r.metas = append(r.metas, meta)
}

func (r *recorder) recorded() []models.ActivityType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ActivityType{}, r.types...)
}

func (r *recorder) lastMeta() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.metas) == 0 {
		return nil
	}
	return r.metas[len(r.metas)-1]
}

// fakeAuth is a scriptable backend.Auth.
type fakeAuth struct {
	mu sync.Mutex

	session    *models.Session
	sessionErr error
	user       *models.User
	signIn     *models.Session
	signInErr  error
	signInHook func()
	subErr     error

	signOuts      int
	unsubscribes  int
	listener      backend.AuthListener
	getSessionHit int

	// When set, GetSession closes entered and waits for release.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeAuth) GetSession(context.Context) (*models.Session, error) {
	if f.release != nil {
		close(f.entered)
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getSessionHit++
	return f.session, f.sessionErr
}

func (f *fakeAuth) GetUser(context.Context) (*models.User, error) { return f.user, nil }

func (f *fakeAuth) OnAuthStateChange(l backend.AuthListener) (backend.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subErr != nil {
		return nil, f.subErr
	}
	f.listener = l
	return fakeSub{f}, nil
}

func (f *fakeAuth) SignInWithPassword(context.Context, string, string) (*models.Session, error) {
	if f.signInHook != nil {
		f.signInHook()
	}
	return f.signIn, f.signInErr
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts++
	return nil
}

type fakeSub struct{ f *fakeAuth }

func (s fakeSub) Unsubscribe() {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	s.f.unsubscribes++
	s.f.listener = nil
}

// fakeClient overrides the auth surface of an underlying client and records
// which tables were queried.
type fakeClient struct {
	backend.Client
	auth backend.Auth

	mu     sync.Mutex
	tables []string
}

func (c *fakeClient) Auth() backend.Auth {
	if c.auth != nil {
		return c.auth
	}
	return c.Client.Auth()
}

func (c *fakeClient) From(table string) *backend.Query {
	c.mu.Lock()
	c.tables = append(c.tables, table)
	c.mu.Unlock()
	return c.Client.From(table)
}

func (c *fakeClient) queried() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.tables...)
}

// restBackend serves h and returns a real client pointed at it.
func restBackend(t *testing.T, h http.HandlerFunc) backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.New(backend.Config{URL: srv.URL, Key: "anon-key"})
}
