package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"monteuros/internal/logger"
	"monteuros/internal/models"

	"github.com/google/uuid"
	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	postgrest "github.com/supabase-community/postgrest-go"
)

const (
	restPath = "/rest/v1"
	authPath = "/auth/v1"

	// SessionKey is the local storage key of the persisted backend session.
	SessionKey = "monteuros_backend_session"

	maxErrorBody = 64 << 10
)

// SessionStore keeps the backend session across restarts.
// repository.LocalStore satisfies it.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Option configures a RESTClient.
type Option func(*RESTClient)

// WithSessionStore persists the signed-in session in store.
func WithSessionStore(store SessionStore) Option {
	return func(c *RESTClient) { c.store = store }
}

// WithLogger sets the logger used for session persistence failures.
func WithLogger(log *logger.Logger) Option {
	return func(c *RESTClient) { c.log = log }
}

// RESTClient talks to a Supabase project: PostgREST for tables, GoTrue for auth.
type RESTClient struct {
	cfg       Config
	timeout   time.Duration
	transport http.RoundTripper
	store     SessionStore
	log       *logger.Logger
	now       func() time.Time

	mu        sync.RWMutex
	session   *models.Session
	restored  bool
	listeners map[string]AuthListener
}

var (
	_ Client = (*RESTClient)(nil)
	_ Auth   = (*RESTClient)(nil)
)

// NewRESTClient builds the real client for cfg.
func NewRESTClient(cfg Config, opts ...Option) *RESTClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &RESTClient{
		cfg:       cfg,
		timeout:   timeout,
		transport: http.DefaultTransport,
		log:       logger.Nop(),
		now:       time.Now,
		listeners: make(map[string]AuthListener),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RESTClient) Auth() Auth               { return c }
func (c *RESTClient) From(table string) *Query { return newQuery(c, table) }
func (c *RESTClient) IsMock() bool             { return false }

// ---- transport ----

// boundTransport runs every request under ctx and turns error statuses into
// *APIError, so both SDKs report the decoded backend error.
type boundTransport struct {
	ctx  context.Context
	next http.RoundTripper
}

func (t boundTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req.WithContext(t.ctx))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, decodeAPIError(resp.StatusCode, raw)
}

// errorBody is the union of PostgREST and GoTrue error payloads.
type errorBody struct {
	Code             any    `json:"code"`
	Message          string `json:"message"`
	Details          string `json:"details"`
	Hint             string `json:"hint"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}
	var b errorBody
	if err := json.Unmarshal(raw, &b); err == nil {
		apiErr.Details, apiErr.Hint = b.Details, b.Hint
		if b.Code != nil {
			apiErr.Code = fmt.Sprint(b.Code)
		}
		for _, m := range []string{b.ErrorDescription, b.Msg, b.Message, b.Error} {
			if m != "" {
				apiErr.Message = m
				break
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// wrapErr surfaces an *APIError as is and wraps anything else with op.
func wrapErr(op string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ---- auth ----

func (c *RESTClient) authClient(ctx context.Context, token string) gotrue.Client {
	client := gotrue.New("", c.cfg.Key).
		WithCustomGoTrueURL(c.cfg.baseURL() + authPath).
		WithClient(http.Client{Transport: boundTransport{ctx: ctx, next: c.transport}})
	if token != "" {
		client = client.WithToken(token)
	}
	return client
}

// SignInWithPassword exchanges credentials for a session and notifies listeners.
func (c *RESTClient) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.authClient(ctx, "").SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, wrapErr("sign in", err)
	}
	if res == nil || res.AccessToken == "" {
		return nil, nil
	}

	expiresAt := res.ExpiresAt * 1000
	if expiresAt == 0 {
		expiresAt = c.now().Add(time.Duration(res.ExpiresIn) * time.Second).UnixMilli()
	}
	s := &models.Session{
		User:        userFromAuth(res.User),
		AccessToken: res.AccessToken,
		ExpiresAt:   expiresAt,
		Provenance:  models.ProvenanceBackend,
	}

	c.mu.Lock()
	c.session = s
	c.restored = true
	c.mu.Unlock()
	c.persist(ctx, s)
	c.notify(EventSignedIn, s)
	return s, nil
}

// GetSession returns the signed-in session, or nil when there is none or it expired.
func (c *RESTClient) GetSession(ctx context.Context) (*models.Session, error) {
	s := c.current(ctx)
	if s == nil {
		return nil, nil
	}

	now := c.now()
	if s.ExpiresAt > 0 && s.Expiry().Before(now) {
		c.clearSession(ctx)
		return nil, nil
	}
	claims, err := parseAccessToken(s.AccessToken, c.cfg.JWTSecret)
	if err != nil {
		if c.cfg.JWTSecret != "" {
			c.clearSession(ctx)
			return nil, err
		}
		// opaque tokens cannot be inspected without a secret
		return s, nil
	}
	if claims.expired(now) {
		c.clearSession(ctx)
		return nil, nil
	}
	return s, nil
}

// GetUser asks the backend for the user behind the current session.
func (c *RESTClient) GetUser(ctx context.Context) (*models.User, error) {
	s, err := c.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoSession
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	res, err := c.authClient(ctx, s.AccessToken).GetUser()
	if err != nil {
		return nil, wrapErr("get user", err)
	}
	u := userFromAuth(res.User)
	return &u, nil
}

// SignOut revokes the session on the backend. The local session is dropped either way.
func (c *RESTClient) SignOut(ctx context.Context) error {
	s := c.current(ctx)
	c.clearSession(ctx)

	var err error
	if s != nil {
		tctx, cancel := context.WithTimeout(ctx, c.timeout)
		if lerr := c.authClient(tctx, s.AccessToken).Logout(); lerr != nil {
			err = wrapErr("sign out", lerr)
		}
		cancel()
	}
	c.notify(EventSignedOut, nil)
	return err
}

// OnAuthStateChange registers listener for SIGNED_IN / SIGNED_OUT events.
func (c *RESTClient) OnAuthStateChange(listener AuthListener) (Subscription, error) {
	if listener == nil {
		return nil, fmt.Errorf("nil auth listener")
	}
	id := uuid.NewString()
	c.mu.Lock()
	c.listeners[id] = listener
	c.mu.Unlock()
	return &restSubscription{client: c, id: id}, nil
}

type restSubscription struct {
	client *RESTClient
	id     string
	once   sync.Once
}

func (s *restSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.client.mu.Lock()
		delete(s.client.listeners, s.id)
		s.client.mu.Unlock()
	})
}

func (c *RESTClient) notify(event string, s *models.Session) {
	c.mu.RLock()
	listeners := make([]AuthListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.RUnlock()
	for _, l := range listeners {
		l(event, s)
	}
}

func userFromAuth(u types.User) models.User {
	out := models.User{Email: u.Email}
	if u.ID != uuid.Nil {
		out.ID = u.ID.String()
	}
	if name, ok := u.UserMetadata["full_name"].(string); ok {
		out.UserMetadata.FullName = name
	}
	return out
}

// ---- session persistence ----

// current returns the in-memory session, restoring it from the store on
// first use.
func (c *RESTClient) current(ctx context.Context) *models.Session {
	c.mu.RLock()
	s, restored := c.session, c.restored
	c.mu.RUnlock()
	if s != nil || restored || c.store == nil {
		return s
	}

	loaded := c.load(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.restored {
		c.restored = true
		c.session = loaded
	}
	return c.session
}

func (c *RESTClient) load(ctx context.Context) *models.Session {
	raw, ok, err := c.store.Get(ctx, SessionKey)
	if err != nil {
		c.log.Warnw("backend_session_read_failed", "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil || s.AccessToken == "" {
		c.log.Warnw("backend_session_malformed", "err", err)
		c.forget(ctx)
		return nil
	}
	s.Provenance = models.ProvenanceBackend
	return &s
}

func (c *RESTClient) persist(ctx context.Context, s *models.Session) {
	if c.store == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		c.log.Warnw("backend_session_encode_failed", "err", err)
		return
	}
	if err := c.store.Set(ctx, SessionKey, string(raw)); err != nil {
		c.log.Warnw("backend_session_persist_failed", "err", err)
	}
}

func (c *RESTClient) forget(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.Delete(ctx, SessionKey); err != nil {
		c.log.Warnw("backend_session_delete_failed", "err", err)
	}
}

func (c *RESTClient) clearSession(ctx context.Context) {
	c.mu.Lock()
	c.session = nil
	c.restored = true
	c.mu.Unlock()
	c.forget(ctx)
}

// ---- tables ----

func (c *RESTClient) execute(ctx context.Context, q *Query, dest any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pg := postgrest.NewClient(c.cfg.baseURL()+restPath, "", map[string]string{
		"apikey":        c.cfg.Key,
		"Authorization": "Bearer " + c.bearer(ctx),
	})
	if pg.ClientError != nil {
		return 0, fmt.Errorf("postgrest client: %w", pg.ClientError)
	}
	pg.Transport.Parent = boundTransport{ctx: ctx, next: c.transport}

	fb, err := buildFilter(pg, q, dest)
	if err != nil {
		return 0, err
	}
	raw, count, err := fb.Execute()
	if err != nil {
		return 0, wrapErr(q.table, err)
	}
	if dest != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, dest); err != nil {
			return count, fmt.Errorf("decode %s rows: %w", q.table, err)
		}
	}
	return count, nil
}

// buildFilter translates q into a PostgREST request. Writes return the
// affected rows only when dest wants them.
func buildFilter(pg *postgrest.Client, q *Query, dest any) (*postgrest.FilterBuilder, error) {
	returning := "minimal"
	if dest != nil {
		returning = "representation"
	}

	var fb *postgrest.FilterBuilder
	qb := pg.From(q.table)
	switch q.op {
	case opSelect:
		count := ""
		if q.head {
			count = "exact"
		}
		fb = qb.Select(q.columns, count, q.head)
	case opInsert:
		fb = qb.Insert(q.body, false, "", returning, "")
	case opUpdate:
		fb = qb.Update(q.body, returning, "")
	case opDelete:
		fb = qb.Delete(returning, "")
	default:
		return nil, fmt.Errorf("unknown operation %d", q.op)
	}
	if pg.ClientError != nil {
		return nil, fmt.Errorf("encode %s body: %w", q.table, pg.ClientError)
	}

	for _, f := range q.filters {
		fb.Eq(f.column, f.value)
	}
	for _, o := range q.orders {
		fb.Order(o.column, &postgrest.OrderOpts{Ascending: o.ascending})
	}
	if q.limit > 0 {
		fb.Limit(q.limit, "")
	}
	if q.single {
		fb.Single()
	}
	return fb, nil
}

func (c *RESTClient) bearer(ctx context.Context) string {
	if s := c.current(ctx); s != nil {
		return s.AccessToken
	}
	return c.cfg.Key
}
