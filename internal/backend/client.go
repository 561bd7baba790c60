package backend

import (
	"context"

	"monteuros/internal/models"
)

// Auth events delivered to OnAuthStateChange listeners.
const (
	EventSignedIn  = "SIGNED_IN"
	EventSignedOut = "SIGNED_OUT"
)

// AuthListener receives auth events. session is nil after sign-out.
type AuthListener func(event string, session *models.Session)

// Subscription is returned by OnAuthStateChange.
type Subscription interface {
	Unsubscribe()
}

// Auth is the authentication surface of the backend.
type Auth interface {
	GetSession(ctx context.Context) (*models.Session, error)
	GetUser(ctx context.Context) (*models.User, error)
	OnAuthStateChange(listener AuthListener) (Subscription, error)
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
}

// Client is the backend adapter shared by all components.
type Client interface {
	Auth() Auth
	From(table string) *Query
	IsMock() bool
}

// executor runs a built query against a concrete backend.
type executor interface {
	execute(ctx context.Context, q *Query, dest any) (int64, error)
}

// New selects the real client when cfg is configured and the mock client otherwise.
// opts only apply to the real client.
func New(cfg Config, opts ...Option) Client {
	if !cfg.Configured() {
		return NewMockClient()
	}
	return NewRESTClient(cfg, opts...)
}
