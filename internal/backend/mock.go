package backend

import (
	"context"
	"reflect"

	"monteuros/internal/models"
)

// MockClient stands in for the backend when it is not configured. It never performs I/O.
type MockClient struct{}

var (
	_ Client = (*MockClient)(nil)
	_ Auth   = (*MockClient)(nil)
)

func NewMockClient() *MockClient { return &MockClient{} }

func (m *MockClient) Auth() Auth               { return m }
func (m *MockClient) From(table string) *Query { return newQuery(m, table) }
func (m *MockClient) IsMock() bool             { return true }

func (m *MockClient) GetSession(context.Context) (*models.Session, error) { return nil, nil }
func (m *MockClient) GetUser(context.Context) (*models.User, error)       { return nil, nil }

func (m *MockClient) OnAuthStateChange(AuthListener) (Subscription, error) {
	return inertSubscription{}, nil
}

func (m *MockClient) SignInWithPassword(context.Context, string, string) (*models.Session, error) {
	return nil, ErrAuthNotConfigured
}

func (m *MockClient) SignOut(context.Context) error { return nil }

// execute mirrors the result shapes of an unconfigured backend: ordered or limited
// reads, single-row reads, counts and all writes fail with ErrNotConfigured; plain
// filtered reads succeed with no rows.
func (m *MockClient) execute(_ context.Context, q *Query, dest any) (int64, error) {
	if q.op != opSelect {
		return 0, ErrNotConfigured
	}
	switch {
	case q.head, q.single:
		return 0, ErrNotConfigured
	case len(q.orders) > 0 || q.limit > 0:
		setEmpty(dest)
		return 0, ErrNotConfigured
	default:
		setEmpty(dest)
		return 0, nil
	}
}

// setEmpty resets a slice destination to an empty, non-nil slice. Any other
// destination is left as is.
func setEmpty(dest any) {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	if elem := v.Elem(); elem.Kind() == reflect.Slice {
		elem.Set(reflect.MakeSlice(elem.Type(), 0, 0))
	}
}

type inertSubscription struct{}

func (inertSubscription) Unsubscribe() {}
