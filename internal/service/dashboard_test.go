package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"monteuros/internal/backend"
	"monteuros/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardLoader_MockModeUsesFallback(t *testing.T) {
	l := NewDashboardLoader(backend.NewMockClient(), NewNotifier(), logger.Nop())
	assert.Equal(t, StatusChecking, l.Status())

	data := l.Load(context.Background())

	assert.Equal(t, StatusError, data.Status)
	assert.Equal(t, StatusError, l.Status())
	assert.True(t, data.Fallback)
	require.Len(t, data.Projects, 2)
	assert.Equal(t, "1", data.Projects[0].ID)
	assert.Equal(t, "2", data.Projects[1].ID)
	assert.Contains(t, data.Projects[0].Title, "F470 Installatie")
	assert.Contains(t, data.Projects[1].Title, "Storing S2125")
	require.NotNil(t, data.Projects[1].Customer)
	assert.Equal(t, "Eibergen", data.Projects[1].Customer.City)
}

func TestDashboardLoader_RealBackend(t *testing.T) {
	client := restBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.Header().Set("Content-Range", "*/7")
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			assert.Equal(t, "/rest/v1/projects", r.URL.Path)
			assert.Equal(t, "*,customer:customers(*)", r.URL.Query().Get("select"))
			assert.Equal(t, "created_at.desc.nullslast", r.URL.Query().Get("order"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`[{"id":"p-1","title":"Onderhoud F2120","status":"active","priority":"low",
				"created_at":"2025-05-01T10:00:00Z","updated_at":"2025-05-01T10:00:00Z",
				"customer":{"id":"c-1","name":"Fam. de Boer","city":"Haaksbergen","created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"}}]`))
		}
	})
	l := NewDashboardLoader(client, NewNotifier(), logger.Nop())

	data := l.Load(context.Background())

	assert.Equal(t, StatusConnected, data.Status)
	assert.False(t, data.Fallback)
	require.Len(t, data.Projects, 1)
	assert.Equal(t, "p-1", data.Projects[0].ID)
	require.NotNil(t, data.Projects[0].Customer)
	assert.Equal(t, "Fam. de Boer", data.Projects[0].Customer.Name)
}

func TestDashboardLoader_PostgresTimestampsKeepList(t *testing.T) {
	client := restBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"p-1","title":"Onderhoud F2120","status":"active","priority":"low",
			 "created_at":"2025-05-01 10:00:00.123456+02","updated_at":null,
			 "customer":{"id":"c-1","name":"Fam. de Boer","created_at":"2025-01-01","updated_at":"garbage"}},
			{"id":"p-2","title":"Storing S2125","status":"active","priority":"urgent",
			 "created_at":"2025-04-30T08:15:00","updated_at":""}]`))
	})
	l := NewDashboardLoader(client, NewNotifier(), logger.Nop())

	projects, fallback := l.LoadProjects(context.Background())

	assert.False(t, fallback)
	require.Len(t, projects, 2)
	assert.Equal(t, time.Date(2025, 5, 1, 8, 0, 0, 123456000, time.UTC), projects[0].CreatedAt.UTC())
	assert.True(t, projects[0].UpdatedAt.IsZero())
	require.NotNil(t, projects[0].Customer)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), projects[0].Customer.CreatedAt.Time)
	assert.True(t, projects[0].Customer.UpdatedAt.IsZero())
	assert.Equal(t, time.Date(2025, 4, 30, 8, 15, 0, 0, time.UTC), projects[1].CreatedAt.Time)
}

func TestDashboardLoader_EmptyListIsNotFallback(t *testing.T) {
	client := restBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	l := NewDashboardLoader(client, NewNotifier(), logger.Nop())

	projects, fallback := l.LoadProjects(context.Background())

	assert.False(t, fallback)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

// The connectivity check and the list fetch are independent: the check may
// succeed while the list falls back.
func TestDashboardLoader_CheckAndListRace(t *testing.T) {
	client := restBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		if strings.Contains(r.URL.RawQuery, "customers") {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Could not find a relationship"}`))
		}
	})
	l := NewDashboardLoader(client, NewNotifier(), logger.Nop())

	data := l.Load(context.Background())

	assert.Equal(t, StatusConnected, data.Status)
	assert.True(t, data.Fallback)
	assert.Len(t, data.Projects, 2)
}

func TestDashboardLoader_PublishesConnectionStatus(t *testing.T) {
	events := NewNotifier()
	_, ch := events.Subscribe()
	l := NewDashboardLoader(backend.NewMockClient(), events, logger.Nop())

	l.CheckConnection(context.Background())

	e := <-ch
	assert.Equal(t, UIEventConnection, e.Type)
	assert.Equal(t, StatusError, e.Data)
}
