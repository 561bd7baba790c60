package backend

import (
	"context"
	"testing"

	"monteuros/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_Auth(t *testing.T) {
	ctx := context.Background()
	auth := NewMockClient().Auth()

	s, err := auth.GetSession(ctx)
	assert.NoError(t, err)
	assert.Nil(t, s)

	u, err := auth.GetUser(ctx)
	assert.NoError(t, err)
	assert.Nil(t, u)

	sub, err := auth.OnAuthStateChange(func(string, *models.Session) {})
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.NotPanics(t, sub.Unsubscribe)

	s, err = auth.SignInWithPassword(ctx, "test@barts.nl", "test123")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrAuthNotConfigured)

	assert.NoError(t, auth.SignOut(ctx))
}

func TestMockClient_QueryShapes(t *testing.T) {
	ctx := context.Background()
	c := NewMockClient()

	t.Run("ordered and limited select fails with empty rows", func(t *testing.T) {
		var rows []models.Project
		err := c.From("projects").Select("*").Order("created_at", false).Limit(5).Execute(ctx, &rows)
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("filtered select succeeds with no rows", func(t *testing.T) {
		var rows []models.Project
		err := c.From("projects").Select("*").Eq("status", "active").Execute(ctx, &rows)
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("single select fails", func(t *testing.T) {
		var p *models.Project
		err := c.From("projects").Select("*").Eq("id", "1").Single().Execute(ctx, &p)
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.Nil(t, p)
	})

	t.Run("count fails", func(t *testing.T) {
		n, err := c.From("projects").Count(ctx)
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.Zero(t, n)
	})

	t.Run("writes fail", func(t *testing.T) {
		assert.ErrorIs(t, c.From("heatpump_scans").Insert(map[string]any{"a": 1}).Execute(ctx, nil), ErrNotConfigured)
		assert.ErrorIs(t, c.From("projects").Update(map[string]any{"a": 1}).Eq("id", 1).Execute(ctx, nil), ErrNotConfigured)
		assert.ErrorIs(t, c.From("projects").Delete().Eq("id", 1).Execute(ctx, nil), ErrNotConfigured)
	})
}

func TestSetEmpty(t *testing.T) {
	rows := []models.Project{{ID: "stale"}}
	setEmpty(&rows)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	p := &models.Project{ID: "kept"}
	assert.NotPanics(t, func() { setEmpty(&p) })
	assert.Equal(t, "kept", p.ID)

	m := map[string]any{"k": 1}
	assert.NotPanics(t, func() { setEmpty(&m) })
	assert.Len(t, m, 1)

	var nilRows *[]models.Project
	assert.NotPanics(t, func() { setEmpty(nilRows) })
	assert.NotPanics(t, func() { setEmpty(nil) })
	assert.NotPanics(t, func() { setEmpty(rows) })
}

func TestMockClient_SelectResetsStaleRows(t *testing.T) {
	rows := []models.Customer{{ID: "stale"}}
	err := NewMockClient().From("customers").Select("*").Execute(context.Background(), &rows)
	assert.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
