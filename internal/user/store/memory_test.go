package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recom/internal/sentinel"
	"recom/internal/user/models"
)

func TestInMemoryLifecycle(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, s.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	got, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	got.Email = "ada@lovelace.dev"
	require.NoError(t, s.Update(ctx, got))
	again, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@lovelace.dev", again.Email)

	require.NoError(t, s.Delete(ctx, u.ID))
	_, err = s.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryIDsAreNotReused(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	first := &models.User{Name: "Ada"}
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Delete(ctx, first.ID))

	second := &models.User{Name: "Grace"}
	require.NoError(t, s.Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)
}

func TestInMemoryListOrderedByID(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	for _, name := range []string{"Ada", "Grace", "Edsger"} {
		require.NoError(t, s.Create(ctx, &models.User{Name: name}))
	}

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Ada", users[0].Name)
	assert.Equal(t, "Edsger", users[2].Name)
}

func TestInMemoryUnknownID(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	assert.ErrorIs(t, s.Update(ctx, &models.User{ID: 5}), sentinel.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 5), sentinel.ErrNotFound)
}
