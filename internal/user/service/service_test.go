package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recom/internal/user/models"
	"recom/internal/user/store"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/requestcontext"
)

func newService() *Service {
	return New(store.NewInMemory(), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc := newService()
	now := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	created, err := svc.Create(ctx, models.Profile{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, now, got.CreatedAt)
}

func TestUpdateReplacesProfile(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, err := svc.Create(ctx, models.Profile{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, models.Profile{Name: "Ada L."})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Empty(t, updated.Email)
}

func TestMissingUserIsNotFound(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.Equal(t, "user not found", err.Error())

	_, err = svc.Update(ctx, 1, models.Profile{Name: "x"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	assert.True(t, dErrors.HasCode(svc.Delete(ctx, 1), dErrors.CodeNotFound))
}

func TestList(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	_, err := svc.Create(ctx, models.Profile{Name: "Ada"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.Profile{Name: "Grace"})
	require.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
