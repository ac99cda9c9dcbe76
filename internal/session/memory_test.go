package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/streamcheckout/internal/catalog"
	"github.com/jafarshop/streamcheckout/internal/checkout"
	"github.com/jafarshop/streamcheckout/internal/domain"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	s := checkout.NewSession(NewID())
	require.NoError(t, s.SelectProduct(catalog.MonthlyID))
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.MonthlyID, got.ProductID)

	// stored value is isolated from the caller
	got.Step = domain.StepSuccess
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepProduct, again.Step)
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	s := checkout.NewSession("s-1")
	require.NoError(t, store.Save(ctx, s))

	now = now.Add(59 * time.Second)
	_, err := store.Get(ctx, "s-1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_SweepOnSave(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, checkout.NewSession("old")))
	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Save(ctx, checkout.NewSession("new")))

	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, checkout.NewSession("s-1")))
	require.NoError(t, store.Delete(ctx, "s-1"))

	_, err := store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNewID(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
	assert.Len(t, NewID(), 36)
}
