package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

type fakeStore struct {
	services []models.Service
	err      error
}

func (f *fakeStore) ListServices(ctx context.Context) ([]models.Service, error) {
	return f.services, f.err
}

func TestListAvailable_SeedOnly(t *testing.T) {
	cat := New(&fakeStore{})

	entries, err := cat.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, len(Seed))

	// ordem da seed preservada
	for i, s := range Seed {
		assert.Equal(t, s.ID, entries[i].ID)
		assert.Equal(t, s.Name, entries[i].Name)
		assert.Equal(t, s.Price, entries[i].Price)
		assert.True(t, entries[i].FromSeed)
	}
}

func TestListAvailable_MergesPersistedAfterSeed(t *testing.T) {
	cat := New(&fakeStore{
		services: []models.Service{
			{ID: "spa-dos-labios", Name: "Spa dos Lábios", Price: 45, Description: "Hidratação labial."},
		},
	})

	entries, err := cat.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, len(Seed)+1)

	last := entries[len(entries)-1]
	assert.Equal(t, "spa-dos-labios", last.ID)
	assert.False(t, last.FromSeed)
}

func TestListAvailable_SeedWinsOnDuplicateID(t *testing.T) {
	cat := New(&fakeStore{
		services: []models.Service{
			{ID: "henna", Name: "Henna Alterada", Price: 999},
		},
	})

	entries, err := cat.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, len(Seed))

	for _, e := range entries {
		if e.ID == "henna" {
			assert.Equal(t, "Henna", e.Name)
			assert.Equal(t, 60.00, e.Price)
			assert.True(t, e.FromSeed)
		}
	}
}

func TestListAvailable_PropagatesStoreError(t *testing.T) {
	cat := New(&fakeStore{err: errors.New("boom")})

	_, err := cat.ListAvailable(context.Background())
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	cat := New(&fakeStore{
		services: []models.Service{
			{ID: "spa-dos-labios", Name: "Spa dos Lábios", Price: 45},
		},
	})

	seeded, err := cat.Resolve(context.Background(), "brow-lamination")
	require.NoError(t, err)
	require.NotNil(t, seeded)
	assert.Equal(t, 150.00, seeded.Price)
	assert.True(t, seeded.FromSeed)

	persisted, err := cat.Resolve(context.Background(), "spa-dos-labios")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.False(t, persisted.FromSeed)

	missing, err := cat.Resolve(context.Background(), "nao-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSnapshot_PreservesRequestOrder(t *testing.T) {
	cat := New(&fakeStore{})

	snaps, unknown, err := cat.Snapshot(context.Background(), []string{"tintura", "henna"})
	require.NoError(t, err)
	assert.Empty(t, unknown)
	require.Len(t, snaps, 2)
	assert.Equal(t, "tintura", snaps[0].ID)
	assert.Equal(t, "henna", snaps[1].ID)
	assert.Equal(t, 70.00, snaps[0].Price)
	assert.Equal(t, 60.00, snaps[1].Price)
}

func TestSnapshot_UnknownIDReturnsID(t *testing.T) {
	cat := New(&fakeStore{})

	snaps, unknown, err := cat.Snapshot(context.Background(), []string{"henna", "fantasma"})
	require.NoError(t, err)
	assert.Nil(t, snaps)
	assert.Equal(t, "fantasma", unknown)
}
