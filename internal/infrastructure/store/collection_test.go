package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakan/student-housing/internal/core/domain"
	"github.com/sakan/student-housing/internal/infrastructure/db/memory"
	"github.com/sakan/student-housing/internal/metrics"
)

// failingStore returns err from every call.
type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingStore) Set(context.Context, string, []byte) error        { return f.err }
func (f failingStore) Delete(context.Context, string) error             { return f.err }

func sampleListing() domain.Listing {
	return domain.Listing{
		ID:          "l-1",
		OwnerID:     "o-1",
		Title:       "Room A",
		Address:     "1 Nile St",
		Description: "Bright room",
		Rent:        1000,
		Images:      []string{"x", "data:image/png;base64,AAAA"},
		Approved:    true,
		Type:        domain.ListingPrivate,
		CreatedAt:   time.Date(2024, 3, 1, 12, 30, 45, 123000000, time.UTC),
	}
}

func TestCollection_AbsentKeyIsEmpty(t *testing.T) {
	c := NewCollection[domain.Listing](memory.NewKVStore(), KeyListings)

	items, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCollection_NullValueIsEmpty(t *testing.T) {
	kv := memory.NewKVStore()
	require.NoError(t, kv.Set(context.Background(), KeyListings, []byte("null")))

	items, err := NewCollection[domain.Listing](kv, KeyListings).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCollection_RoundTripListing(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	c := NewCollection[domain.Listing](kv, KeyListings)
	want := sampleListing()

	require.NoError(t, c.Update(ctx, func(items []domain.Listing) ([]domain.Listing, bool) {
		return append(items, want), true
	}))

	raw, found, err := kv.Get(ctx, KeyListings)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, string(raw), `"createdAt":"2024-03-01T12:30:45.123Z"`, "timestamps serialise as ISO-8601 strings")

	got, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, want.CreatedAt.Equal(got[0].CreatedAt))

	got[0].CreatedAt = want.CreatedAt
	assert.Equal(t, want, got[0])
}

func TestCollection_DecodesBrowserStyleDates(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	raw := `[{"id":"c1","studentId":"s1","listingId":"1","content":"nice","createdAt":"2024-05-06T07:08:09.010Z"}]`
	require.NoError(t, kv.Set(ctx, KeyComments, []byte(raw)))

	items, err := NewCollection[domain.Comment](kv, KeyComments).Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, time.Date(2024, 5, 6, 7, 8, 9, 10000000, time.UTC), items[0].CreatedAt.UTC())
}

func TestCollection_UpdateWithoutChangeDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	c := NewCollection[domain.Listing](kv, KeyListings)
	require.NoError(t, c.Update(ctx, func(items []domain.Listing) ([]domain.Listing, bool) {
		return append(items, sampleListing()), true
	}))
	before, _, _ := kv.Get(ctx, KeyListings)
	writes := testutil.ToFloat64(metrics.StoreWritesTotal.WithLabelValues(KeyListings))

	require.NoError(t, c.Update(ctx, func(items []domain.Listing) ([]domain.Listing, bool) {
		return items, false
	}))

	after, _, _ := kv.Get(ctx, KeyListings)
	assert.Equal(t, before, after)
	assert.Equal(t, writes, testutil.ToFloat64(metrics.StoreWritesTotal.WithLabelValues(KeyListings)))
}

func TestCollection_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	require.NoError(t, kv.Set(ctx, KeyListings, []byte(`{not json`)))
	c := NewCollection[domain.Listing](kv, KeyListings)

	_, err := c.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptCollection)

	called := false
	err = c.Update(ctx, func(items []domain.Listing) ([]domain.Listing, bool) {
		called = true
		return items, true
	})
	assert.ErrorIs(t, err, domain.ErrCorruptCollection)
	assert.False(t, called, "update must abort before computing a new collection")

	raw, _, _ := kv.Get(ctx, KeyListings)
	assert.Equal(t, `{not json`, string(raw), "prior bytes stay in place")
}

func TestCollection_StoreFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	c := NewCollection[domain.Listing](failingStore{err: boom}, KeyListings)

	_, err := c.Load(context.Background())
	assert.ErrorIs(t, err, boom)

	err = c.Update(context.Background(), func(items []domain.Listing) ([]domain.Listing, bool) {
		return items, true
	})
	assert.ErrorIs(t, err, boom)
}

func TestEntry_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	e := NewEntry[domain.Account](kv, KeyCurrentSession)

	_, found, err := e.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	acc := domain.Account{ID: "a1", Email: "a@example.com", Role: domain.RoleOwner, Approved: true,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.NoError(t, e.Save(ctx, acc))

	got, found, err := e.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, acc.ID, got.ID)
	assert.True(t, acc.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, e.Clear(ctx))
	_, found, err = e.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEntry_Corrupt(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	require.NoError(t, kv.Set(ctx, KeyCurrentSession, []byte(`[`)))

	_, found, err := NewEntry[domain.Account](kv, KeyCurrentSession).Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptCollection)
	assert.False(t, found)
}
