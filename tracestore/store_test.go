package tracestore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adaptgo/tracestore"
)

func stores(t *testing.T) map[string]tracestore.Store {
	t.Helper()

	local, err := tracestore.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	return map[string]tracestore.Store{
		"memory": tracestore.NewMemoryStore(),
		"local":  local,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "runs/a.json", []byte("alpha")))
			require.NoError(t, store.Put(ctx, "runs/b.json", []byte("beta")))

			data, err := store.Get(ctx, "runs/a.json")
			require.NoError(t, err)
			assert.Equal(t, []byte("alpha"), data)

			// Overwrite replaces content.
			require.NoError(t, store.Put(ctx, "runs/a.json", []byte("alpha2")))
			data, err = store.Get(ctx, "runs/a.json")
			require.NoError(t, err)
			assert.Equal(t, []byte("alpha2"), data)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "missing.json")
			require.ErrorIs(t, err, tracestore.ErrNotFound)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "x", []byte("1")))
			require.NoError(t, store.Delete(ctx, "x"))
			_, err := store.Get(ctx, "x")
			require.ErrorIs(t, err, tracestore.ErrNotFound)

			// Deleting a missing blob is not an error.
			assert.NoError(t, store.Delete(ctx, "x"))
		})
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "runs/b", []byte("1")))
			require.NoError(t, store.Put(ctx, "runs/a", []byte("2")))
			require.NoError(t, store.Put(ctx, "other/c", []byte("3")))

			names, err := store.List(ctx, "runs/")
			require.NoError(t, err)
			assert.Equal(t, []string{"runs/a", "runs/b"}, names)

			all, err := store.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"other/c", "runs/a", "runs/b"}, all)
		})
	}
}

func TestMemoryStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	store := tracestore.NewMemoryStore()

	payload := []byte("snapshot")
	require.NoError(t, store.Put(ctx, "x", payload))
	payload[0] = '!'

	data, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("snapshot"), data)
}
