package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PrefetchAndRead(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	changed, err := store.Prefetch(ctx, Key("projects", "all"), time.Minute, func(ctx context.Context) (any, error) {
		return []string{"alpha", "beta"}, nil
	})
	require.NoError(t, err)
	assert.True(t, changed)

	data, ok := store.Read("projects:all")
	require.True(t, ok)
	assert.Equal(t, []string{"alpha", "beta"}, data)
}

func TestStore_ReadMiss(t *testing.T) {
	store := NewStore()

	_, ok := store.Read("projects:all")
	assert.False(t, ok)
}

func TestStore_StaleEntryIsMiss(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Prefetch(ctx, "notifications:mine", -time.Second, func(ctx context.Context) (any, error) {
		return []int{1, 2}, nil
	})
	require.NoError(t, err)

	_, ok := store.Read("notifications:mine")
	assert.False(t, ok, "stale entries must read as misses")
}

func TestStore_FetcherErrorKeepsExisting(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Prefetch(ctx, "tasks:mine", time.Minute, func(ctx context.Context) (any, error) {
		return "original", nil
	})
	require.NoError(t, err)

	_, err = store.Prefetch(ctx, "tasks:mine", time.Minute, func(ctx context.Context) (any, error) {
		return nil, fmt.Errorf("backend down")
	})
	require.Error(t, err)

	data, ok := store.Read("tasks:mine")
	require.True(t, ok, "failed prefetch must not clobber the entry")
	assert.Equal(t, "original", data)
}

func TestStore_ChangedDetection(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	fetchValue := func(v any) Fetcher {
		return func(ctx context.Context) (any, error) { return v, nil }
	}

	changed, err := store.Prefetch(ctx, "projects:all", time.Minute, fetchValue([]int{1}))
	require.NoError(t, err)
	assert.True(t, changed, "first fetch is always a change")

	changed, err = store.Prefetch(ctx, "projects:all", time.Minute, fetchValue([]int{1}))
	require.NoError(t, err)
	assert.False(t, changed, "identical payload is unchanged")

	changed, err = store.Prefetch(ctx, "projects:all", time.Minute, fetchValue([]int{1, 2}))
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestStore_LastWriteWins(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	// Two warming passes racing on the same key; whichever lands last
	// owns the entry, which is acceptable given freshness windows.
	for i := 0; i < 2; i++ {
		value := fmt.Sprintf("pass-%d", i)
		_, err := store.Prefetch(ctx, "projects:all", time.Minute, func(ctx context.Context) (any, error) {
			return value, nil
		})
		require.NoError(t, err)
	}

	data, ok := store.Read("projects:all")
	require.True(t, ok)
	assert.Equal(t, "pass-1", data)
}

func TestStore_InvalidateKind(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	keep := func(ctx context.Context) (any, error) { return "x", nil }
	for _, key := range []string{"projects:all", "projects:mine", "tasks:mine"} {
		_, err := store.Prefetch(ctx, key, time.Minute, keep)
		require.NoError(t, err)
	}

	store.InvalidateKind("projects")

	_, ok := store.Read("projects:all")
	assert.False(t, ok)
	_, ok = store.Read("projects:mine")
	assert.False(t, ok)
	_, ok = store.Read("tasks:mine")
	assert.True(t, ok, "other kinds stay cached")
}

func TestStore_Clear(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Prefetch(ctx, "projects:all", time.Minute, func(ctx context.Context) (any, error) {
		return "x", nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	store.Clear()
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Keys())
}

func TestStore_ScopedKeysAreDistinct(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Prefetch(ctx, Key("projects", "all"), time.Minute, func(ctx context.Context) (any, error) {
		return "everything", nil
	})
	require.NoError(t, err)

	_, err = store.Prefetch(ctx, Key("projects", "mine"), time.Minute, func(ctx context.Context) (any, error) {
		return "just mine", nil
	})
	require.NoError(t, err)

	all, ok := store.Read("projects:all")
	require.True(t, ok)
	mine, ok := store.Read("projects:mine")
	require.True(t, ok)
	assert.NotEqual(t, all, mine)
}

func TestStore_EmptyKeyRejected(t *testing.T) {
	store := NewStore()

	_, err := store.Prefetch(context.Background(), "", time.Minute, func(ctx context.Context) (any, error) {
		return "x", nil
	})
	require.Error(t, err)
}
