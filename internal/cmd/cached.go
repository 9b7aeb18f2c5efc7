package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// cachedList serves a list query from the warmed cache when fresh,
// falling back to a fetch that also repopulates the entry. The cache is
// an optimization only; a miss is answered by the gateway directly.
func cachedList[T any](cmd *cobra.Command, key string, ttl time.Duration, fetch func(ctx context.Context) ([]T, error)) ([]T, error) {
	store := getCacheStore()

	if data, ok := store.Read(key); ok {
		if items, ok := data.([]T); ok {
			return items, nil
		}
	}

	if _, err := store.Prefetch(cmd.Context(), key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}); err != nil {
		return nil, err
	}

	data, _ := store.Read(key)
	items, _ := data.([]T)
	if items == nil {
		items = []T{}
	}
	return items, nil
}
