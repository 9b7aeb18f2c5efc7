package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/felixgeelhaar/sprintdeck/internal/errors"
)

// Fetcher produces the value for a cache entry.
type Fetcher func(ctx context.Context) (any, error)

// Entry holds one cached query result.
type Entry struct {
	Data       any
	Digest     string
	FetchedAt  time.Time
	StaleAfter time.Time
}

// Stale reports whether the entry has outlived its freshness window.
func (e Entry) Stale() bool {
	return time.Now().After(e.StaleAfter)
}

// Store is a shared cache of query results keyed by logical query
// identity (entity kind plus scope, e.g. "projects:all" vs
// "projects:mine" are distinct keys).
//
// Every write is a whole-entry replacement; last write wins per key.
// Staleness tolerance comes from each entry's freshness window, so no
// finer coordination is needed. Keys carry no session identity: logout
// clears the store wholesale, and a prefetch landing afterwards only
// re-inserts a generic entry the next login overwrites.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewStore creates an empty cache store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
	}
}

// Key builds a cache key from an entity kind and scope.
func Key(kind, scope string) string {
	return kind + ":" + scope
}

// Prefetch runs the fetcher and replaces the entry for key on success.
// It reports whether the stored data changed relative to the previous
// entry, based on the content digest. On fetcher error nothing is
// stored and the existing entry, fresh or stale, stays untouched.
func (s *Store) Prefetch(ctx context.Context, key string, ttl time.Duration, fetch Fetcher) (bool, error) {
	if key == "" {
		return false, errors.New(errors.ErrCodeCacheKey, "cache key cannot be empty")
	}

	data, err := fetch(ctx)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeCacheFetch, "prefetch failed for "+key, err)
	}

	now := time.Now()
	entry := Entry{
		Data:       data,
		Digest:     digest(data),
		FetchedAt:  now,
		StaleAfter: now.Add(ttl),
	}

	s.mu.Lock()
	previous, existed := s.entries[key]
	s.entries[key] = entry
	s.mu.Unlock()

	changed := !existed || previous.Digest != entry.Digest
	return changed, nil
}

// Read returns the cached data for key. Stale entries are misses.
func (s *Store) Read(key string) (any, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || entry.Stale() {
		return nil, false
	}
	return entry.Data, true
}

// Invalidate removes the entry for key.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// InvalidateKind removes every entry whose key belongs to the entity
// kind, covering all scoped variants of it. Mutations call this so the
// next read refetches.
func (s *Store) InvalidateKind(kind string) {
	prefix := kind + ":"

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Clear removes every entry. Called on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]Entry)
	s.mu.Unlock()
}

// Keys returns the currently cached keys, fresh or stale.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// digest fingerprints the marshaled payload so refreshes can report
// changed vs unchanged data. Unmarshalable payloads get no digest and
// always count as changed.
func digest(data any) string {
	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
