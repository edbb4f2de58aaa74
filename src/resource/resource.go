package resource

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value behind a resource from the backend.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// State is a snapshot of a resource's current condition. Loading is true when
// no data and no error have been observed yet, or while a revalidation is in
// flight; it is false in every other state.
type State[T any] struct {
	Data       T
	HasData    bool
	Err        error
	Validating bool
	Loading    bool
}

// Resource is a cache-backed read handle for a single key. Reads go through
// the injected Cache; concurrent fetches for the same key are coalesced into
// one network call. Failures are surfaced once and left to the caller to
// retry explicitly: there is no automatic retry.
type Resource[T any] struct {
	key    string
	fetch  FetchFunc[T]
	cache  Cache
	group  *singleflight.Group
	logger *slog.Logger

	mu         sync.Mutex
	lastErr    error
	validating int
}

// ResourceOption configures a Resource.
type ResourceOption[T any] func(*Resource[T])

// WithGroup shares a single-flight group across resources so coalescing spans
// every resource built on the same key.
func WithGroup[T any](group *singleflight.Group) ResourceOption[T] {
	return func(r *Resource[T]) {
		r.group = group
	}
}

// WithLogger sets the resource's logger.
func WithLogger[T any](logger *slog.Logger) ResourceOption[T] {
	return func(r *Resource[T]) {
		r.logger = logger
	}
}

// NewResource creates a read handle for key backed by cache and fetch.
func NewResource[T any](key string, cache Cache, fetch FetchFunc[T], opts ...ResourceOption[T]) *Resource[T] {
	r := &Resource[T]{
		key:   key,
		fetch: fetch,
		cache: cache,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.group == nil {
		r.group = &singleflight.Group{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("component", "resource", "key", key)
	return r
}

// Key returns the cache key this resource reads through.
func (r *Resource[T]) Key() string {
	return r.key
}

// Get returns the cached value for the key, fetching it on a miss. A stale
// error from a previous attempt is not retried here; call Revalidate to retry.
func (r *Resource[T]) Get(ctx context.Context) (T, error) {
	if value, ok := r.cached(); ok {
		return value, nil
	}
	return r.Revalidate(ctx)
}

// Revalidate forces a fresh fetch for the key. Concurrent revalidations of
// the same key share one underlying call. On success the cache is updated and
// any previous error is cleared; on failure the cached value (if any) is left
// in place and the error is recorded.
func (r *Resource[T]) Revalidate(ctx context.Context) (T, error) {
	r.mu.Lock()
	r.validating++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.validating--
		r.mu.Unlock()
	}()

	result, err, shared := r.group.Do(r.key, func() (interface{}, error) {
		r.logger.Debug("fetching")
		return r.fetch(ctx)
	})
	if shared {
		r.logger.Debug("fetch coalesced")
	}

	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()

	if err != nil {
		r.logger.Debug("fetch failed", "error", err)
		var zero T
		return zero, err
	}

	value := result.(T)
	r.cache.Set(r.key, value)
	return value, nil
}

// State returns a snapshot of the resource.
func (r *Resource[T]) State() State[T] {
	value, hasData := r.cached()

	r.mu.Lock()
	lastErr := r.lastErr
	validating := r.validating > 0
	r.mu.Unlock()

	return State[T]{
		Data:       value,
		HasData:    hasData,
		Err:        lastErr,
		Validating: validating,
		Loading:    (!hasData && lastErr == nil) || validating,
	}
}

// Invalidate drops the cached value for the key.
func (r *Resource[T]) Invalidate() {
	r.cache.Invalidate(r.key)
}

// Subscribe registers fn to run whenever the key's cache entry changes.
func (r *Resource[T]) Subscribe(fn func()) func() {
	return r.cache.Subscribe(r.key, fn)
}

// cached reads the typed value out of the cache. Entries of an unexpected
// type are treated as misses.
func (r *Resource[T]) cached() (T, bool) {
	raw, ok := r.cache.Get(r.key)
	if !ok {
		var zero T
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return value, true
}
