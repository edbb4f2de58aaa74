package resource

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/singleflight"
)

func countValidating[T any](r *Resource[T]) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.validating
}

func TestResourceGetFetchesOnMiss(t *testing.T) {
	cache := NewMemoryCache(0)
	var fetches int32
	r := NewResource("/api/tools/", cache, func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(&fetches, 1)
		return []string{"calculator"}, nil
	})

	got, err := r.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"calculator"}, got)
	assert.Equal(t, int32(1), fetches)

	// Second Get is served from the cache.
	got, err = r.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"calculator"}, got)
	assert.Equal(t, int32(1), fetches)
}

func TestResourceLoadingStates(t *testing.T) {
	cache := NewMemoryCache(0)
	fetchErr := error(nil)
	r := NewResource("key", cache, func(ctx context.Context) (string, error) {
		if fetchErr != nil {
			return "", fetchErr
		}
		return "data", nil
	})

	// Fresh resource: no data, no error.
	state := r.State()
	assert.False(t, state.HasData)
	assert.NoError(t, state.Err)
	assert.True(t, state.Loading)

	// After a successful fetch: data, no error, not loading.
	_, err := r.Get(context.Background())
	require.NoError(t, err)
	state = r.State()
	assert.True(t, state.HasData)
	assert.Equal(t, "data", state.Data)
	assert.NoError(t, state.Err)
	assert.False(t, state.Loading)

	// Failed revalidation keeps the stale value and records the error.
	fetchErr = errors.New("backend down")
	_, err = r.Revalidate(context.Background())
	require.Error(t, err)
	state = r.State()
	assert.True(t, state.HasData, "stale data survives a failed revalidation")
	assert.Equal(t, "data", state.Data)
	assert.Error(t, state.Err)
	assert.False(t, state.Loading, "error with stale data is not loading")

	// No data and an error is also not loading.
	r.Invalidate()
	state = r.State()
	assert.False(t, state.HasData)
	assert.Error(t, state.Err)
	assert.False(t, state.Loading)

	// A success clears the recorded error.
	fetchErr = nil
	_, err = r.Revalidate(context.Background())
	require.NoError(t, err)
	state = r.State()
	assert.NoError(t, state.Err)
	assert.False(t, state.Loading)
}

func TestResourceLoadingWhileValidating(t *testing.T) {
	cache := NewMemoryCache(0)
	started := make(chan struct{})
	release := make(chan struct{})
	r := NewResource("key", cache, func(ctx context.Context) (int, error) {
		close(started)
		<-release
		return 7, nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = r.Revalidate(context.Background())
	}()

	<-started
	state := r.State()
	assert.True(t, state.Validating)
	assert.True(t, state.Loading, "in-flight revalidation reads as loading")

	close(release)
	<-done
	state = r.State()
	assert.False(t, state.Validating)
	assert.False(t, state.Loading)
}

func TestResourceCoalescesConcurrentFetches(t *testing.T) {
	cache := NewMemoryCache(0)
	var fetches int32
	entered := make(chan struct{})
	release := make(chan struct{})
	r := NewResource("key", cache, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&fetches, 1)
		close(entered)
		<-release
		return "shared", nil
	})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = r.Revalidate(context.Background())
	}()
	<-entered

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Revalidate(context.Background())
		}(i)
	}

	// Wait until every caller is in flight before letting the fetch return.
	require.Eventually(t, func() bool {
		return countValidating(r) == callers
	}, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches), "concurrent revalidations share one fetch")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestResourceSharedGroupSpansResources(t *testing.T) {
	cache := NewMemoryCache(0)
	group := &singleflight.Group{}
	var fetches int32
	entered := make(chan struct{})
	release := make(chan struct{})
	var enteredOnce sync.Once
	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&fetches, 1)
		enteredOnce.Do(func() { close(entered) })
		<-release
		return "once", nil
	}

	a := NewResource("key", cache, fetch, WithGroup[string](group))
	b := NewResource("key", cache, fetch, WithGroup[string](group))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = a.Revalidate(context.Background())
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = b.Revalidate(context.Background())
	}()

	require.Eventually(t, func() bool {
		return countValidating(b) == 1
	}, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestResourceSubscribeSeesRevalidation(t *testing.T) {
	cache := NewMemoryCache(0)
	r := NewResource("key", cache, func(ctx context.Context) (int, error) {
		return 1, nil
	})

	var notified int
	unsub := r.Subscribe(func() { notified++ })
	defer unsub()

	_, err := r.Revalidate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	r.Invalidate()
	assert.Equal(t, 2, notified)
}

func TestResourceWrongCachedTypeIsMiss(t *testing.T) {
	cache := NewMemoryCache(0)
	cache.Set("key", "not an int")

	var fetches int32
	r := NewResource("key", cache, func(ctx context.Context) (int, error) {
		atomic.AddInt32(&fetches, 1)
		return 9, nil
	})

	got, err := r.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, got)
	assert.Equal(t, int32(1), fetches, "mistyped entry forces a refetch")
}
