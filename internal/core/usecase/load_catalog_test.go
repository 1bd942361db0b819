package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"listing-site/internal/contracts"
	"listing-site/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "bangHangDataCache"

func newLoader(feed *fakeFeed, cache *memoryCache, now time.Time) *LoadCatalogUseCase {
	uc := NewLoadCatalogUseCase(feed, cache, contracts.NewCatalogDecoder(), LoadCatalogConfig{
		CacheKey:      testKey,
		CacheWindow:   60 * time.Minute,
		CacheHitDelay: 0,
		FetchTimeout:  time.Second,
	})
	uc.now = func() time.Time { return now }
	return uc
}

func TestSnapshotUsesFreshCache(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	feed := &fakeFeed{responses: []feedResponse{{body: feedWithCodes("FEED")}}}
	cache := newMemoryCache()
	cache.put(testKey, now.Add(-59*time.Minute), feedWithCodes("CACHED"))

	uc := newLoader(feed, cache, now)
	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, feed.Calls())
	assert.Equal(t, domain.SourceCache, snap.Source)
	require.Len(t, snap.Listings, 1)
	assert.Equal(t, "CACHED", snap.Listings[0].Code)
	assert.Equal(t, []string{"Sun", "Moon"}, snap.Options[domain.CategoryProject])
}

func TestSnapshotFetchesWhenCacheExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	feed := &fakeFeed{responses: []feedResponse{{body: feedWithCodes("FEED")}}}
	cache := newMemoryCache()
	cache.put(testKey, now.Add(-61*time.Minute), feedWithCodes("CACHED"))

	uc := newLoader(feed, cache, now)
	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, feed.Calls())
	assert.Equal(t, domain.SourceFeed, snap.Source)
	assert.Equal(t, "FEED", snap.Listings[0].Code)

	// новый ответ сохранен в кэш с текущим временем
	blob, found, _ := cache.Get(context.Background(), testKey)
	require.True(t, found)
	entry, decoded, err := contracts.NewCatalogDecoder().DecodeCacheEntry(blob)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), entry.Timestamp)
	assert.Equal(t, "FEED", decoded.Listings[0].Code)
}

func TestSnapshotServedFromMemoryInsideWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	feed := &fakeFeed{responses: []feedResponse{{body: feedWithCodes("A")}}}
	uc := newLoader(feed, newMemoryCache(), now)

	_, err := uc.Snapshot(context.Background())
	require.NoError(t, err)

	uc.now = func() time.Time { return now.Add(30 * time.Minute) }
	_, err = uc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Calls())

	uc.now = func() time.Time { return now.Add(61 * time.Minute) }
	_, err = uc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, feed.Calls())
}

func TestSnapshotErrors(t *testing.T) {
	now := time.Now()

	t.Run("fetch failure", func(t *testing.T) {
		feed := &fakeFeed{responses: []feedResponse{{err: errors.New("connection refused")}}}
		uc := newLoader(feed, newMemoryCache(), now)

		_, err := uc.Snapshot(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrFeedUnavailable))

		st := uc.Status()
		assert.Equal(t, domain.StateError, st.State)
		assert.False(t, st.Loading)
		assert.Equal(t, domain.MessageFeedUnavailable, st.LastError)
	})

	t.Run("invalid shape is not cached", func(t *testing.T) {
		cache := newMemoryCache()
		feed := &fakeFeed{responses: []feedResponse{{body: `{"rows": []}`}}}
		uc := newLoader(feed, cache, now)

		_, err := uc.Snapshot(context.Background())
		assert.True(t, errors.Is(err, domain.ErrInvalidFeed))
		assert.Equal(t, domain.MessageInvalidFeed, uc.Status().LastError)

		_, found, _ := cache.Get(context.Background(), testKey)
		assert.False(t, found)
	})

	t.Run("next request retries after error", func(t *testing.T) {
		feed := &fakeFeed{responses: []feedResponse{{err: errors.New("boom")}, {body: feedWithCodes("OK")}}}
		uc := newLoader(feed, newMemoryCache(), now)

		_, err := uc.Snapshot(context.Background())
		require.Error(t, err)
		snap, err := uc.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "OK", snap.Listings[0].Code)
		assert.Equal(t, domain.StateReady, uc.Status().State)
		assert.Empty(t, uc.Status().LastError)
	})
}

func TestIncompatibleCacheEntryIsDiscarded(t *testing.T) {
	now := time.Now()
	cache := newMemoryCache()
	_ = cache.Set(context.Background(), testKey, []byte(`{"timestamp": 1, "data": [1, 2, 3]}`))
	feed := &fakeFeed{responses: []feedResponse{{body: feedWithCodes("FRESH")}}}

	uc := newLoader(feed, cache, now)
	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "FRESH", snap.Listings[0].Code)
	assert.Equal(t, 1, feed.Calls())
	assert.GreaterOrEqual(t, cache.deletes, 1)
}

func TestRefreshBypassesCache(t *testing.T) {
	now := time.Now()
	cache := newMemoryCache()
	cache.put(testKey, now.Add(-time.Minute), feedWithCodes("CACHED"))
	feed := &fakeFeed{responses: []feedResponse{{body: feedWithCodes("NEW")}}}

	uc := newLoader(feed, cache, now)
	snap, err := NewRefreshCatalogUseCase(uc).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "NEW", snap.Listings[0].Code)
	assert.Equal(t, 1, cache.deletes)

	again, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NEW", again.Listings[0].Code)
	assert.Equal(t, 1, feed.Calls())
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	now := time.Now()
	cache := newMemoryCache()
	slow := feedResponse{body: feedWithCodes("STALE"), started: make(chan struct{}), release: make(chan struct{})}
	feed := &fakeFeed{responses: []feedResponse{slow, {body: feedWithCodes("NEWER")}}}
	uc := newLoader(feed, cache, now)

	var wg sync.WaitGroup
	wg.Add(1)
	var staleSnap *domain.CatalogSnapshot
	go func() {
		defer wg.Done()
		staleSnap, _ = uc.Snapshot(context.Background())
	}()

	<-slow.started
	assert.True(t, uc.Status().Loading)

	fresh, err := uc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NEWER", fresh.Listings[0].Code)

	close(slow.release)
	wg.Wait()

	// ожидавший старую загрузку получил свои данные, но снимок не подменен
	require.NotNil(t, staleSnap)
	assert.Equal(t, "STALE", staleSnap.Listings[0].Code)

	current, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NEWER", current.Listings[0].Code)

	blob, _, _ := cache.Get(context.Background(), testKey)
	_, cached, err := contracts.NewCatalogDecoder().DecodeCacheEntry(blob)
	require.NoError(t, err)
	assert.Equal(t, "NEWER", cached.Listings[0].Code)

	assert.Equal(t, uint64(2), uc.Status().Generation)
	assert.False(t, uc.Status().Loading)
}

func TestConcurrentSnapshotsShareOneFetch(t *testing.T) {
	gate := feedResponse{body: feedWithCodes("ONE"), started: make(chan struct{}), release: make(chan struct{})}
	feed := &fakeFeed{responses: []feedResponse{gate}}
	uc := newLoader(feed, newMemoryCache(), time.Now())

	const n = 5
	var wg sync.WaitGroup
	results := make([]*domain.CatalogSnapshot, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = uc.Snapshot(context.Background())
		}(i)
	}

	<-gate.started
	time.Sleep(20 * time.Millisecond)
	close(gate.release)
	wg.Wait()

	assert.Equal(t, 1, feed.Calls())
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, "ONE", r.Listings[0].Code)
	}
}

func TestCacheHitDelayShowsLoading(t *testing.T) {
	now := time.Now()
	cache := newMemoryCache()
	cache.put(testKey, now, feedWithCodes("CACHED"))
	uc := newLoader(&fakeFeed{}, cache, now)
	uc.cfg.CacheHitDelay = 100 * time.Millisecond

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = uc.Snapshot(context.Background())
	}()

	require.Eventually(t, func() bool { return uc.Status().Loading }, time.Second, 5*time.Millisecond)
	<-done
	st := uc.Status()
	assert.False(t, st.Loading)
	assert.Equal(t, domain.StateReady, st.State)
	assert.Equal(t, "cache", st.Source)
}

func TestSnapshotRespectsCallerCancellation(t *testing.T) {
	gate := feedResponse{body: feedWithCodes("LATE"), started: make(chan struct{}), release: make(chan struct{})}
	feed := &fakeFeed{responses: []feedResponse{gate}}
	uc := newLoader(feed, newMemoryCache(), time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := uc.Snapshot(ctx)
		errCh <- err
	}()

	<-gate.started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	// общая загрузка продолжается и завершается для следующих запросов
	close(gate.release)
	require.Eventually(t, func() bool { return uc.Status().State == domain.StateReady }, time.Second, 5*time.Millisecond)
}

func TestFeedWithoutFilterOptionsIsReady(t *testing.T) {
	now := time.Now()
	cache := newMemoryCache()
	feed := &fakeFeed{responses: []feedResponse{{body: `{"data": [{"MÃ CĂN": "A1", "FULL": 1e3}], "filterOptions": null}`}}}
	uc := newLoader(feed, cache, now)

	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Listings, 1)
	assert.Equal(t, "1000", snap.Listings[0].PriceFull)
	assert.Empty(t, snap.Options[domain.CategoryProject])

	st := uc.Status()
	assert.Equal(t, domain.StateReady, st.State)
	assert.Empty(t, st.LastError)

	// запись кэша принята и при повторном чтении
	_, found, _ := cache.Get(context.Background(), testKey)
	assert.True(t, found)
	assert.Equal(t, 0, cache.deletes)
}
