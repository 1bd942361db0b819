package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"listing-site/internal/contextkeys"
	"listing-site/internal/contracts"
	"listing-site/internal/core/catalog"
	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"

	"golang.org/x/sync/singleflight"
)

// LoadCatalogConfig - параметры загрузки каталога
type LoadCatalogConfig struct {
	CacheKey      string
	CacheWindow   time.Duration
	CacheHitDelay time.Duration
	FetchTimeout  time.Duration
}

// LoadCatalogUseCase владеет снимком каталога: берет его из кэша, пока тот свежий,
// иначе загружает из таблицы и сохраняет в кэш.
//
// Одновременные загрузки склеиваются через singleflight. Каждая загрузка получает
// номер поколения; загрузка, завершившаяся после старта более новой, не применяется.
type LoadCatalogUseCase struct {
	feed    port.CatalogFeedPort
	cache   port.CacheStorePort
	decoder port.CatalogDecoderPort
	cfg     LoadCatalogConfig
	now     func() time.Time

	group      singleflight.Group
	generation atomic.Uint64
	inFlight   atomic.Int32

	// commitMu делает проверку поколения и запись в кэш одной операцией
	commitMu sync.Mutex

	mu       sync.RWMutex
	snapshot *domain.CatalogSnapshot
	state    domain.LoadState
	lastErr  error
}

func NewLoadCatalogUseCase(feed port.CatalogFeedPort, cache port.CacheStorePort, decoder port.CatalogDecoderPort, cfg LoadCatalogConfig) *LoadCatalogUseCase {
	return &LoadCatalogUseCase{
		feed:    feed,
		cache:   cache,
		decoder: decoder,
		cfg:     cfg,
		now:     time.Now,
		state:   domain.StateIdle,
	}
}

// Snapshot возвращает текущий снимок, если он моложе окна свежести, иначе загружает новый.
func (uc *LoadCatalogUseCase) Snapshot(ctx context.Context) (*domain.CatalogSnapshot, error) {
	uc.mu.RLock()
	snap := uc.snapshot
	uc.mu.RUnlock()

	if snap != nil && snap.Age(uc.now()) < uc.cfg.CacheWindow {
		return snap, nil
	}
	return uc.do(ctx, "load", false)
}

// Refresh удаляет запись кэша и принудительно загружает каталог из таблицы.
func (uc *LoadCatalogUseCase) Refresh(ctx context.Context) (*domain.CatalogSnapshot, error) {
	return uc.do(ctx, "refresh", true)
}

// Status - состояние загрузки для индикатора и API
func (uc *LoadCatalogUseCase) Status() domain.CatalogStatus {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	st := domain.CatalogStatus{
		State:      uc.state,
		Loading:    uc.inFlight.Load() > 0,
		Generation: uc.generation.Load(),
	}
	if st.Loading {
		st.State = domain.StateLoading
	}
	if uc.snapshot != nil {
		fetchedAt := uc.snapshot.FetchedAt
		st.FetchedAt = &fetchedAt
		st.Source = string(uc.snapshot.Source)
		st.ListingCount = len(uc.snapshot.Listings)
		st.Quarantined = uc.snapshot.Quarantined
	}
	if uc.lastErr != nil {
		st.LastError = domain.UserMessage(uc.lastErr)
	}
	return st
}

// do запускает общую загрузку. Сама загрузка не зависит от отмены контекста
// конкретного запроса: ее результат нужен и остальным ожидающим.
func (uc *LoadCatalogUseCase) do(ctx context.Context, key string, force bool) (*domain.CatalogSnapshot, error) {
	loadCtx := context.WithoutCancel(ctx)

	ch := uc.group.DoChan(key, func() (interface{}, error) {
		return uc.load(loadCtx, force)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.CatalogSnapshot), nil
	}
}

func (uc *LoadCatalogUseCase) load(ctx context.Context, force bool) (*domain.CatalogSnapshot, error) {
	gen := uc.generation.Add(1)
	uc.inFlight.Add(1)
	defer uc.inFlight.Add(-1)

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "LoadCatalog",
		"generation": gen,
		"forced":     force,
	})
	logger.Info("Use case started", nil)

	if force {
		uc.mu.Lock()
		uc.snapshot = nil
		uc.mu.Unlock()

		if err := uc.cache.Delete(ctx, uc.cfg.CacheKey); err != nil {
			logger.Warn("Failed to delete cache entry", port.Fields{"error": err.Error()})
		}
	} else if snap, ok := uc.fromCache(ctx, logger); ok {
		if err := sleepCtx(ctx, uc.cfg.CacheHitDelay); err != nil {
			return nil, err
		}
		uc.install(gen, snap, logger)
		logger.Info("Catalog loaded from cache", port.Fields{"listings": len(snap.Listings)})
		return snap, nil
	}

	fetchCtx := ctx
	if uc.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, uc.cfg.FetchTimeout)
		defer cancel()
	}

	body, err := uc.feed.Fetch(fetchCtx)
	if err != nil {
		if !errors.Is(err, domain.ErrFeedUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
		}
		uc.fail(gen, err, logger)
		return nil, err
	}

	decoded, err := uc.decoder.DecodeCatalog(body)
	if err != nil {
		uc.fail(gen, err, logger)
		return nil, err
	}
	if decoded.Quarantined > 0 {
		logger.Warn("Some records failed validation and were quarantined", port.Fields{"quarantined": decoded.Quarantined})
	}

	fetchedAt := uc.now()
	snap := newSnapshot(fetchedAt, decoded, domain.SourceFeed)

	blob, err := json.Marshal(domain.NewCacheEntry(fetchedAt, body))
	if err != nil {
		logger.Error("Failed to encode cache entry", err, nil)
		blob = nil
	}
	uc.commit(ctx, gen, blob, snap, logger)

	logger.Info("Catalog loaded from feed", port.Fields{"listings": len(snap.Listings)})
	return snap, nil
}

// fromCache читает запись кэша. Несовместимая запись удаляется и считается промахом.
func (uc *LoadCatalogUseCase) fromCache(ctx context.Context, logger port.LoggerPort) (*domain.CatalogSnapshot, bool) {
	blob, found, err := uc.cache.Get(ctx, uc.cfg.CacheKey)
	if err != nil {
		logger.Warn("Cache read failed, falling back to feed", port.Fields{"error": err.Error()})
		return nil, false
	}
	if !found {
		logger.Debug("Cache miss", nil)
		return nil, false
	}

	entry, decoded, err := uc.decoder.DecodeCacheEntry(blob)
	if err != nil {
		logger.Warn("Cached payload is incompatible, discarding it", port.Fields{"error": err.Error()})
		if delErr := uc.cache.Delete(ctx, uc.cfg.CacheKey); delErr != nil {
			logger.Error("Failed to delete incompatible cache entry", delErr, nil)
		}
		return nil, false
	}

	if !entry.FreshAt(uc.now(), uc.cfg.CacheWindow) {
		logger.Debug("Cache entry expired", port.Fields{"fetched_at": entry.FetchedAt()})
		return nil, false
	}

	return newSnapshot(entry.FetchedAt(), decoded, domain.SourceCache), true
}

func (uc *LoadCatalogUseCase) isCurrent(gen uint64) bool {
	return uc.generation.Load() == gen
}

// commit сохраняет запись кэша и снимок, если за это время не началась более новая загрузка
func (uc *LoadCatalogUseCase) commit(ctx context.Context, gen uint64, blob []byte, snap *domain.CatalogSnapshot, logger port.LoggerPort) {
	uc.commitMu.Lock()
	defer uc.commitMu.Unlock()

	if !uc.isCurrent(gen) {
		logger.Warn("Discarding stale catalog load", port.Fields{"latest_generation": uc.generation.Load()})
		return
	}
	if blob != nil {
		if err := uc.cache.Set(ctx, uc.cfg.CacheKey, blob); err != nil {
			logger.Error("Failed to persist cache entry", err, nil)
		}
	}
	uc.install(gen, snap, logger)
}

func (uc *LoadCatalogUseCase) install(gen uint64, snap *domain.CatalogSnapshot, logger port.LoggerPort) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.isCurrent(gen) {
		logger.Warn("Discarding stale catalog load", port.Fields{"latest_generation": uc.generation.Load()})
		return
	}
	uc.snapshot = snap
	uc.state = domain.StateReady
	uc.lastErr = nil
}

func (uc *LoadCatalogUseCase) fail(gen uint64, err error, logger port.LoggerPort) {
	logger.Error("Catalog load failed", err, nil)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.isCurrent(gen) {
		return
	}
	uc.state = domain.StateError
	uc.lastErr = err
}

func newSnapshot(fetchedAt time.Time, decoded *contracts.DecodedCatalog, source domain.SnapshotSource) *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		FetchedAt:   fetchedAt,
		Listings:    decoded.Listings,
		Options:     catalog.SanitizeOptions(decoded.Options),
		Quarantined: decoded.Quarantined,
		Source:      source,
	}
}

// sleepCtx ждет d или отмены контекста
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
