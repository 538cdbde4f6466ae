package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/shidduch-link/matchmaker-web/internal/models"
	"github.com/shidduch-link/matchmaker-web/pkg/logger"
	"github.com/shidduch-link/matchmaker-web/pkg/metrics"
)

// DirectorySource fetches the public matchmaker directory from the upstream
// API.
type DirectorySource interface {
	FetchMatchmakers(ctx context.Context) ([]models.Matchmaker, error)
}

const (
	directoryKey     = "matchmaker:directory"
	cacheCheckPeriod = 10 * time.Second
)

// DirectoryCache holds the public matchmaker directory so the applicant form
// does not hit the upstream API on every page view. Entries expire after the
// configured TTL; the last successful fetch is kept as a stale fallback for
// when the upstream is down.
type DirectoryCache struct {
	cache  *gocache.Cache
	source DirectorySource
	ttl    time.Duration

	mu    sync.Mutex // serializes refreshes on miss
	stale []models.Matchmaker
}

// NewDirectoryCache creates a directory cache with the given TTL in seconds.
func NewDirectoryCache(source DirectorySource, ttlSeconds int) *DirectoryCache {
	return &DirectoryCache{
		cache:  gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		source: source,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Get returns the matchmaker directory, fetching from the upstream on cache
// miss. When the upstream fetch fails, the last successful result is served
// instead; an empty directory is returned only when nothing was ever fetched.
func (dc *DirectoryCache) Get(ctx context.Context) []models.Matchmaker {
	if data, found := dc.cache.Get(directoryKey); found {
		if directory, ok := data.([]models.Matchmaker); ok {
			metrics.CacheHits.WithLabelValues("matchmaker_directory").Inc()
			return directory
		}
		dc.cache.Delete(directoryKey)
	}

	metrics.CacheMisses.WithLabelValues("matchmaker_directory").Inc()

	dc.mu.Lock()
	defer dc.mu.Unlock()

	// Another request may have refreshed while we waited on the lock
	if data, found := dc.cache.Get(directoryKey); found {
		if directory, ok := data.([]models.Matchmaker); ok {
			return directory
		}
	}

	directory, err := dc.source.FetchMatchmakers(ctx)
	if err != nil {
		logger.Warn("Matchmaker directory refresh failed, serving stale copy",
			zap.Int("stale_count", len(dc.stale)),
			zap.Error(err))
		if dc.stale == nil {
			return []models.Matchmaker{}
		}
		return dc.stale
	}

	dc.cache.Set(directoryKey, directory, dc.ttl)
	dc.stale = directory

	logger.Debug("Matchmaker directory refreshed", zap.Int("count", len(directory)))
	return directory
}

// Invalidate drops the cached directory so the next Get refetches.
func (dc *DirectoryCache) Invalidate() {
	dc.cache.Delete(directoryKey)
}
