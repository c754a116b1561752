package apiclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
)

// cacheVersion is bumped whenever the cached payload shape changes, which
// invalidates all earlier entries.
const cacheVersion = 1

// openRangeTTL bounds how long a range that extends to today may be served
// from cache. Fully-past ranges are immutable and never expire.
const openRangeTTL = 15 * time.Minute

// CachingClient wraps an AnalyticsClient with a snapshot range cache.
// Profile and export calls always pass through; only snapshot ranges are
// cached, keyed by (base URL, start, end).
type CachingClient struct {
	contract.AnalyticsClient

	baseURL string
	mgr     contract.CacheManager
	now     func() time.Time
}

var _ contract.AnalyticsClient = &CachingClient{} // Compile-time check

// NewCachingClient decorates inner with the range cache held by mgr.
func NewCachingClient(inner contract.AnalyticsClient, baseURL string, mgr contract.CacheManager) *CachingClient {
	return &CachingClient{
		AnalyticsClient: inner,
		baseURL:         baseURL,
		mgr:             mgr,
		now:             time.Now,
	}
}

// FetchSnapshots serves the range from cache when a fresh entry exists,
// falling back to the inner client and populating the cache on success.
// Cache failures degrade to a plain fetch; they never fail the load.
func (c *CachingClient) FetchSnapshots(ctx context.Context, start, end schema.CalDate) ([]schema.Snapshot, error) {
	store := c.mgr.GetRangeStore()
	if store == nil {
		return c.AnalyticsClient.FetchSnapshots(ctx, start, end)
	}

	key := rangeCacheKey(c.baseURL, start, end)
	if value, version, timestamp, err := store.Get(key); err == nil && version == cacheVersion {
		if c.entryFresh(end, timestamp) {
			var snaps []schema.Snapshot
			if err := json.Unmarshal(value, &snaps); err == nil {
				return snaps, nil
			}
			// Corrupt entry: fall through and refetch.
		}
	}

	snaps, err := c.AnalyticsClient.FetchSnapshots(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(snaps); err == nil {
		if err := store.Set(key, payload, cacheVersion, c.now().Unix()); err != nil {
			contract.LogWarn("Range cache write failed", err)
		}
	}
	return snaps, nil
}

// entryFresh reports whether a cached entry may still be served. Ranges that
// end before today cannot gain new snapshots, so their entries never expire.
func (c *CachingClient) entryFresh(end schema.CalDate, timestamp int64) bool {
	today := schema.DateOf(c.now())
	if end.Before(today) {
		return true
	}
	age := c.now().Sub(time.Unix(timestamp, 0))
	return age < openRangeTTL
}

// rangeCacheKey derives a stable cache key for one snapshot range request.
func rangeCacheKey(baseURL string, start, end schema.CalDate) string {
	h := sha256.New()
	h.Write([]byte(baseURL))
	h.Write([]byte("|"))
	h.Write([]byte(start.String()))
	h.Write([]byte("|"))
	h.Write([]byte(end.String()))
	return hex.EncodeToString(h.Sum(nil))
}
