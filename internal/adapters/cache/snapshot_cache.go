package cache

import (
	"fmt"
	"time"

	"fxgate/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoSnapshotCache keeps the most recent rate snapshot per base
// currency. Entries expire lazily after their TTL; there is no background
// eviction, an expired entry is simply reported as a miss.
type RistrettoSnapshotCache struct {
	cache *ristretto.Cache
}

func NewSnapshotCache(maxItems int64) (*RistrettoSnapshotCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache failed: %w", err)
	}
	return &RistrettoSnapshotCache{cache: c}, nil
}

func (c *RistrettoSnapshotCache) Get(base string) (domain.RateSnapshot, bool) {
	if v, ok := c.cache.Get(base); ok {
		snap, ok := v.(domain.RateSnapshot)
		return snap, ok
	}
	return domain.RateSnapshot{}, false
}

// Set stores the snapshot for base with the given TTL, overwriting any
// previous entry. The write buffer is flushed before returning so a
// subsequent Get observes the entry.
func (c *RistrettoSnapshotCache) Set(base string, snapshot domain.RateSnapshot, ttl time.Duration) {
	c.cache.SetWithTTL(base, snapshot, 1, ttl)
	c.cache.Wait()
}

func (c *RistrettoSnapshotCache) Close() { c.cache.Close() }
