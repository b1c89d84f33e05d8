package outfit

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// DefaultCacheTTL is how long a composed outfit stays reusable.
const DefaultCacheTTL = 24 * time.Hour

// CacheService is the fingerprint-keyed outfit cache, built on the same
// ristretto + gocache pair as the URL cache. An explicit instance injected
// into the orchestrator — no process-global singleton. At most one stored
// value per fingerprint (last writer wins); concurrent generations for the
// same fingerprint are not serialized.
type CacheService struct {
	cache  *cache.Cache[*GeneratedOutfit]
	client *ristretto.Cache
	ttl    time.Duration
}

func NewCacheService(ttl time.Duration) (*CacheService, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)
	return &CacheService{
		cache:  cache.New[*GeneratedOutfit](ristrettoStore),
		client: ristrettoCache,
		ttl:    ttl,
	}, nil
}

// Get returns the cached outfit for a fingerprint, if any. Cache errors read
// as a miss, never as a failure.
func (s *CacheService) Get(ctx context.Context, fingerprint string) (*GeneratedOutfit, bool) {
	outfit, err := s.cache.Get(ctx, fingerprint)
	if err != nil || outfit == nil {
		return nil, false
	}
	return outfit, true
}

// Set stores an outfit under its fingerprint, overwriting any previous value.
// Waits for the ristretto buffers so the write is immediately visible.
func (s *CacheService) Set(ctx context.Context, fingerprint string, outfit *GeneratedOutfit) {
	err := s.cache.Set(ctx, fingerprint, outfit, store.WithExpiration(s.ttl), store.WithCost(1))
	if err != nil {
		fmt.Printf("[Cache] Failed to store outfit for %.12s: %v\n", fingerprint, err)
		return
	}
	s.client.Wait()
}

func (s *CacheService) Evict(ctx context.Context, fingerprint string) {
	_ = s.cache.Delete(ctx, fingerprint)
	s.client.Wait()
}

// Revalidate checks a cached outfit against the current wardrobe snapshot:
// every referenced item id must still exist. A failure means the entry is
// stale and must be evicted and treated as a miss.
func (s *CacheService) Revalidate(outfit *GeneratedOutfit, snapshot []Item) bool {
	if outfit == nil || len(outfit.Items) == 0 {
		return false
	}
	existing := make(map[uint]bool, len(snapshot))
	for _, item := range snapshot {
		existing[item.ID] = true
	}
	for _, item := range outfit.Items {
		if !existing[item.ID] {
			return false
		}
	}
	return true
}
