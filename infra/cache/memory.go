// Package cache provides rate-table caches: an in-process map for single
// instances and Redis for shared deployments.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
)

type memoryEntry struct {
	rates     map[string]provider.RateInfo
	expiresAt time.Time
}

// MemoryRateCache is a mutex-guarded in-process cache with per-key expiry.
type MemoryRateCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryRateCache() *MemoryRateCache {
	return &MemoryRateCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryRateCache) Get(_ context.Context, key string) (map[string]provider.RateInfo, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.rates, nil
}

func (c *MemoryRateCache) Set(
	_ context.Context,
	key string,
	rates map[string]provider.RateInfo,
	ttl time.Duration,
) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{rates: rates, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

var _ provider.RateCache = (*MemoryRateCache)(nil)
