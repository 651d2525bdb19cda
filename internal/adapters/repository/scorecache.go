package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/okian/scout/pkg/metrics"
)

// Default cache configuration constants.
const (
	defaultShardCount = 8
)

// ScoreCache is a sharded, in-memory Store implementation.
//
// Sharding by key hash keeps writer contention low while a completing job
// appends thousands of entries; reads take a single shard RLock.
type ScoreCache struct {
	shards     []*cacheShard
	shardCount int
}

type cacheShard struct {
	mu      sync.RWMutex
	entries map[string]float64
}

// NewScoreCache creates a new score cache with configuration options.
func NewScoreCache(opts ...Option) *ScoreCache {
	c := &ScoreCache{
		shardCount: defaultShardCount,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.shards = make([]*cacheShard, c.shardCount)
	for i := range c.shards {
		c.shards[i] = &cacheShard{entries: make(map[string]float64)}
	}

	return c
}

// cacheKey joins the player name and role code. The NUL separator cannot
// occur in either part, so distinct pairs never collide.
func cacheKey(name, roleCode string) string {
	return name + "\x00" + roleCode
}

func (c *ScoreCache) shardFor(key string) *cacheShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return c.shards[h.Sum32()%uint32(c.shardCount)]
}

// Put records the score for a (player name, role code) pair.
func (c *ScoreCache) Put(_ context.Context, name, roleCode string, score float64) {
	key := cacheKey(name, roleCode)
	shard := c.shardFor(key)

	shard.mu.Lock()
	shard.entries[key] = score
	shard.mu.Unlock()
}

// Get returns the cached score for a (player name, role code) pair.
func (c *ScoreCache) Get(ctx context.Context, name, roleCode string) (float64, error) {
	key := cacheKey(name, roleCode)
	shard := c.shardFor(key)

	shard.mu.RLock()
	score, ok := shard.entries[key]
	shard.mu.RUnlock()

	if !ok {
		metrics.RecordCacheMiss()
		return 0, fmt.Errorf("%w: %s/%s", ErrNotFound, name, roleCode)
	}
	metrics.RecordCacheHit()
	return score, nil
}

// Len returns the current number of cached entries.
func (c *ScoreCache) Len(_ context.Context) int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	metrics.UpdateCacheEntries(total)
	return total
}

// Clear removes every entry.
func (c *ScoreCache) Clear(_ context.Context) {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.entries = make(map[string]float64)
		shard.mu.Unlock()
	}
	metrics.UpdateCacheEntries(0)
}
