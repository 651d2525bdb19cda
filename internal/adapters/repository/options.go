// Package repository defines the score cache interface and errors.
package repository

// Option applies a configuration option to the ScoreCache.
type Option func(*ScoreCache)

// WithShardCount sets the number of shards in the cache.
func WithShardCount(count int) Option {
	return func(c *ScoreCache) {
		if count > 0 {
			c.shardCount = count
		}
	}
}
