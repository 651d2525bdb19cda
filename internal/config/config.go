// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment sources on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Default sizing constants.
const (
	defaultChunkSize      = 100
	defaultJobBufferSize  = 4
	defaultMaxDatasetSize = 20_000
	defaultCacheShards    = 8
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ChunkSize sets how many players a scoring job processes between
	// progress reports.
	ChunkSize int `koanf:"chunk_size"`

	// Parallelism bounds concurrent per-player scoring inside a chunk.
	Parallelism int `koanf:"parallelism"`

	// JobBufferSize bounds the compute backend's pending-job channel.
	JobBufferSize int `koanf:"job_buffer_size"`

	// MaxDatasetSize caps the number of players accepted on import.
	MaxDatasetSize int `koanf:"max_dataset_size"`

	// CacheShardCount configures the number of shards in the score cache.
	CacheShardCount int `koanf:"cache_shard_count"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9090",
		ChunkSize:       defaultChunkSize,
		Parallelism:     runtime.NumCPU(),
		JobBufferSize:   defaultJobBufferSize,
		MaxDatasetSize:  defaultMaxDatasetSize,
		CacheShardCount: defaultCacheShards,
	}
}
