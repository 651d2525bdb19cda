package scheduler

import (
	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/pkg/logger"
)

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithBackend sets the primary compute backend.
func WithBackend(backend ComputeBackend) Option {
	return func(s *Scheduler) {
		if backend != nil {
			s.backend = backend
		}
	}
}

// WithFallback sets the backend used when the primary one fails.
func WithFallback(backend ComputeBackend) Option {
	return func(s *Scheduler) {
		if backend != nil {
			s.fallback = backend
		}
	}
}

// WithCache sets the score cache that completed jobs write into.
func WithCache(cache repository.Store) Option {
	return func(s *Scheduler) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithLogger sets the logger for the Scheduler.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// BackendOption applies a configuration option to the ConcurrentBackend.
type BackendOption func(*ConcurrentBackend)

// WithChunkSize sets how many players are scored between progress events.
func WithChunkSize(size int) BackendOption {
	return func(b *ConcurrentBackend) {
		if size > 0 {
			b.chunkSize = size
		}
	}
}

// WithParallelism caps the number of players scored at once within a chunk.
func WithParallelism(n int) BackendOption {
	return func(b *ConcurrentBackend) {
		if n > 0 {
			b.parallelism = n
		}
	}
}

// WithJobBufferSize sets the capacity of the pending-job queue.
func WithJobBufferSize(size int) BackendOption {
	return func(b *ConcurrentBackend) {
		if size > 0 {
			b.bufferSize = size
		}
	}
}

// WithComputeLogger sets the logger for the ConcurrentBackend.
func WithComputeLogger(l logger.Logger) BackendOption {
	return func(b *ConcurrentBackend) {
		if l != nil {
			b.logger = l
		}
	}
}
