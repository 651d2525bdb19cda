package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/role"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Scheduler runs batch scoring jobs against a role catalog.
//
// Each job goes to the primary backend first. If the primary fails for any
// reason other than the caller's own cancellation, the same job is replayed
// on the fallback backend; the caller sees an error only when both fail.
// The fallback run reports no progress.
type Scheduler struct {
	catalog  *role.Catalog
	backend  ComputeBackend
	fallback ComputeBackend
	cache    repository.Store
	logger   logger.Logger
}

// NewScheduler creates a scheduler with configuration options. Without
// options it uses a concurrent primary backend with defaults and an inline
// fallback, and skips cache writeback.
func NewScheduler(catalog *role.Catalog, opts ...Option) *Scheduler {
	s := &Scheduler{
		catalog: catalog,
		logger:  logger.Get().Named("scheduler"),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.backend == nil {
		s.backend = NewConcurrentBackend()
	}
	if s.fallback == nil {
		s.fallback = NewInlineBackend()
	}

	return s
}

// CalculateAll scores every player against the selected role codes and
// returns the scored players in input order. onProgress, when non-nil,
// receives non-decreasing percentages and is always invoked before
// CalculateAll returns its final result for the same job.
//
// On success the (name, role code) scores are written to the cache, if one
// is configured.
func (s *Scheduler) CalculateAll(ctx context.Context, players []model.Player, roleCodes []string, onProgress ProgressFunc) ([]model.Player, error) {
	job := Job{
		ID:        uuid.NewString(),
		Players:   players,
		RoleCodes: roleCodes,
		Roles:     s.catalog.Roles(),
	}

	metrics.RecordJobStarted()
	start := time.Now()

	results, err := s.backend.Run(ctx, job, onProgress)
	if err != nil && ctx.Err() == nil {
		s.logger.Warn(ctx, "primary backend failed, retrying inline",
			logger.String("job_id", job.ID),
			logger.Int("players", len(players)),
			logger.Error(err),
		)
		metrics.RecordJobFallback()
		results, err = s.fallback.Run(ctx, job, nil)
	}
	if err != nil {
		metrics.RecordJobFailed()
		metrics.RecordErrorByComponent("scheduler", "job_failed")
		return nil, fmt.Errorf("%w: job %s: %s", ErrJobFailed, job.ID, err)
	}

	s.writeback(ctx, results)

	elapsed := time.Since(start)
	metrics.RecordPlayersScored(len(results))
	metrics.RecordJobCompleted()
	metrics.RecordJobDuration(float64(elapsed.Milliseconds()))
	s.logger.Info(ctx, "scoring job completed",
		logger.String("job_id", job.ID),
		logger.Int("players", len(results)),
		logger.Int("roles", len(roleCodes)),
		logger.Duration("elapsed", elapsed),
	)

	return results, nil
}

// writeback copies every computed (name, role code) score into the cache.
func (s *Scheduler) writeback(ctx context.Context, players []model.Player) {
	if s.cache == nil {
		return
	}
	for _, p := range players {
		for code, score := range p.RoleScores {
			s.cache.Put(ctx, p.Name, code, score)
		}
	}
	s.cache.Len(ctx)
}

// Close shuts down both backends. Safe to call more than once.
func (s *Scheduler) Close() error {
	return errors.Join(s.backend.Close(), s.fallback.Close())
}
