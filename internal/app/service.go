// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/query"
	"github.com/okian/scout/internal/domain/role"
	"github.com/okian/scout/internal/scheduler"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Service owns the player roster, the role catalog, the scoring scheduler
// and the score cache, and implements the API dependencies for the scouting
// system.
//
// The roster is name-keyed: importing a player whose name is already present
// replaces the existing record. Scoring jobs snapshot the roster, so a
// concurrent import never corrupts a running job; its results simply describe
// the roster as it was when the job started.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog   *role.Catalog
	scores    repository.Store
	scheduler *scheduler.Scheduler

	// Roster, ordered by import sequence. byName indexes into roster.
	roster []model.Player
	byName map[string]int

	// Configuration
	chunkSize      int
	parallelism    int
	jobBufferSize  int
	cacheShards    int
	maxDatasetSize int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog replaces the embedded role catalog.
func WithCatalog(catalog *role.Catalog) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithChunkSize sets how many players a scoring job processes between
// progress updates.
func WithChunkSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithParallelism caps concurrent player scoring within a chunk.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithJobBufferSize sets the capacity of the pending scoring job queue.
func WithJobBufferSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.jobBufferSize = size
		}
	}
}

// WithCacheShards sets the shard count of the score cache.
func WithCacheShards(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.cacheShards = count
		}
	}
}

// WithMaxDatasetSize caps the roster size an import may produce.
func WithMaxDatasetSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxDatasetSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		chunkSize:      100,
		parallelism:    runtime.NumCPU(),
		jobBufferSize:  4,
		cacheShards:    8,
		maxDatasetSize: 20000,
		byName:         make(map[string]int),
		logger:         nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scouting service...")

	if s.catalog == nil {
		catalog, err := role.Default()
		if err != nil {
			return fmt.Errorf("load role catalog: %w", err)
		}
		s.catalog = catalog
	}

	s.scores = repository.NewScoreCache(
		repository.WithShardCount(s.cacheShards),
	)

	backend := scheduler.NewConcurrentBackend(
		scheduler.WithChunkSize(s.chunkSize),
		scheduler.WithParallelism(s.parallelism),
		scheduler.WithJobBufferSize(s.jobBufferSize),
	)
	s.scheduler = scheduler.NewScheduler(s.catalog,
		scheduler.WithBackend(backend),
		scheduler.WithCache(s.scores),
		scheduler.WithLogger(s.logger.Named("scheduler")),
	)

	s.started = true
	s.logger.Info(ctx, "scouting service started",
		logger.Int("roles", s.catalog.Len()),
		logger.Int("chunkSize", s.chunkSize),
		logger.Int("parallelism", s.parallelism),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping scouting service...")

	if s.scheduler != nil {
		if err := s.scheduler.Close(); err != nil {
			s.logger.Warn(context.Background(), "scheduler shutdown", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "scouting service stopped")
}

// ImportPlayers merges the given players into the roster. A player whose
// name is already present replaces the existing record; everyone else is
// appended in input order. Cached scores describe the pre-import roster, so
// the score cache is cleared.
//
// Returns how many players were added and how many replaced.
func (s *Service) ImportPlayers(ctx context.Context, players []model.Player) (added, replaced int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return 0, 0, ErrNotStarted
	}

	incomingNew := 0
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		if _, ok := s.byName[p.Name]; !ok {
			incomingNew++
		}
	}
	if len(s.roster)+incomingNew > s.maxDatasetSize {
		return 0, 0, fmt.Errorf("%w: %d players, limit %d",
			ErrDatasetTooLarge, len(s.roster)+incomingNew, s.maxDatasetSize)
	}

	for _, p := range players {
		if idx, ok := s.byName[p.Name]; ok {
			s.roster[idx] = p
			replaced++
			continue
		}
		s.byName[p.Name] = len(s.roster)
		s.roster = append(s.roster, p)
		added++
	}

	s.scores.Clear(ctx)

	metrics.RecordPlayersImported(added)
	metrics.RecordPlayersReplaced(replaced)
	metrics.UpdateRosterSize(len(s.roster))
	s.logger.Info(ctx, "players imported",
		logger.Int("added", added),
		logger.Int("replaced", replaced),
		logger.Int("rosterSize", len(s.roster)),
	)

	return added, replaced, nil
}

// Players returns a copy of the roster in import order.
func (s *Service) Players(_ context.Context) []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Player, len(s.roster))
	copy(out, s.roster)
	return out
}

// Roles returns the role catalog in definition order.
func (s *Service) Roles(_ context.Context) []role.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return nil
	}
	return s.catalog.Roles()
}

// RoleByCode returns a single role from the catalog.
func (s *Service) RoleByCode(_ context.Context, code string) (role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return role.Role{}, ErrNotStarted
	}
	r, ok := s.catalog.Get(code)
	if !ok {
		return role.Role{}, fmt.Errorf("%w: %s", ErrUnknownRole, code)
	}
	return r, nil
}

// ScoreAll runs one batch scoring job over the current roster. An empty
// role selection means every role in the catalog. The scored players are
// written back into the roster, so subsequent Players calls see the scores.
//
// onProgress may be nil.
func (s *Service) ScoreAll(ctx context.Context, roleCodes []string, onProgress scheduler.ProgressFunc) ([]model.Player, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return nil, ErrNotStarted
	}
	snapshot := make([]model.Player, len(s.roster))
	copy(snapshot, s.roster)
	if len(roleCodes) == 0 {
		for _, r := range s.catalog.Roles() {
			roleCodes = append(roleCodes, r.Code)
		}
	}
	sched := s.scheduler
	s.mu.RUnlock()

	results, err := sched.CalculateAll(ctx, snapshot, roleCodes, onProgress)
	if err != nil {
		return nil, err
	}

	// Fold the scores back into the roster. A player imported or replaced
	// while the job ran keeps its newer record.
	s.mu.Lock()
	for _, p := range results {
		if idx, ok := s.byName[p.Name]; ok && s.roster[idx].Name == p.Name {
			s.roster[idx] = p
		}
	}
	s.mu.Unlock()

	return results, nil
}

// CachedScore returns the cached score for a (player name, role code) pair
// from the most recent completed job covering that pair.
func (s *Service) CachedScore(ctx context.Context, name, roleCode string) (float64, error) {
	s.mu.RLock()
	store := s.scores
	s.mu.RUnlock()

	if store == nil {
		return 0, ErrNotStarted
	}
	return store.Get(ctx, name, roleCode)
}

// ClearScores empties the score cache.
func (s *Service) ClearScores(ctx context.Context) {
	s.mu.RLock()
	store := s.scores
	s.mu.RUnlock()

	if store != nil {
		store.Clear(ctx)
	}
}

// Filter returns the players matching the query group, in roster order.
// A nil or empty group matches everyone.
func (s *Service) Filter(ctx context.Context, g *query.Group) []model.Player {
	s.mu.RLock()
	snapshot := make([]model.Player, len(s.roster))
	copy(snapshot, s.roster)
	s.mu.RUnlock()

	start := time.Now()
	matched := make([]model.Player, 0, len(snapshot))
	for i := range snapshot {
		metrics.RecordQueryEvaluation()
		if query.EvaluateGroup(&snapshot[i], g) {
			metrics.RecordQueryMatch()
			matched = append(matched, snapshot[i])
		}
	}
	metrics.RecordQueryLatency(float64(time.Since(start).Milliseconds()))

	s.logger.Debug(ctx, "filter evaluated",
		logger.Int("candidates", len(snapshot)),
		logger.Int("matched", len(matched)),
	)

	return matched
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"chunkSize":      s.chunkSize,
		"parallelism":    s.parallelism,
		"maxDatasetSize": s.maxDatasetSize,
	}

	if s.started {
		stats["rosterSize"] = len(s.roster)
		stats["roleCount"] = s.catalog.Len()
		stats["cachedScores"] = s.scores.Len(ctx)

		metrics.UpdateRosterSize(len(s.roster))
	}

	return stats
}
