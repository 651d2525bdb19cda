// Package scheduler drives batch scoring jobs across a player collection.
//
// A job scores every player against a selected set of roles, attaches the
// best role per player, and reports coarse progress. The computation itself
// runs on a ComputeBackend: the concurrent backend keeps the caller's
// goroutine free and streams progress, the inline backend performs the
// identical computation synchronously and serves as the recovery path when
// the concurrent one cannot.
package scheduler

import (
	"context"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/role"
	"github.com/okian/scout/internal/domain/scoring"
)

// Job is one in-flight scoring request. Roles carries the full weight
// catalog so a backend can rebuild its lookup from the payload alone;
// nothing from an earlier job can leak into the next one.
type Job struct {
	ID        string
	Players   []model.Player
	RoleCodes []string
	Roles     []role.Role
}

// ProgressFunc receives completion percentages in [0, 100]. Values are
// non-decreasing within one job.
type ProgressFunc func(percent int)

// ComputeBackend executes scoring jobs.
type ComputeBackend interface {
	// Run executes the job and returns the scored players in input order.
	// onProgress may be nil; backends without progress reporting ignore it.
	Run(ctx context.Context, job Job, onProgress ProgressFunc) ([]model.Player, error)

	// Close releases backend resources. A closed backend rejects new jobs.
	Close() error
}

// InlineBackend computes jobs synchronously in the caller's goroutine.
// Same arithmetic and output shape as the concurrent backend, no progress
// events and no yielding.
type InlineBackend struct{}

// NewInlineBackend creates an inline backend.
func NewInlineBackend() *InlineBackend {
	return &InlineBackend{}
}

// Run implements ComputeBackend.
func (b *InlineBackend) Run(ctx context.Context, job Job, _ ProgressFunc) ([]model.Player, error) {
	engine := scoring.NewEngine(role.FromRoles(job.Roles))

	results := make([]model.Player, len(job.Players))
	for i, p := range job.Players {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = engine.ProcessPlayer(p, job.RoleCodes)
	}
	return results, nil
}

// Close implements ComputeBackend. The inline backend holds no resources.
func (b *InlineBackend) Close() error {
	return nil
}
