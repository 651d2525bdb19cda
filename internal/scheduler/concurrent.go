package scheduler

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/role"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Default backend configuration constants.
const (
	defaultChunkSize     = 100
	defaultJobBufferSize = 4
	closeTimeout         = 5 * time.Second
)

type eventKind int

const (
	eventProgress eventKind = iota
	eventComplete
	eventFailed
)

// jobEvent is one message from the compute goroutine to a waiting caller.
// Every event carries the job id it belongs to; callers only ever see events
// for the job they subscribed to.
type jobEvent struct {
	jobID    string
	kind     eventKind
	progress int
	results  []model.Player
	err      error
}

// ConcurrentBackend executes jobs on a dedicated long-lived compute
// goroutine, keeping the caller's goroutine responsive. Players are
// processed in fixed-size chunks with a progress event after each chunk;
// inside a chunk, players are scored in parallel up to the configured limit.
//
// The compute goroutine rebuilds its role-weight lookup from each job's
// payload, so consecutive jobs cannot observe each other's catalog. One
// backend serves many jobs over its lifetime and must be closed by its
// owner; an unclosed backend leaks its compute goroutine.
type ConcurrentBackend struct {
	chunkSize   int
	parallelism int
	bufferSize  int

	requests chan Job

	mu   sync.Mutex
	subs map[string]chan jobEvent

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	logger logger.Logger
}

// NewConcurrentBackend creates a backend and starts its compute goroutine.
func NewConcurrentBackend(opts ...BackendOption) *ConcurrentBackend {
	b := &ConcurrentBackend{
		chunkSize:   defaultChunkSize,
		parallelism: runtime.NumCPU(),
		bufferSize:  defaultJobBufferSize,
		subs:        make(map[string]chan jobEvent),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		logger:      logger.Get().Named("compute"),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.requests = make(chan Job, b.bufferSize)

	go b.run()

	return b
}

// Run implements ComputeBackend. It dispatches the job to the compute
// goroutine and waits for its terminal event, forwarding progress along the
// way. The subscription is filtered by job id and torn down on every exit
// path, so an abandoned job cannot deliver events to a later caller.
func (b *ConcurrentBackend) Run(ctx context.Context, job Job, onProgress ProgressFunc) ([]model.Player, error) {
	// Sized for every event the job can emit, so the compute goroutine
	// never blocks on a slow or departed subscriber.
	capacity := len(job.Players)/max(b.chunkSize, 1) + 3
	events := b.subscribe(job.ID, capacity)
	defer b.unsubscribe(job.ID)

	select {
	case b.requests <- job:
	case <-b.stop:
		return nil, ErrBackendClosed
	case <-ctx.Done():
		return nil, fmt.Errorf("dispatch job %s: %w", job.ID, ctx.Err())
	}

	lastProgress := -1
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("await job %s: %w", job.ID, ctx.Err())
		case <-b.done:
			return nil, ErrBackendClosed
		case ev := <-events:
			switch ev.kind {
			case eventProgress:
				if ev.progress > lastProgress {
					lastProgress = ev.progress
					metrics.UpdateJobProgress(ev.progress)
					if onProgress != nil {
						onProgress(ev.progress)
					}
				}
			case eventComplete:
				return ev.results, nil
			case eventFailed:
				return nil, ev.err
			}
		}
	}
}

// Close stops the compute goroutine. Safe to call more than once.
func (b *ConcurrentBackend) Close() error {
	b.stopOnce.Do(func() { close(b.stop) })

	select {
	case <-b.done:
		return nil
	case <-time.After(closeTimeout):
		return fmt.Errorf("%w after %s", ErrCloseTimeout, closeTimeout)
	}
}

// run is the compute goroutine loop.
func (b *ConcurrentBackend) run() {
	defer close(b.done)

	for {
		select {
		case <-b.stop:
			return
		case job := <-b.requests:
			b.process(job)
		}
	}
}

// process scores one job and publishes its events. A panic anywhere in the
// computation becomes the job's terminal failure event instead of taking
// down the goroutine.
func (b *ConcurrentBackend) process(job Job) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error(context.Background(), "compute job panicked",
				logger.String("job_id", job.ID),
				logger.Any("panic", r),
			)
			metrics.RecordErrorByComponent("compute", "panic")
			b.publish(jobEvent{jobID: job.ID, kind: eventFailed, err: fmt.Errorf("%w: %v", ErrComputeFailed, r)})
		}
	}()

	// Fresh lookup per job, built from the payload.
	engine := scoring.NewEngine(role.FromRoles(job.Roles))

	total := len(job.Players)
	results := make([]model.Player, total)

	for start := 0; start < total; start += b.chunkSize {
		end := min(start+b.chunkSize, total)

		chunkStart := time.Now()
		g := new(errgroup.Group)
		g.SetLimit(b.parallelism)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				results[i] = engine.ProcessPlayer(job.Players[i], job.RoleCodes)
				return nil
			})
		}
		_ = g.Wait()
		metrics.RecordChunkLatency(float64(time.Since(chunkStart).Milliseconds()))

		progress := int(math.Round(math.Min(100, float64(end)/float64(total)*100)))
		b.publish(jobEvent{jobID: job.ID, kind: eventProgress, progress: progress})
	}

	b.publish(jobEvent{jobID: job.ID, kind: eventComplete, results: results})
}

func (b *ConcurrentBackend) subscribe(jobID string, capacity int) chan jobEvent {
	ch := make(chan jobEvent, capacity)
	b.mu.Lock()
	b.subs[jobID] = ch
	b.mu.Unlock()
	return ch
}

func (b *ConcurrentBackend) unsubscribe(jobID string) {
	b.mu.Lock()
	delete(b.subs, jobID)
	b.mu.Unlock()
}

// publish delivers an event to the job's subscriber, if it is still there.
// Events for jobs whose caller has gone away are dropped.
func (b *ConcurrentBackend) publish(ev jobEvent) {
	b.mu.Lock()
	ch, ok := b.subs[ev.jobID]
	b.mu.Unlock()
	if !ok {
		return
	}

	select {
	case ch <- ev:
	case <-b.stop:
	}
}
