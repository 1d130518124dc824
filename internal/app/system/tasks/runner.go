// internal/app/system/tasks/runner.go

// Package tasks runs the site's periodic maintenance jobs: pruning expired
// page-password grants and trimming old audit events.
package tasks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Job is a named function run on a fixed interval. Run receives a context
// that is cancelled when the runner stops.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner owns one goroutine per registered job. Jobs run once immediately
// on Start and then on their interval until Stop.
type Runner struct {
	logger *zap.Logger
	jobs   []Job
	wg     sync.WaitGroup
	cancel context.CancelFunc

	// inFlight tracks jobs mid-execution so a timed-out shutdown can name
	// the stragglers.
	inFlight sync.Map
	active   atomic.Int32
}

func New(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Register adds a job. Call before Start.
func (r *Runner) Register(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start launches every registered job.
func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, job)
	}

	r.logger.Info("maintenance jobs started", zap.Int("jobs", len(r.jobs)))
}

// Stop cancels all jobs and waits for in-flight runs to finish. If ctx
// expires first, Stop returns ctx.Err() and logs which jobs were still
// going; pass context.Background() to wait indefinitely.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("maintenance jobs stopped")
		return nil
	case <-ctx.Done():
		var stuck []string
		r.inFlight.Range(func(key, _ any) bool {
			stuck = append(stuck, key.(string))
			return true
		})
		r.logger.Warn("maintenance shutdown timed out",
			zap.Strings("still_running", stuck),
			zap.Int32("active", r.active.Load()))
		return ctx.Err()
	}
}

// RunOnce triggers a registered job by name outside its schedule. Unknown
// names are a no-op.
func (r *Runner) RunOnce(ctx context.Context, name string) error {
	for _, job := range r.jobs {
		if job.Name == name {
			return job.Run(ctx)
		}
	}
	return nil
}

func (r *Runner) loop(ctx context.Context, job Job) {
	defer r.wg.Done()

	r.execute(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("job stopped", zap.String("job", job.Name))
			return
		case <-ticker.C:
			r.execute(ctx, job)
		}
	}
}

func (r *Runner) execute(ctx context.Context, job Job) {
	r.active.Add(1)
	r.inFlight.Store(job.Name, struct{}{})
	defer func() {
		r.active.Add(-1)
		r.inFlight.Delete(job.Name)
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		// A run interrupted by shutdown isn't a failure.
		if ctx.Err() != nil {
			r.logger.Debug("job interrupted by shutdown", zap.String("job", job.Name))
			return
		}
		r.logger.Error("job failed",
			zap.String("job", job.Name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}

	r.logger.Debug("job ran",
		zap.String("job", job.Name),
		zap.Duration("duration", time.Since(start)))
}
