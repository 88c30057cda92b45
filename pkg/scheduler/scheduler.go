// Package scheduler re-runs the news pipeline on a fixed interval
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/ainews/pkg/pipeline"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

const defaultInterval = 6 * time.Hour

// Runner executes a single pipeline run
type Runner interface {
	Run(ctx context.Context) (*pipeline.Result, error)
}

// Params defines scheduler dependencies and settings
type Params struct {
	Runner   Runner
	Interval time.Duration
	OnResult func(res *pipeline.Result) // optional, called after each successful run
}

// Scheduler runs the pipeline periodically. Runs never overlap.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	onResult func(res *pipeline.Result)

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New creates a scheduler, zero interval means every 6 hours
func New(p Params) *Scheduler {
	if p.Interval <= 0 {
		p.Interval = defaultInterval
	}
	return &Scheduler{runner: p.Runner, interval: p.Interval, onResult: p.OnResult}
}

// Start begins periodic runs. The first run happens after one interval.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.worker(ctx)

	lgr.Printf("[INFO] scheduler started with interval %v", s.interval)
}

// Stop cancels the current run, if any, and waits for the worker to exit
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	res, err := s.runner.Run(ctx)
	if err != nil {
		lgr.Printf("[WARN] scheduled run failed: %v", err)
		return
	}
	lgr.Printf("[INFO] scheduled run completed in %v, %d topics, report %s",
		time.Since(start).Truncate(time.Millisecond), res.Stats.Total, res.ReportPath)
	if s.onResult != nil {
		s.onResult(res)
	}
}
