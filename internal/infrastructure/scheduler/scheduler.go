// Package scheduler runs the periodic background jobs on gocron.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/hotline-inc/hotline/internal/shared/config"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// BatchJob processes one batch per call and reports how many items it handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// JobSpec describes how often a BatchJob runs.
type JobSpec struct {
	Name       string
	Tags       []string
	Every      time.Duration
	Timeout    time.Duration
	RunOnStart bool
}

const defaultJobTimeout = 5 * time.Minute

// Scheduler owns a gocron scheduler. Runs of the same job never overlap and
// are cancelled when the scheduler stops.
type Scheduler struct {
	cron   gocron.Scheduler
	logger logger.Interface

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a stopped Scheduler evaluating its schedules in loc.
func New(loc *time.Location, log logger.Interface) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	cron, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron,
		logger: log.With("component", "scheduler"),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Register adds job under spec.
func (s *Scheduler) Register(spec JobSpec, job BatchJob) error {
	if spec.Every <= 0 {
		return fmt.Errorf("job %s: interval must be positive", spec.Name)
	}
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}

	opts := []gocron.JobOption{
		gocron.WithName(spec.Name),
		gocron.WithTags(spec.Tags...),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if spec.RunOnStart {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	task := gocron.NewTask(func() {
		ctx, cancel := context.WithTimeout(s.ctx, timeout)
		defer cancel()
		s.run(ctx, spec.Name, job)
	})
	if _, err := s.cron.NewJob(gocron.DurationJob(spec.Every), task, opts...); err != nil {
		return fmt.Errorf("failed to register job %s: %w", spec.Name, err)
	}

	s.logger.Infow("job registered", "job", spec.Name, "every", spec.Every.String(), "run_on_start", spec.RunOnStart)
	return nil
}

// RegisterArchiveJob schedules the archival sweep from cfg.
func (s *Scheduler) RegisterArchiveJob(job BatchJob, cfg config.ArchiveConfig) error {
	return s.Register(JobSpec{
		Name:       "ticket-archive-sweep",
		Tags:       []string{"ticket", "archive"},
		Every:      cfg.Interval,
		Timeout:    cfg.Timeout,
		RunOnStart: cfg.RunOnStart,
	}, job)
}

func (s *Scheduler) run(ctx context.Context, name string, job BatchJob) {
	start := time.Now()
	n, err := job.Execute(ctx)
	elapsed := time.Since(start)

	switch {
	case err != nil && s.ctx.Err() != nil:
		s.logger.Debugw("job interrupted by shutdown", "job", name)
	case err != nil:
		s.logger.Errorw("job failed", "job", name, "error", err, "duration", elapsed)
	case n > 0:
		s.logger.Infow("job completed", "job", name, "processed", n, "duration", elapsed)
	default:
		s.logger.Debugw("job found nothing to do", "job", name, "duration", elapsed)
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.logger.Infow("scheduler started", "jobs", len(s.cron.Jobs()))
}

// Stop cancels running jobs and waits for them to return. A stopped
// Scheduler cannot be restarted.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	s.cancel()
	if err := s.cron.Shutdown(); err != nil {
		return fmt.Errorf("scheduler shutdown: %w", err)
	}
	s.logger.Infow("scheduler stopped")
	return nil
}

// Jobs lists the registered jobs.
func (s *Scheduler) Jobs() []gocron.Job {
	return s.cron.Jobs()
}
