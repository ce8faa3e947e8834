// Package scheduler runs recurring maintenance jobs on a cron
// schedule. Each run takes a short-lived Redis lock first, so a job
// fires on exactly one replica per window.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/cache"
)

const (
	// Common cron expressions
	EveryMinute      = "* * * * *"
	EveryFiveMinutes = "*/5 * * * *"
	EveryHour        = "0 * * * *"
	DailyMidnight    = "0 0 * * *"
)

// DefaultLockTTL bounds how long a run lock is held if a job dies
// without releasing it.
const DefaultLockTTL = 10 * time.Minute

// Job is a recurring maintenance task.
type Job struct {
	Name     string
	Schedule string // Cron expression
	Run      func(ctx context.Context) error
	// LockTTL caps the run lock lifetime. Zero means DefaultLockTTL.
	LockTTL time.Duration
}

// Scheduler manages cron-based jobs with per-run locking.
type Scheduler struct {
	store  cache.Store
	logger *zap.Logger
	cron   *cron.Cron
	jobs   map[string]Job
	mu     sync.RWMutex

	running bool
	// runCtx outlives the Start call: fx-style lifecycles cancel the
	// start context once startup completes, which must not kill the
	// scheduled runs. Stop cancels it.
	runCtx context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler. Jobs are registered before Start.
func NewScheduler(store cache.Store, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		logger: logger,
		cron:   cron.New(),
		jobs:   make(map[string]Job),
	}
}

// RegisterJob registers a job. The cron expression is validated here so
// a bad schedule fails at wiring time, not silently at runtime.
func (s *Scheduler) RegisterJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job %s already registered", job.Name)
	}
	if job.Run == nil {
		return fmt.Errorf("job %s has no run function", job.Name)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(job.Schedule); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	s.jobs[job.Name] = job
	s.logger.Info("Registered scheduled job",
		zap.String("name", job.Name),
		zap.String("schedule", job.Schedule),
	)
	return nil
}

// Start starts the cron loop. The start context only bounds startup;
// scheduled runs use a context owned by the scheduler so they survive
// the caller cancelling it after boot.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	s.running = true
	s.runCtx, s.cancel = context.WithCancel(context.Background())

	for _, job := range s.jobs {
		j := job
		_, err := s.cron.AddFunc(j.Schedule, func() {
			s.runJob(s.runCtx, j)
		})
		if err != nil {
			s.logger.Error("Failed to add cron job",
				zap.String("name", j.Name),
				zap.Error(err),
			)
		}
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop stops the cron loop and waits for in-flight jobs, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false
	s.cancel()

	cronCtx := s.cron.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("Scheduler stopped")
	return nil
}

// runJob executes one job run behind its lock. Losing the lock race
// means another replica owns this window.
func (s *Scheduler) runJob(ctx context.Context, job Job) {
	ttl := job.LockTTL
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}

	lockName := "job:" + job.Name
	acquired, err := s.store.AcquireLock(ctx, lockName, ttl)
	if err != nil {
		s.logger.Error("Failed to acquire job lock",
			zap.String("name", job.Name),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		s.logger.Debug("Job running on another replica",
			zap.String("name", job.Name),
		)
		return
	}
	defer func() {
		if err := s.store.ReleaseLock(ctx, lockName); err != nil {
			s.logger.Warn("Failed to release job lock",
				zap.String("name", job.Name),
				zap.Error(err),
			)
		}
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("Scheduled job failed",
			zap.String("name", job.Name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Scheduled job completed",
		zap.String("name", job.Name),
		zap.Duration("duration", time.Since(start)),
	)
}

// RunNow executes a registered job immediately, outside its schedule.
// The run lock still applies.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	job, exists := s.jobs[name]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job %s not found", name)
	}
	s.runJob(ctx, job)
	return nil
}

// ListJobs returns the registered jobs.
func (s *Scheduler) ListJobs() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		result = append(result, job)
	}
	return result
}

// NextRun returns the next scheduled run time for a job.
func (s *Scheduler) NextRun(name string) (time.Time, error) {
	s.mu.RLock()
	job, exists := s.jobs[name]
	s.mu.RUnlock()

	if !exists {
		return time.Time{}, fmt.Errorf("job %s not found", name)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(job.Schedule)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(time.Now()), nil
}
