package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
	"github.com/jrjohn/streamlens-go/internal/domain/service/impl"
	"github.com/jrjohn/streamlens-go/internal/testutil/mocks"
)

func testScheduler() (*Scheduler, *mocks.MockCacheStore) {
	store := mocks.NewMockCacheStore()
	return NewScheduler(store, zap.NewNop()), store
}

func TestRegisterJob(t *testing.T) {
	s, _ := testScheduler()

	err := s.RegisterJob(Job{
		Name:     "purge",
		Schedule: DailyMidnight,
		Run:      func(ctx context.Context) error { return nil },
	})
	require.NoError(t, err)
	assert.Len(t, s.ListJobs(), 1)
}

func TestRegisterJob_Duplicate(t *testing.T) {
	s, _ := testScheduler()

	job := Job{
		Name:     "purge",
		Schedule: DailyMidnight,
		Run:      func(ctx context.Context) error { return nil },
	}
	require.NoError(t, s.RegisterJob(job))

	err := s.RegisterJob(job)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterJob_InvalidSchedule(t *testing.T) {
	s, _ := testScheduler()

	err := s.RegisterJob(Job{
		Name:     "bad",
		Schedule: "not a cron expression",
		Run:      func(ctx context.Context) error { return nil },
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron expression")
}

func TestRegisterJob_NilRun(t *testing.T) {
	s, _ := testScheduler()

	err := s.RegisterJob(Job{Name: "empty", Schedule: EveryHour})
	assert.Error(t, err)
}

func TestRunNow(t *testing.T) {
	s, store := testScheduler()

	runs := 0
	require.NoError(t, s.RegisterJob(Job{
		Name:     "count",
		Schedule: EveryMinute,
		Run: func(ctx context.Context) error {
			runs++
			return nil
		},
	}))

	require.NoError(t, s.RunNow(context.Background(), "count"))
	assert.Equal(t, 1, runs)

	// The run lock must be released after a successful run.
	acquired, err := store.AcquireLock(context.Background(), "job:count", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRunNow_Unknown(t *testing.T) {
	s, _ := testScheduler()
	assert.Error(t, s.RunNow(context.Background(), "missing"))
}

func TestRunNow_LockHeldSkips(t *testing.T) {
	s, store := testScheduler()

	runs := 0
	require.NoError(t, s.RegisterJob(Job{
		Name:     "count",
		Schedule: EveryMinute,
		Run: func(ctx context.Context) error {
			runs++
			return nil
		},
	}))

	acquired, err := store.AcquireLock(context.Background(), "job:count", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, s.RunNow(context.Background(), "count"))
	assert.Equal(t, 0, runs)
}

func TestRunNow_FailureReleasesLock(t *testing.T) {
	s, store := testScheduler()

	require.NoError(t, s.RegisterJob(Job{
		Name:     "broken",
		Schedule: EveryMinute,
		Run: func(ctx context.Context) error {
			return errors.New("boom")
		},
	}))

	require.NoError(t, s.RunNow(context.Background(), "broken"))

	acquired, err := store.AcquireLock(context.Background(), "job:broken", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestStartStop(t *testing.T) {
	s, _ := testScheduler()

	require.NoError(t, s.RegisterJob(Job{
		Name:     "noop",
		Schedule: EveryHour,
		Run:      func(ctx context.Context) error { return nil },
	}))

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	assert.Error(t, s.Start(ctx), "second start must fail")

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	assert.NoError(t, s.Stop(stopCtx), "stop is idempotent")
}

func TestStart_RunsSurviveStartContextCancel(t *testing.T) {
	s, store := testScheduler()

	var runErr error
	runs := 0
	require.NoError(t, s.RegisterJob(Job{
		Name:     "purge",
		Schedule: EveryHour,
		Run: func(ctx context.Context) error {
			runs++
			runErr = ctx.Err()
			return nil
		},
	}))

	// Lifecycle-style start: the caller cancels the start context as
	// soon as startup completes.
	startCtx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(startCtx))
	cancel()

	// Fire the registered cron closure directly instead of waiting for
	// the schedule.
	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	entries[0].Job.Run()

	assert.Equal(t, 1, runs, "job must still fire after the start context is cancelled")
	assert.NoError(t, runErr, "job context must not inherit the cancelled start context")

	// The lock round-trip must have gone through the store, not failed
	// on a dead context.
	acquired, err := store.AcquireLock(context.Background(), "job:purge", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "run lock was never acquired or released")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))
}

func TestNextRun(t *testing.T) {
	s, _ := testScheduler()

	require.NoError(t, s.RegisterJob(Job{
		Name:     "daily",
		Schedule: DailyMidnight,
		Run:      func(ctx context.Context) error { return nil },
	}))

	next, err := s.NextRun("daily")
	require.NoError(t, err)
	assert.True(t, next.After(time.Now()))

	_, err = s.NextRun("missing")
	assert.Error(t, err)
}

func TestTokenPurgeJob(t *testing.T) {
	tokens := mocks.NewMockRefreshTokenRepository()
	ctx := context.Background()

	expired := &entity.RefreshToken{UserID: 1, Token: "stale", ExpiresAt: time.Now().Add(-time.Hour)}
	valid := &entity.RefreshToken{UserID: 1, Token: "fresh", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, tokens.Create(ctx, expired))
	require.NoError(t, tokens.Create(ctx, valid))

	job := NewTokenPurgeJob(tokens, zap.NewNop())
	assert.Equal(t, JobTokenPurge, job.Name)
	require.NoError(t, job.Run(ctx))

	got, err := tokens.GetByToken(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = tokens.GetByToken(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestImportSweepJob_Disabled(t *testing.T) {
	cfg := &config.Config{}
	job := NewImportSweepJob(cfg, nil, zap.NewNop())
	assert.Empty(t, job.Name)
}

func TestImportSweepJob(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Import: config.ImportConfig{
			WatchDir:     dir,
			WatchEnabled: true,
			SystemUserID: 1,
		},
		Analytics: config.AnalyticsConfig{DefaultLimit: 100, MaxLimit: 1000},
	}

	contentRepo := mocks.NewMockContentRepository()
	contentService := impl.NewContentService(
		contentRepo,
		mocks.NewMockImportErrorRepository(),
		mocks.NewMockActivityRepository(),
		cfg,
		nil,
		zap.NewNop(),
	)

	csvPath := filepath.Join(dir, "drop.csv")
	data := "platform,title,year,primary_language\nnetflix,Sacred Games,2018,hindi\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0o644))

	job := NewImportSweepJob(cfg, contentService, zap.NewNop())
	require.Equal(t, JobImportSweep, job.Name)
	assert.Equal(t, EveryFiveMinutes, job.Schedule, "schedule falls back to the five minute default")

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, contentRepo.Count())

	_, err := os.Stat(csvPath)
	assert.True(t, os.IsNotExist(err), "processed file should be renamed")
	_, err = os.Stat(csvPath + ".imported")
	assert.NoError(t, err)

	// A second run finds nothing new.
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, contentRepo.Count())
}
