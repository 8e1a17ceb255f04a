package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotline-inc/hotline/internal/shared/config"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.runs.Add(1)
	return 3, j.err
}

// blockingJob waits for its context and records whether it was cancelled.
type blockingJob struct {
	started   chan struct{}
	cancelled atomic.Bool
}

func (j *blockingJob) Execute(ctx context.Context) (int, error) {
	close(j.started)
	<-ctx.Done()
	j.cancelled.Store(errors.Is(ctx.Err(), context.Canceled))
	return 0, ctx.Err()
}

func newTestScheduler(t *testing.T) *Scheduler {
	s, err := New(time.UTC, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestScheduler_RunOnStart(t *testing.T) {
	s := newTestScheduler(t)
	job := &countingJob{}

	require.NoError(t, s.RegisterArchiveJob(job, config.ArchiveConfig{
		Interval:   time.Hour,
		MaxAge:     24 * time.Hour,
		RunOnStart: true,
	}))
	require.Len(t, s.Jobs(), 1)
	assert.Equal(t, "ticket-archive-sweep", s.Jobs()[0].Name())

	s.Start()
	s.Start()

	assert.Eventually(t, func() bool { return job.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestScheduler_WaitsForInterval(t *testing.T) {
	s := newTestScheduler(t)
	job := &countingJob{}

	require.NoError(t, s.RegisterArchiveJob(job, config.ArchiveConfig{Interval: time.Hour, MaxAge: time.Hour}))
	s.Start()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, job.runs.Load())
}

func TestScheduler_FailingJobKeepsSchedule(t *testing.T) {
	s := newTestScheduler(t)
	job := &countingJob{err: errors.New("db down")}

	require.NoError(t, s.RegisterArchiveJob(job, config.ArchiveConfig{
		Interval:   50 * time.Millisecond,
		MaxAge:     time.Hour,
		RunOnStart: true,
	}))
	s.Start()

	assert.Eventually(t, func() bool { return job.runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_StopCancelsRunningJob(t *testing.T) {
	s := newTestScheduler(t)
	job := &blockingJob{started: make(chan struct{})}

	require.NoError(t, s.Register(JobSpec{Name: "blocker", Every: time.Hour, RunOnStart: true}, job))
	s.Start()

	select {
	case <-job.started:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not start")
	}

	require.NoError(t, s.Stop())
	assert.True(t, job.cancelled.Load())
}

func TestScheduler_RejectsZeroInterval(t *testing.T) {
	s := newTestScheduler(t)
	assert.Error(t, s.Register(JobSpec{Name: "never"}, &countingJob{}))
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := newTestScheduler(t)
	assert.NoError(t, s.Stop())
}
