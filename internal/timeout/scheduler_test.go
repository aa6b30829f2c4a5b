package timeout_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/timeout"
)

type fakeRecorder struct {
	mu      sync.Mutex
	results []error
	total   int
	skipped int
}

func (r *fakeRecorder) ObserveSweep(reactivated int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, err)
	r.total += reactivated
}

func (r *fakeRecorder) SweepSkipped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped++
}

func (r *fakeRecorder) snapshot() (runs, total, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results), r.total, r.skipped
}

func TestNewScheduler_Validation(t *testing.T) {
	t.Parallel()

	_, err := timeout.NewScheduler(nil, timeout.SchedulerConfig{Interval: time.Minute}, nil, nil)
	assert.Error(t, err)

	noop := func(context.Context) (int, error) { return 0, nil }
	_, err = timeout.NewScheduler(noop, timeout.SchedulerConfig{}, nil, nil)
	assert.Error(t, err)
}

func TestScheduler_RunOnce_RecordsFailuresAndContinues(t *testing.T) {
	t.Parallel()

	calls := 0
	sweep := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("database unavailable")
		}
		return 4, nil
	}
	rec := &fakeRecorder{}
	s, err := timeout.NewScheduler(sweep, timeout.SchedulerConfig{Interval: time.Hour}, rec, nil)
	require.NoError(t, err)

	s.RunOnce()
	s.RunOnce()

	runs, total, skipped := rec.snapshot()
	assert.Equal(t, 2, runs)
	assert.Equal(t, 4, total)
	assert.Zero(t, skipped)
	assert.Error(t, rec.results[0])
	assert.NoError(t, rec.results[1])
}

func TestScheduler_RunOnce_SkipsWhileRunning(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	sweep := func(context.Context) (int, error) {
		close(started)
		<-release
		return 1, nil
	}
	rec := &fakeRecorder{}
	s, err := timeout.NewScheduler(sweep, timeout.SchedulerConfig{Interval: time.Hour}, rec, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.RunOnce()
		close(done)
	}()
	<-started

	s.RunOnce()
	close(release)
	<-done

	runs, _, skipped := rec.snapshot()
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, skipped)
}

func TestScheduler_RunOnce_AppliesDeadline(t *testing.T) {
	t.Parallel()

	var hadDeadline atomic.Bool
	sweep := func(ctx context.Context) (int, error) {
		_, ok := ctx.Deadline()
		hadDeadline.Store(ok)
		return 0, nil
	}
	s, err := timeout.NewScheduler(sweep, timeout.SchedulerConfig{
		Interval: time.Hour,
		Deadline: time.Second,
	}, nil, nil)
	require.NoError(t, err)

	s.RunOnce()
	assert.True(t, hadDeadline.Load())
}

func TestScheduler_StartRunsImmediately(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	sweep := func(context.Context) (int, error) {
		runs.Add(1)
		return 0, nil
	}
	s, err := timeout.NewScheduler(sweep, timeout.SchedulerConfig{Interval: time.Hour}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}
