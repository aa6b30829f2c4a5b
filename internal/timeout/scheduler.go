package timeout

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
)

// Recorder receives the outcome of every scheduled sweep.
type Recorder interface {
	ObserveSweep(reactivated int, elapsed time.Duration, err error)
	SweepSkipped()
}

// SweepFunc performs one sweep pass.
type SweepFunc func(ctx context.Context) (int, error)

// SchedulerConfig controls the sweep cadence.
type SchedulerConfig struct {
	Interval time.Duration
	Deadline time.Duration
}

// Scheduler runs a sweep at start and then every Interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweep     SweepFunc
	cfg       SchedulerConfig
	recorder  Recorder
	logger    *slog.Logger

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewScheduler creates a Scheduler. recorder may be nil.
func NewScheduler(sweep SweepFunc, cfg SchedulerConfig, recorder Recorder, log *slog.Logger) (*Scheduler, error) {
	if sweep == nil {
		return nil, errors.New("timeout: sweep function cannot be nil")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("timeout: sweep interval must be positive")
	}
	if log == nil {
		log = slog.Default()
	}

	s := gocron.NewScheduler(time.UTC)
	// Overlapping runs are dropped, not queued.
	s.SetMaxConcurrentJobs(1, gocron.RescheduleMode)

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		sweep:     sweep,
		cfg:       cfg,
		recorder:  recorder,
		logger:    log.With(slog.String("component", "timeout_scheduler")),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start schedules the sweep and returns immediately. The first run happens right away.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.cfg.Interval).StartImmediately().Do(s.RunOnce); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("timeout sweep scheduled",
		slog.Duration("interval", s.cfg.Interval),
		slog.Duration("deadline", s.cfg.Deadline))
	return nil
}

// Stop cancels an in-flight sweep and stops the schedule.
func (s *Scheduler) Stop() {
	s.cancel()
	s.scheduler.Stop()
	s.logger.Info("timeout sweep stopped")
}

// RunOnce performs a single guarded sweep. Errors are logged and recorded,
// never returned: the schedule keeps going.
func (s *Scheduler) RunOnce() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous timeout sweep still running, skipping tick")
		if s.recorder != nil {
			s.recorder.SweepSkipped()
		}
		return
	}
	defer s.running.Store(false)

	ctx := s.ctx
	if s.cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Deadline)
		defer cancel()
	}

	start := time.Now()
	n, err := s.sweep(ctx)
	elapsed := time.Since(start)

	if s.recorder != nil {
		s.recorder.ObserveSweep(n, elapsed, err)
	}
	if err != nil {
		s.logger.Error("timeout sweep failed",
			slog.String("error", err.Error()),
			slog.Int("reactivated", n),
			slog.Duration("elapsed", elapsed))
		return
	}
	s.logger.Debug("timeout sweep finished",
		slog.Int("reactivated", n),
		slog.Duration("elapsed", elapsed))
}
