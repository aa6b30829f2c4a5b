package timeout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/store"
)

// Sweeper reactivates expired timeouts.
type Sweeper struct {
	words     store.WordStore
	batchSize int
	logger    *slog.Logger
}

// NewSweeper creates a Sweeper over words.
func NewSweeper(words store.WordStore, log *slog.Logger) *Sweeper {
	if words == nil {
		panic("timeout: word store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{
		words:     words,
		batchSize: store.MaxBatchSize,
		logger:    log.With(slog.String("component", "timeout_sweeper")),
	}
}

// Sweep runs one pass and returns the number of words reactivated. Group
// counters are left alone: timeout and active both count as not learned.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now, err := s.words.Now(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read store clock: %w", err)
	}

	candidates, err := s.words.FindByStatus(ctx, domain.WordStatusTimeout)
	if err != nil {
		return 0, fmt.Errorf("failed to list timed-out words: %w", err)
	}

	due := make([]uuid.UUID, 0, len(candidates))
	for _, w := range candidates {
		if w.ShouldReactivate(now) {
			if w.TimeoutUntil == nil {
				log.Warn("repairing timed-out word without deadline", slog.String("word_id", w.ID.String()))
			}
			due = append(due, w.ID)
		}
	}
	if len(due) == 0 {
		log.Debug("no timed-out words due", slog.Int("timed_out", len(candidates)))
		return 0, nil
	}

	reactivated := 0
	for start := 0; start < len(due); start += s.batchSize {
		end := min(start+s.batchSize, len(due))
		n, err := s.words.ReactivateBatch(ctx, due[start:end], now)
		reactivated += int(n)
		if err != nil {
			return reactivated, fmt.Errorf("failed to reactivate batch of %d words: %w", end-start, err)
		}
	}

	log.Info("reactivated timed-out words",
		slog.Int("due", len(due)),
		slog.Int("reactivated", reactivated),
		slog.Time("store_now", now))
	return reactivated, nil
}
