package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"qaforum/api/internal/models"
)

// StatsRefresher recomputes the forum counters.
type StatsRefresher interface {
	Refresh(ctx context.Context) (models.Stats, error)
}

type Scheduler struct {
	cron     *cron.Cron
	stats    StatsRefresher
	schedule string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewScheduler runs stats refreshes on schedule, a six-field cron spec with
// seconds. An empty schedule disables the job.
func NewScheduler(stats StatsRefresher, schedule string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		stats:    stats,
		schedule: schedule,
		timeout:  30 * time.Second,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if s.stats == nil || s.schedule == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.refreshStats); err != nil {
		return fmt.Errorf("schedule stats refresh: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("stats refresh scheduled")
	return nil
}

// Stop halts the scheduler and returns a context that is done once the
// running job, if any, has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) refreshStats() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	stats, err := s.stats.Refresh(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("stats refresh failed")
		return
	}
	s.log.Debug().
		Int64("users", stats.Users).
		Int64("questions", stats.Questions).
		Int64("answers", stats.Answers).
		Msg("stats refreshed")
}
