package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"qaforum/api/internal/apperr"
	"qaforum/api/internal/models"
	"qaforum/api/internal/repository"
)

// StatsCache keeps the latest stats snapshot between refreshes.
type StatsCache interface {
	GetStats(ctx context.Context) (models.Stats, bool, error)
	SetStats(ctx context.Context, stats models.Stats) error
}

type StatsService struct {
	store repository.Store
	guard *Guard
	cache StatsCache
	now   func() time.Time
	log   zerolog.Logger
}

// NewStatsService builds the admin stats service. cache may be nil, in which
// case every snapshot is computed from the store.
func NewStatsService(store repository.Store, guard *Guard, cache StatsCache, now func() time.Time, log zerolog.Logger) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{store: store, guard: guard, cache: cache, now: now, log: log}
}

// Cached reports whether snapshots are kept between refreshes.
func (s *StatsService) Cached() bool {
	return s.cache != nil
}

func (s *StatsService) Snapshot(ctx context.Context, token string) (models.Stats, error) {
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		principal, err := s.guard.Authenticate(ctx, repos, token, ActionReadForumStats)
		if err != nil {
			return err
		}
		if !principal.IsAdmin() {
			return apperr.ErrForbidden.WithMessage("Only an admin can read forum statistics")
		}
		return nil
	})
	if err != nil {
		return models.Stats{}, err
	}

	if s.cache != nil {
		stats, found, err := s.cache.GetStats(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("stats cache read failed")
		} else if found {
			return stats, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the counters and stores them in the cache.
func (s *StatsService) Refresh(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		now := s.now().UTC()
		var err error
		if stats.Users, err = repos.Users().Count(ctx); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if stats.ActiveSessions, err = repos.Sessions().CountActive(ctx, now); err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}
		if stats.Questions, err = repos.Questions().Count(ctx); err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		if stats.Answers, err = repos.Answers().Count(ctx); err != nil {
			return fmt.Errorf("count answers: %w", err)
		}
		stats.GeneratedAt = now
		return nil
	})
	if err != nil {
		return models.Stats{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, stats); err != nil {
			s.log.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}
