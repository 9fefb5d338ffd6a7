package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"qaforum/api/internal/jobs"
	"qaforum/api/internal/models"
	"qaforum/api/internal/repository/memory"
	"qaforum/api/internal/service"
)

type stubStatsCache struct{}

func (stubStatsCache) GetStats(context.Context) (models.Stats, bool, error) {
	return models.Stats{}, false, nil
}

func (stubStatsCache) SetStats(context.Context, models.Stats) error { return nil }

func TestStatsRefresherRequiresCache(t *testing.T) {
	store := memory.NewStore()

	uncached := service.NewStatsService(store, nil, nil, nil, zerolog.Nop())
	refresher := statsRefresher(uncached, zerolog.Nop())
	assert.True(t, refresher == nil, "expected an untyped nil refresher")

	s := jobs.NewScheduler(refresher, "@every 1h", zerolog.Nop())
	assert.NoError(t, s.Start())
	<-s.Stop().Done()

	cached := service.NewStatsService(store, nil, stubStatsCache{}, nil, zerolog.Nop())
	assert.NotNil(t, statsRefresher(cached, zerolog.Nop()))
}
