package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"qaforum/api/internal/config"
	"qaforum/api/internal/models"
	"qaforum/api/internal/repository/memory"
	"qaforum/api/internal/security"
)

var fastArgon = security.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeStatsCache struct {
	mu    sync.Mutex
	stats *models.Stats
	sets  int
}

func (c *fakeStatsCache) GetStats(context.Context) (models.Stats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		return models.Stats{}, false, nil
	}
	return *c.stats, true, nil
}

func (c *fakeStatsCache) SetStats(_ context.Context, stats models.Stats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = &stats
	c.sets++
	return nil
}

type fixture struct {
	clock     *testClock
	auth      *AuthService
	questions *QuestionService
	answers   *AnswerService
	profiles  *ProfileService
	stats     *StatsService
	cache     *fakeStatsCache
}

func defaultSecurity() config.SecurityConfig {
	return config.SecurityConfig{
		TokenSecret:          "test-secret",
		SessionTTL:           8 * time.Hour,
		EnforceSessionExpiry: true,
		UniformSigninErrors:  true,
	}
}

func newFixture(t *testing.T, tweak ...func(*config.SecurityConfig)) *fixture {
	t.Helper()

	cfg := defaultSecurity()
	for _, fn := range tweak {
		fn(&cfg)
	}

	clock := &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := memory.NewStore()
	log := zerolog.Nop()
	tokens := security.NewTokenIssuer(cfg.TokenSecret)
	guard := NewGuard(tokens, cfg.EnforceSessionExpiry, clock.Now)
	policy := Policy{AdminCanEdit: cfg.AdminCanEdit}
	cache := &fakeStatsCache{}

	return &fixture{
		clock:     clock,
		auth:      NewAuthService(store, security.NewPasswordHasherWithParams(fastArgon), tokens, guard, cfg, clock.Now, log),
		questions: NewQuestionService(store, guard, policy, clock.Now, log),
		answers:   NewAnswerService(store, guard, policy, clock.Now, log),
		profiles:  NewProfileService(store, guard),
		stats:     NewStatsService(store, guard, cache, clock.Now, log),
		cache:     cache,
	}
}

func (f *fixture) signup(t *testing.T, username string) models.User {
	t.Helper()
	user, err := f.auth.Signup(context.Background(), SignupInput{
		Username: username,
		Email:    username + "@example.com",
		Password: username + "-pw",
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) signin(t *testing.T, username string) string {
	t.Helper()
	result, err := f.auth.Signin(context.Background(), username, username+"-pw")
	require.NoError(t, err)
	return result.Token
}

// member registers username and returns the user with a fresh token.
func (f *fixture) member(t *testing.T, username string) (models.User, string) {
	t.Helper()
	user := f.signup(t, username)
	return user, f.signin(t, username)
}

func (f *fixture) admin(t *testing.T) string {
	t.Helper()
	require.NoError(t, f.auth.EnsureAdmin(context.Background(), config.AdminConfig{
		Username: "root",
		Email:    "root@example.com",
		Password: "root-pw",
	}))
	return f.signin(t, "root")
}
