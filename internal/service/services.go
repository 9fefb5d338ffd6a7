package service

import (
	"time"

	"github.com/rs/zerolog"

	"qaforum/api/internal/config"
	"qaforum/api/internal/repository"
	"qaforum/api/internal/security"
)

// Services wires every forum service over one store.
type Services struct {
	Auth      *AuthService
	Questions *QuestionService
	Answers   *AnswerService
	Profiles  *ProfileService
	Stats     *StatsService
}

type options struct {
	hasher *security.PasswordHasher
	now    func() time.Time
}

type Option func(*options)

func WithPasswordHasher(h *security.PasswordHasher) Option {
	return func(o *options) { o.hasher = h }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the services. statsCache may be nil.
func New(store repository.Store, statsCache StatsCache, cfg config.SecurityConfig, log zerolog.Logger, opts ...Option) *Services {
	o := options{hasher: security.NewPasswordHasher(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	tokens := security.NewTokenIssuer(cfg.TokenSecret)
	guard := NewGuard(tokens, cfg.EnforceSessionExpiry, o.now)
	policy := Policy{AdminCanEdit: cfg.AdminCanEdit}

	return &Services{
		Auth:      NewAuthService(store, o.hasher, tokens, guard, cfg, o.now, log.With().Str("component", "auth").Logger()),
		Questions: NewQuestionService(store, guard, policy, o.now, log.With().Str("component", "questions").Logger()),
		Answers:   NewAnswerService(store, guard, policy, o.now, log.With().Str("component", "answers").Logger()),
		Profiles:  NewProfileService(store, guard),
		Stats:     NewStatsService(store, guard, statsCache, o.now, log.With().Str("component", "stats").Logger()),
	}
}
