package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"qaforum/api/internal/apperr"
	"qaforum/api/internal/config"
	"qaforum/api/internal/ids"
	"qaforum/api/internal/models"
	"qaforum/api/internal/repository"
	"qaforum/api/internal/security"
)

type AuthService struct {
	store  repository.Store
	hasher *security.PasswordHasher
	tokens *security.TokenIssuer
	guard  *Guard
	cfg    config.SecurityConfig
	now    func() time.Time
	log    zerolog.Logger
}

func NewAuthService(
	store repository.Store,
	hasher *security.PasswordHasher,
	tokens *security.TokenIssuer,
	guard *Guard,
	cfg config.SecurityConfig,
	now func() time.Time,
	log zerolog.Logger,
) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		guard:  guard,
		cfg:    cfg,
		now:    now,
		log:    log,
	}
}

type SignupInput struct {
	Username      string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Country       string
	AboutMe       string
	DOB           string
	ContactNumber string
}

// Signup registers a non-admin user. The username and email lookups fail
// fast; the unique constraints settle races between concurrent signups.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (models.User, error) {
	return s.register(ctx, input, models.UserRoleNonAdmin)
}

func (s *AuthService) register(ctx context.Context, input SignupInput, role models.UserRole) (models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return models.User{}, apperr.ErrInvalidInput.WithMessage("username, email and password are required")
	}

	salt, digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:             ids.New(),
		Username:       input.Username,
		Email:          input.Email,
		PasswordSalt:   salt,
		PasswordDigest: digest,
		Role:           role,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Country:        input.Country,
		AboutMe:        input.AboutMe,
		DOB:            input.DOB,
		ContactNumber:  input.ContactNumber,
		CreatedAt:      s.now().UTC(),
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, found, err := repos.Users().FindByUsername(ctx, user.Username); err != nil {
			return err
		} else if found {
			return apperr.ErrUsernameTaken
		}
		if _, found, err := repos.Users().FindByEmail(ctx, user.Email); err != nil {
			return err
		} else if found {
			return apperr.ErrEmailTaken
		}
		return repos.Users().Create(ctx, user)
	})
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return models.User{}, apperr.ErrUsernameTaken
	case errors.Is(err, repository.ErrDuplicateEmail):
		return models.User{}, apperr.ErrEmailTaken
	case err != nil:
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", string(role)).Msg("user registered")
	return user, nil
}

type SigninResult struct {
	User    models.User
	Session models.Session
	Token   string
}

// Signin verifies credentials and opens a new session. Every call creates a
// distinct session, so one user may hold several at once.
func (s *AuthService) Signin(ctx context.Context, username string, password string) (SigninResult, error) {
	var result SigninResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		user, found, err := repos.Users().FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrUnknownUser
		}
		if !s.hasher.Verify(password, user.PasswordSalt, user.PasswordDigest) {
			return apperr.ErrBadCredential
		}

		issuedAt := s.now().UTC()
		session := models.Session{
			ID:        ids.NewSortable(),
			UserID:    user.ID,
			IssuedAt:  issuedAt,
			ExpiresAt: issuedAt.Add(s.cfg.SessionTTL),
		}
		token, err := s.tokens.Issue(user.ID, session.ID, session.IssuedAt, session.ExpiresAt)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		session.TokenHash = security.HashToken(token)

		if err := repos.Sessions().Create(ctx, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		result = SigninResult{User: user, Session: session, Token: token}
		return nil
	})
	if err != nil {
		return SigninResult{}, err
	}

	s.log.Info().Str("user_id", result.User.ID).Str("session_id", result.Session.ID).Msg("user signed in")
	return result, nil
}

// Signout ends the session behind token and returns its owner. The session
// row stays locked until the transaction ends, so of two concurrent signouts
// exactly one succeeds.
func (s *AuthService) Signout(ctx context.Context, token string) (models.User, error) {
	var user models.User
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if token == "" {
			return apperr.ErrSignoutNoSession
		}
		session, found, err := repos.Sessions().LockByTokenHash(ctx, security.HashToken(token))
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrSignoutNoSession
		}
		if session.SignedOut() {
			return apperr.ErrAlreadySignedOut
		}

		owner, found, err := repos.Users().GetByID(ctx, session.UserID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrSignoutNoSession
		}

		if err := repos.Sessions().MarkLoggedOut(ctx, session.ID, s.now().UTC()); err != nil {
			return fmt.Errorf("mark session logged out: %w", err)
		}
		user = owner
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user signed out")
	return user, nil
}

// Authenticate resolves token outside any resource operation, for callers
// such as middleware that only need the principal.
func (s *AuthService) Authenticate(ctx context.Context, token string, action Action) (Principal, error) {
	var principal Principal
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		p, err := s.guard.Authenticate(ctx, repos, token, action)
		principal = p
		return err
	})
	return principal, err
}

// EnsureAdmin creates the configured admin account unless a user with that
// username already exists. An empty username disables seeding.
func (s *AuthService) EnsureAdmin(ctx context.Context, admin config.AdminConfig) error {
	if admin.Username == "" {
		return nil
	}

	var exists bool
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		_, found, err := repos.Users().FindByUsername(ctx, admin.Username)
		exists = found
		return err
	})
	if err != nil {
		return fmt.Errorf("lookup admin: %w", err)
	}
	if exists {
		s.log.Debug().Str("username", admin.Username).Msg("admin account present")
		return nil
	}

	_, err = s.register(ctx, SignupInput{
		Username: admin.Username,
		Email:    admin.Email,
		Password: admin.Password,
	}, models.UserRoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
