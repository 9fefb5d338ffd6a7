// Package repository holds the persistence contracts of the forum and their
// PostgreSQL implementation. Lookups report absence through a found flag;
// errors are reserved for infrastructure failures and constraint violations.
package repository

import (
	"context"
	"errors"
	"time"

	"qaforum/api/internal/models"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateToken    = errors.New("duplicate session token")
)

type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, bool, error)
	FindByUsername(ctx context.Context, username string) (models.User, bool, error)
	FindByEmail(ctx context.Context, email string) (models.User, bool, error)
	Count(ctx context.Context) (int64, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session models.Session) error
	FindByTokenHash(ctx context.Context, tokenHash []byte) (models.Session, bool, error)
	// LockByTokenHash reads the session and holds it until the surrounding
	// transaction ends.
	LockByTokenHash(ctx context.Context, tokenHash []byte) (models.Session, bool, error)
	MarkLoggedOut(ctx context.Context, id string, at time.Time) error
	CountActive(ctx context.Context, now time.Time) (int64, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question models.Question) error
	GetByID(ctx context.Context, id string) (models.Question, bool, error)
	LockByID(ctx context.Context, id string) (models.Question, bool, error)
	UpdateContent(ctx context.Context, id string, content string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Question, error)
	ListByUser(ctx context.Context, userID string) ([]models.Question, error)
	Count(ctx context.Context) (int64, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, answer models.Answer) error
	GetByID(ctx context.Context, id string) (models.Answer, bool, error)
	LockByID(ctx context.Context, id string) (models.Answer, bool, error)
	UpdateContent(ctx context.Context, id string, content string) error
	Delete(ctx context.Context, id string) error
	ListByQuestion(ctx context.Context, questionID string) ([]models.AnswerDetails, error)
	Count(ctx context.Context) (int64, error)
}

// Repositories is the set of repositories bound to one transaction.
type Repositories interface {
	Users() UserRepository
	Sessions() SessionRepository
	Questions() QuestionRepository
	Answers() AnswerRepository
}

// Store runs units of work. fn's repositories share a single transaction
// that commits when fn returns nil and rolls back otherwise.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Ping(ctx context.Context) error
}
