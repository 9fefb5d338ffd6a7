package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qaforum/api/internal/models"
	"qaforum/api/internal/repository"
)

var _ repository.Store = (*Store)(nil)

func TestRollbackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		require.NoError(t, r.Users().Create(ctx, models.User{ID: "u1", Username: "alice", Email: "a@x.com"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = store.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		_, found, err := r.Users().GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, found)
		return nil
	})
	require.NoError(t, err)
}

func TestUniqueConstraints(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		require.NoError(t, r.Users().Create(ctx, models.User{ID: "u1", Username: "alice", Email: "a@x.com"}))

		assert.ErrorIs(t, r.Users().Create(ctx, models.User{ID: "u2", Username: "alice", Email: "b@x.com"}), repository.ErrDuplicateUsername)
		assert.ErrorIs(t, r.Users().Create(ctx, models.User{ID: "u3", Username: "bob", Email: "a@x.com"}), repository.ErrDuplicateEmail)

		require.NoError(t, r.Sessions().Create(ctx, models.Session{ID: "s1", UserID: "u1", TokenHash: []byte{1}}))
		assert.ErrorIs(t, r.Sessions().Create(ctx, models.Session{ID: "s2", UserID: "u1", TokenHash: []byte{1}}), repository.ErrDuplicateToken)
		return nil
	})
	require.NoError(t, err)
}

func TestMarkLoggedOutIsOneShot(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := issued.Add(time.Minute)

	err := store.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		sessions := r.Sessions()
		require.NoError(t, sessions.Create(ctx, models.Session{ID: "s1", TokenHash: []byte("h"), IssuedAt: issued, ExpiresAt: issued.Add(8 * time.Hour)}))
		require.NoError(t, sessions.MarkLoggedOut(ctx, "s1", first))
		require.NoError(t, sessions.MarkLoggedOut(ctx, "s1", first.Add(time.Hour)))

		got, found, err := sessions.FindByTokenHash(ctx, []byte("h"))
		require.NoError(t, err)
		require.True(t, found)
		require.NotNil(t, got.LoggedOutAt)
		assert.Equal(t, first, *got.LoggedOutAt)
		assert.Equal(t, first, got.ExpiresAt)

		active, err := sessions.CountActive(ctx, first.Add(-time.Second))
		require.NoError(t, err)
		assert.Zero(t, active)
		return nil
	})
	require.NoError(t, err)
}

func TestDeleteQuestionCascades(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now()

	err := store.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		require.NoError(t, r.Questions().Create(ctx, models.Question{ID: "q1", Content: "why", UserID: "u1", CreatedAt: now}))
		require.NoError(t, r.Questions().Create(ctx, models.Question{ID: "q2", Content: "how", UserID: "u1", CreatedAt: now}))
		require.NoError(t, r.Answers().Create(ctx, models.Answer{ID: "a1", QuestionID: "q1", CreatedAt: now}))
		require.NoError(t, r.Answers().Create(ctx, models.Answer{ID: "a2", QuestionID: "q2", CreatedAt: now}))

		require.NoError(t, r.Questions().Delete(ctx, "q1"))

		_, found, _ := r.Answers().GetByID(ctx, "a1")
		assert.False(t, found)
		_, found, _ = r.Answers().GetByID(ctx, "a2")
		assert.True(t, found)
		return nil
	})
	require.NoError(t, err)
}

func TestListsAreOrdered(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := store.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		require.NoError(t, r.Questions().Create(ctx, models.Question{ID: "b", UserID: "u1", CreatedAt: base}))
		require.NoError(t, r.Questions().Create(ctx, models.Question{ID: "a", UserID: "u2", CreatedAt: base}))
		require.NoError(t, r.Questions().Create(ctx, models.Question{ID: "c", UserID: "u1", CreatedAt: base.Add(-time.Hour)}))

		all, err := r.Questions().List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].ID, all[1].ID, all[2].ID})

		mine, err := r.Questions().ListByUser(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, "c", mine[0].ID)

		require.NoError(t, r.Answers().Create(ctx, models.Answer{ID: "x", QuestionID: "a", Content: "yes", CreatedAt: base}))
		details, err := r.Answers().ListByQuestion(ctx, "a")
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, "yes", details[0].Content)
		return nil
	})
	require.NoError(t, err)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().WithinTx(ctx, func(context.Context, repository.Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
