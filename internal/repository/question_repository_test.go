package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qaforum/api/internal/models"
)

var questionColumnNames = []string{"id", "content", "user_id", "created_at"}

func sampleQuestion(id string, at time.Time) models.Question {
	return models.Question{ID: id, Content: "What is " + id + "?", UserID: "u1", CreatedAt: at}
}

func questionRows(questions ...models.Question) *pgxmock.Rows {
	rows := pgxmock.NewRows(questionColumnNames)
	for _, q := range questions {
		rows.AddRow(q.ID, q.Content, q.UserID, q.CreatedAt)
	}
	return rows
}

func TestQuestionRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	q := sampleQuestion("q1", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	mock.ExpectExec(exactSQL(`INSERT INTO questions (id, content, user_id, created_at) VALUES ($1, $2, $3, $4)`)).
		WithArgs(q.ID, q.Content, q.UserID, q.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewQuestionRepository(mock).Create(context.Background(), q))
}

func TestQuestionRepositoryLookups(t *testing.T) {
	const selectQuestion = `SELECT id, content, user_id, created_at FROM questions WHERE id = $1`
	q := sampleQuestion("q1", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	lookups := []struct {
		name  string
		query string
		find  func(*PostgresQuestionRepository, context.Context, string) (models.Question, bool, error)
	}{
		{"get", selectQuestion, (*PostgresQuestionRepository).GetByID},
		{"lock", selectQuestion + ` FOR UPDATE`, (*PostgresQuestionRepository).LockByID},
	}

	for _, l := range lookups {
		t.Run(l.name+"/found", func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(exactSQL(l.query)).WithArgs(q.ID).WillReturnRows(questionRows(q))

			got, found, err := l.find(NewQuestionRepository(mock), context.Background(), q.ID)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, q, got)
		})

		t.Run(l.name+"/missing", func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(exactSQL(l.query)).WithArgs("nope").WillReturnError(pgx.ErrNoRows)

			_, found, err := l.find(NewQuestionRepository(mock), context.Background(), "nope")
			require.NoError(t, err)
			assert.False(t, found)
		})

		t.Run(l.name+"/error", func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(exactSQL(l.query)).WithArgs(q.ID).WillReturnError(errConnReset)

			_, _, err := l.find(NewQuestionRepository(mock), context.Background(), q.ID)
			assert.ErrorIs(t, err, errConnReset)
		})
	}
}

func TestQuestionRepositoryWrites(t *testing.T) {
	t.Run("update content", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(exactSQL(`UPDATE questions SET content = $2 WHERE id = $1`)).
			WithArgs("q1", "revised").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, NewQuestionRepository(mock).UpdateContent(context.Background(), "q1", "revised"))
	})

	t.Run("update error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(exactSQL(`UPDATE questions SET content = $2 WHERE id = $1`)).
			WithArgs("q1", "revised").
			WillReturnError(errConnReset)
		assert.ErrorIs(t, NewQuestionRepository(mock).UpdateContent(context.Background(), "q1", "revised"), errConnReset)
	})

	t.Run("delete", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(exactSQL(`DELETE FROM questions WHERE id = $1`)).
			WithArgs("q1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, NewQuestionRepository(mock).Delete(context.Background(), "q1"))
	})

	t.Run("delete error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(exactSQL(`DELETE FROM questions WHERE id = $1`)).
			WithArgs("q1").
			WillReturnError(errConnReset)
		assert.ErrorIs(t, NewQuestionRepository(mock).Delete(context.Background(), "q1"), errConnReset)
	})
}

func TestQuestionRepositoryList(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := sampleQuestion("q1", base)
	second := sampleQuestion("q2", base.Add(time.Minute))

	t.Run("all", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(exactSQL(`SELECT id, content, user_id, created_at FROM questions ORDER BY created_at, id`)).
			WillReturnRows(questionRows(first, second))

		got, err := NewQuestionRepository(mock).List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []models.Question{first, second}, got)
	})

	t.Run("by user", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(exactSQL(`SELECT id, content, user_id, created_at FROM questions WHERE user_id = $1 ORDER BY created_at, id`)).
			WithArgs("u1").
			WillReturnRows(questionRows(second))

		got, err := NewQuestionRepository(mock).ListByUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, []models.Question{second}, got)
	})

	t.Run("empty", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM questions").WillReturnRows(questionRows())

		got, err := NewQuestionRepository(mock).List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM questions").WithArgs("u1").WillReturnError(errConnReset)

		_, err := NewQuestionRepository(mock).ListByUser(context.Background(), "u1")
		assert.ErrorIs(t, err, errConnReset)
	})
}

func TestQuestionRepositoryCount(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(exactSQL(`SELECT COUNT(*) FROM questions`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := NewQuestionRepository(mock).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
