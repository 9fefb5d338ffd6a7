package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"qaforum/api/internal/models"
)

type PostgresQuestionRepository struct {
	db DBTX
}

func NewQuestionRepository(db DBTX) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

func (r *PostgresQuestionRepository) Create(ctx context.Context, question models.Question) error {
	const query = `
		INSERT INTO questions (id, content, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, question.ID, question.Content, question.UserID, question.CreatedAt)
	return err
}

func (r *PostgresQuestionRepository) GetByID(ctx context.Context, id string) (models.Question, bool, error) {
	return r.findOne(ctx, `SELECT id, content, user_id, created_at FROM questions WHERE id = $1`, id)
}

func (r *PostgresQuestionRepository) LockByID(ctx context.Context, id string) (models.Question, bool, error) {
	return r.findOne(ctx, `SELECT id, content, user_id, created_at FROM questions WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresQuestionRepository) UpdateContent(ctx context.Context, id string, content string) error {
	const query = `UPDATE questions SET content = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, content)
	return err
}

// Delete also removes the question's answers through ON DELETE CASCADE.
func (r *PostgresQuestionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM questions WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *PostgresQuestionRepository) List(ctx context.Context) ([]models.Question, error) {
	const query = `
		SELECT id, content, user_id, created_at
		FROM questions
		ORDER BY created_at, id
	`
	return r.list(ctx, query)
}

func (r *PostgresQuestionRepository) ListByUser(ctx context.Context, userID string) ([]models.Question, error) {
	const query = `
		SELECT id, content, user_id, created_at
		FROM questions
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	return r.list(ctx, query, userID)
}

func (r *PostgresQuestionRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM questions`)
}

func (r *PostgresQuestionRepository) findOne(ctx context.Context, query string, id string) (models.Question, bool, error) {
	var q models.Question
	if err := r.db.QueryRow(ctx, query, id).Scan(&q.ID, &q.Content, &q.UserID, &q.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Question{}, false, nil
		}
		return models.Question{}, false, err
	}
	return q, true, nil
}

func (r *PostgresQuestionRepository) list(ctx context.Context, query string, args ...any) ([]models.Question, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Content, &q.UserID, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
