package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"qaforum/api/internal/models"
)

type PostgresAnswerRepository struct {
	db DBTX
}

func NewAnswerRepository(db DBTX) *PostgresAnswerRepository {
	return &PostgresAnswerRepository{db: db}
}

func (r *PostgresAnswerRepository) Create(ctx context.Context, answer models.Answer) error {
	const query = `
		INSERT INTO answers (id, content, user_id, question_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		answer.ID,
		answer.Content,
		answer.UserID,
		answer.QuestionID,
		answer.CreatedAt,
	)
	return err
}

func (r *PostgresAnswerRepository) GetByID(ctx context.Context, id string) (models.Answer, bool, error) {
	return r.findOne(ctx, `SELECT id, content, user_id, question_id, created_at FROM answers WHERE id = $1`, id)
}

func (r *PostgresAnswerRepository) LockByID(ctx context.Context, id string) (models.Answer, bool, error) {
	return r.findOne(ctx, `SELECT id, content, user_id, question_id, created_at FROM answers WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresAnswerRepository) UpdateContent(ctx context.Context, id string, content string) error {
	const query = `UPDATE answers SET content = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, content)
	return err
}

func (r *PostgresAnswerRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM answers WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *PostgresAnswerRepository) ListByQuestion(ctx context.Context, questionID string) ([]models.AnswerDetails, error) {
	const query = `
		SELECT a.id, a.content, a.user_id, a.question_id, a.created_at, q.content
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.question_id = $1
		ORDER BY a.created_at, a.id
	`
	rows, err := r.db.Query(ctx, query, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []models.AnswerDetails{}
	for rows.Next() {
		var a models.AnswerDetails
		if err := rows.Scan(
			&a.ID,
			&a.Content,
			&a.UserID,
			&a.QuestionID,
			&a.CreatedAt,
			&a.QuestionContent,
		); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *PostgresAnswerRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM answers`)
}

func (r *PostgresAnswerRepository) findOne(ctx context.Context, query string, id string) (models.Answer, bool, error) {
	var a models.Answer
	if err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Content, &a.UserID, &a.QuestionID, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Answer{}, false, nil
		}
		return models.Answer{}, false, err
	}
	return a, true, nil
}
