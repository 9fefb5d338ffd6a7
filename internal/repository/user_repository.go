package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"qaforum/api/internal/models"
)

const userColumns = `
	id, username, email, password_salt, password_digest, role,
	first_name, last_name, country, about_me, dob, contact_number, created_at
`

type PostgresUserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, username, email, password_salt, password_digest, role,
			first_name, last_name, country, about_me, dob, contact_number, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordSalt,
		user.PasswordDigest,
		user.Role,
		user.FirstName,
		user.LastName,
		user.Country,
		user.AboutMe,
		user.DOB,
		user.ContactNumber,
		user.CreatedAt,
	)
	return constraintError(err)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (models.User, bool, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (models.User, bool, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM users`)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg any) (models.User, bool, error) {
	row := r.db.QueryRow(ctx, query, arg)
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordSalt,
		&user.PasswordDigest,
		&user.Role,
		&user.FirstName,
		&user.LastName,
		&user.Country,
		&user.AboutMe,
		&user.DOB,
		&user.ContactNumber,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, false, nil
		}
		return models.User{}, false, err
	}
	return user, true, nil
}
