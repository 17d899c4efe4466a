package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum/internal/domain"
)

const pgUniqueViolation = "23505"

// PostgresUserRepository implements UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create inserts a user. A duplicate username maps to ErrUsernameTaken.
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash,
	).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns the user with the given id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUsername returns the user with the given username.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *PostgresUserRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, username, email, first_name, last_name, password_hash, created_at
		FROM users WHERE %s = $1`, column), value,
	).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	return &u, nil
}

// Update rewrites the profile fields of a user. A duplicate username maps
// to ErrUsernameTaken.
func (r *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4
		WHERE id = $5`,
		user.Username, user.Email, user.FirstName, user.LastName, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
