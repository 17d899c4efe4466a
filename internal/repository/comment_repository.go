package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum/internal/domain"
)

// PostgresCommentRepository implements CommentRepository using PostgreSQL.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository.
func NewPostgresCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create inserts a comment and fills its ID and CreatedAt.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (text, post_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		comment.Text, comment.PostID, comment.AuthorID,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID returns the comment with its author attached.
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	err := r.pool.QueryRow(ctx, `
		SELECT c.id, c.text, c.post_id, c.author_id, c.created_at,
		       u.username, u.email, u.first_name, u.last_name, u.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.Text, &c.PostID, &c.AuthorID, &c.CreatedAt,
		&c.Author.Username, &c.Author.Email, &c.Author.FirstName, &c.Author.LastName, &c.Author.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	c.Author.ID = c.AuthorID
	return &c, nil
}

// ListByPost returns a post's comments oldest first with authors attached.
func (r *PostgresCommentRepository) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.text, c.post_id, c.author_id, c.created_at,
		       u.username, u.email, u.first_name, u.last_name, u.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.PostID, &c.AuthorID, &c.CreatedAt,
			&c.Author.Username, &c.Author.Email, &c.Author.FirstName, &c.Author.LastName, &c.Author.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.Author.ID = c.AuthorID
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Update rewrites the comment text.
func (r *PostgresCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	tag, err := r.pool.Exec(ctx, `UPDATE comments SET text = $1 WHERE id = $2`, comment.Text, comment.ID)
	if err != nil {
		return fmt.Errorf("update comment %d: %w", comment.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a comment.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
