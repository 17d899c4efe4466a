package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum/internal/domain"
)

// postSelect is the shared base of every post read: author, category and
// optional location joined, comment count attached. Mirrors are kept in
// sync with scanPost.
const postSelect = `
SELECT p.id, p.title, p.text, p.image_path, p.pub_date, p.created_at, p.is_published,
       p.category_id, p.location_id, p.author_id,
       u.username, u.email, u.first_name, u.last_name, u.created_at,
       c.title, c.description, c.slug, c.is_published, c.created_at,
       l.name, l.is_published, l.created_at,
       (SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count
FROM posts p
JOIN users u ON u.id = p.author_id
JOIN categories c ON c.id = p.category_id
LEFT JOIN locations l ON l.id = p.location_id`

// PostgresPostRepository implements PostRepository using PostgreSQL.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPostRepository creates a new PostgresPostRepository.
func NewPostgresPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

// Create inserts a post and fills its ID and CreatedAt.
func (r *PostgresPostRepository) Create(ctx context.Context, post *domain.Post) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, text, image_path, pub_date, is_published, category_id, location_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		post.Title, post.Text, post.ImagePath, post.PubDate, post.IsPublished,
		post.CategoryID, post.LocationID, post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID returns the post with related rows attached, regardless of
// visibility. Callers decide what the viewer may see.
func (r *PostgresPostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.pool.QueryRow(ctx, postSelect+" WHERE p.id = $1", id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return post, nil
}

// Update rewrites the mutable fields of a post.
func (r *PostgresPostRepository) Update(ctx context.Context, post *domain.Post) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, text = $2, image_path = $3, pub_date = $4, is_published = $5,
		    category_id = $6, location_id = $7
		WHERE id = $8`,
		post.Title, post.Text, post.ImagePath, post.PubDate, post.IsPublished,
		post.CategoryID, post.LocationID, post.ID,
	)
	if err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a post; its comments go with it via the FK cascade.
func (r *PostgresPostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns one page of posts matching the filter, newest first by
// pub_date with created_at as the tiebreak.
func (r *PostgresPostRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]domain.Post, error) {
	where, args := buildPostWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY p.pub_date DESC, p.created_at DESC LIMIT $%d OFFSET $%d",
		postSelect, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

// Count returns the number of posts matching the filter.
func (r *PostgresPostRepository) Count(ctx context.Context, filter PostFilter) (int, error) {
	where, args := buildPostWhere(filter)
	query := "SELECT COUNT(*) FROM posts p JOIN categories c ON c.id = p.category_id" + where

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// buildPostWhere renders the filter into a WHERE clause over the aliased
// posts (p) and categories (c) tables.
func buildPostWhere(filter PostFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.VisibleAt != nil {
		args = append(args, *filter.VisibleAt)
		conds = append(conds, fmt.Sprintf("p.is_published AND c.is_published AND p.pub_date <= $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, fmt.Sprintf("p.author_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// scanPost reads one row of postSelect into a Post with its relations.
func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	var locName *string
	var locPublished *bool
	var locCreatedAt *time.Time

	err := row.Scan(
		&p.ID, &p.Title, &p.Text, &p.ImagePath, &p.PubDate, &p.CreatedAt, &p.IsPublished,
		&p.CategoryID, &p.LocationID, &p.AuthorID,
		&p.Author.Username, &p.Author.Email, &p.Author.FirstName, &p.Author.LastName, &p.Author.CreatedAt,
		&p.Category.Title, &p.Category.Description, &p.Category.Slug, &p.Category.IsPublished, &p.Category.CreatedAt,
		&locName, &locPublished, &locCreatedAt,
		&p.CommentCount,
	)
	if err != nil {
		return nil, err
	}

	p.Author.ID = p.AuthorID
	p.Category.ID = p.CategoryID
	if p.LocationID != nil && locName != nil {
		p.Location = &domain.Location{
			ID:          *p.LocationID,
			Name:        *locName,
			IsPublished: *locPublished,
			CreatedAt:   *locCreatedAt,
		}
	}
	return &p, nil
}
