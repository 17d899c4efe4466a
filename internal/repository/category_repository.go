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

const pgForeignKeyViolation = "23503"

// PostgresCategoryRepository implements CategoryRepository using PostgreSQL.
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository.
func NewPostgresCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

// Create inserts a category and fills its ID and CreatedAt.
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (title, description, slug, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		category.Title, category.Description, category.Slug, category.IsPublished,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetBySlug returns the category with the given slug, published or not.
func (r *PostgresCategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, description, slug, is_published, created_at
		FROM categories WHERE slug = $1`, slug,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Slug, &c.IsPublished, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category %q: %w", slug, err)
	}
	return &c, nil
}

// ListPublished returns published categories ordered by title, for the
// post form's category select.
func (r *PostgresCategoryRepository) ListPublished(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, slug, is_published, created_at
		FROM categories WHERE is_published ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Slug, &c.IsPublished, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Delete removes a category. Categories still referenced by posts are
// protected by the FK and map to ErrCategoryInUse.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrCategoryInUse
		}
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
