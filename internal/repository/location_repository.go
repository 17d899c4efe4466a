package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum/internal/domain"
)

// PostgresLocationRepository implements LocationRepository using PostgreSQL.
type PostgresLocationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLocationRepository creates a new PostgresLocationRepository.
func NewPostgresLocationRepository(pool *pgxpool.Pool) *PostgresLocationRepository {
	return &PostgresLocationRepository{pool: pool}
}

// Create inserts a location and fills its ID and CreatedAt.
func (r *PostgresLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO locations (name, is_published)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		location.Name, location.IsPublished,
	).Scan(&location.ID, &location.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// ListPublished returns published locations ordered by name, for the post
// form's location select.
func (r *PostgresLocationRepository) ListPublished(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, is_published, created_at
		FROM locations WHERE is_published ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// Delete removes a location. Posts referencing it keep a null location via
// the FK's SET NULL.
func (r *PostgresLocationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
