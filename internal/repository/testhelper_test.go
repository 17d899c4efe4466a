package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"blogicum/internal/domain"
)

// TestDB holds the test database connection and container
type TestDB struct {
	Pool      *pgxpool.Pool
	Container testcontainers.Container
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL container and applies migrations
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	// Get the migrations directory path
	_, currentFile, _, _ := runtime.Caller(0)
	migrationsPath := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")

	// Create PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("blogicum_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to get connection string: %v", err)
	}

	// Run migrations
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		connStr,
	)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}
	m.Close()

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		pgContainer.Terminate(ctx)
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		pgContainer.Terminate(ctx)
		t.Fatalf("Failed to ping database: %v", err)
	}

	return &TestDB{
		Pool:      pool,
		Container: pgContainer,
		ConnStr:   connStr,
	}
}

// Cleanup closes the connection pool and terminates the container
func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	if tdb.Pool != nil {
		tdb.Pool.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}

// TruncateTables clears all data from tables for test isolation
func (tdb *TestDB) TruncateTables(t *testing.T, tables ...string) {
	t.Helper()
	ctx := context.Background()
	for _, table := range tables {
		_, err := tdb.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}

// SeedUser inserts a user with a throwaway password hash and returns it.
func (tdb *TestDB) SeedUser(t *testing.T, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	err := tdb.Pool.QueryRow(context.Background(), `
		INSERT INTO users (id, username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, '', '', $4) RETURNING created_at`,
		u.ID, u.Username, u.Email, u.PasswordHash,
	).Scan(&u.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return u
}

// SeedCategory inserts a category and returns it.
func (tdb *TestDB) SeedCategory(t *testing.T, slug string, published bool) *domain.Category {
	t.Helper()
	c := &domain.Category{
		Title:       "Category " + slug,
		Slug:        slug,
		IsPublished: published,
	}
	err := tdb.Pool.QueryRow(context.Background(), `
		INSERT INTO categories (title, description, slug, is_published)
		VALUES ($1, '', $2, $3) RETURNING id, created_at`,
		c.Title, c.Slug, c.IsPublished,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to seed category %s: %v", slug, err)
	}
	return c
}

// SeedLocation inserts a location and returns it.
func (tdb *TestDB) SeedLocation(t *testing.T, name string, published bool) *domain.Location {
	t.Helper()
	l := &domain.Location{
		Name:        name,
		IsPublished: published,
	}
	err := tdb.Pool.QueryRow(context.Background(), `
		INSERT INTO locations (name, is_published)
		VALUES ($1, $2) RETURNING id, created_at`,
		l.Name, l.IsPublished,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to seed location %s: %v", name, err)
	}
	return l
}
