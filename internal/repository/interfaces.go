package repository

import (
	"context"
	"time"

	"blogicum/internal/domain"
)

// PostFilter narrows post listing queries. A nil field means "no
// constraint". VisibleAt carries the request clock: when set, only posts
// satisfying the visibility predicate at that instant are returned.
type PostFilter struct {
	VisibleAt  *time.Time
	CategoryID *int64
	AuthorID   *string
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// CategoryRepository defines methods for category data access.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListPublished(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// LocationRepository defines methods for location data access.
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) error
	ListPublished(ctx context.Context) ([]domain.Location, error)
	Delete(ctx context.Context, id int64) error
}

// PostRepository defines methods for post data access. All read methods
// return posts with author, category, optional location and comment count
// attached.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]domain.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
}

// CommentRepository defines methods for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
}

// SessionRepository defines methods for session data access.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
