package service

import (
	"context"

	"blogicum/internal/domain"
	"blogicum/internal/pagination"
	"blogicum/internal/validator"
)

// Listing is one page of posts with its pagination state.
type Listing struct {
	Posts []domain.Post
	Page  pagination.Page
}

// PostPage is the data behind the post detail view.
type PostPage struct {
	Post     *domain.Post
	Comments []domain.Comment
}

// FormChoices are the select options for the post form: published
// categories ordered by title and published locations ordered by name.
type FormChoices struct {
	Categories []domain.Category
	Locations  []domain.Location
}

// BlogServiceInterface defines the interface for blog content operations.
// Used for dependency injection and mocking in tests.
type BlogServiceInterface interface {
	// Feed returns one page of the global feed of visible posts.
	Feed(ctx context.Context, page int) (*Listing, error)
	// CategoryFeed returns a published category and one page of its
	// visible posts. An unknown or unpublished slug is ErrNotFound.
	CategoryFeed(ctx context.Context, slug string, page int) (*domain.Category, *Listing, error)
	// Profile returns a user and one page of their posts. The owner sees
	// everything; other viewers only visible posts.
	Profile(ctx context.Context, username string, viewer *domain.User, page int) (*domain.User, *Listing, error)
	// PostDetail returns a post with its comments. Posts that are not
	// visible are ErrNotFound unless the viewer is the author.
	PostDetail(ctx context.Context, id int64, viewer *domain.User) (*PostPage, error)
	// PostForEdit returns a post for the edit/delete forms; ErrNotAuthor
	// when the viewer does not own it.
	PostForEdit(ctx context.Context, id int64, viewer *domain.User) (*domain.Post, error)
	// FormChoices returns the category/location options for the post form.
	FormChoices(ctx context.Context) (*FormChoices, error)
	// CreatePost stores a new post owned by author.
	CreatePost(ctx context.Context, author *domain.User, form validator.PostForm) (*domain.Post, error)
	// UpdatePost rewrites a post; ErrNotAuthor when viewer is not the owner.
	UpdatePost(ctx context.Context, id int64, viewer *domain.User, form validator.PostForm) (*domain.Post, error)
	// DeletePost removes a post; ErrNotAuthor when viewer is not the owner.
	DeletePost(ctx context.Context, id int64, viewer *domain.User) error
	// AddComment appends a comment to a post the viewer can see.
	AddComment(ctx context.Context, postID int64, author *domain.User, form validator.CommentForm) (*domain.Comment, error)
	// Comment returns a comment scoped to a post; a post/comment mismatch
	// is ErrNotFound.
	Comment(ctx context.Context, postID, commentID int64) (*domain.Comment, error)
	// UpdateComment rewrites a comment's text; ErrNotAuthor when viewer is
	// not the owner.
	UpdateComment(ctx context.Context, postID, commentID int64, viewer *domain.User, form validator.CommentForm) error
	// DeleteComment removes a comment; ErrNotAuthor when viewer is not the
	// owner.
	DeleteComment(ctx context.Context, postID, commentID int64, viewer *domain.User) error
}

// AuthServiceInterface defines the interface for accounts and sessions.
// Used for dependency injection and mocking in tests.
type AuthServiceInterface interface {
	// Register creates an account with a hashed password.
	Register(ctx context.Context, form validator.RegistrationForm) (*domain.User, error)
	// Login verifies credentials and opens a session.
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	// Logout closes a session. Unknown sessions are a no-op.
	Logout(ctx context.Context, sessionID string) error
	// UserBySession resolves a live session to its user. Expired or
	// unknown sessions are ErrNotFound.
	UserBySession(ctx context.Context, sessionID string) (*domain.User, *domain.Session, error)
	// UpdateProfile rewrites the viewer's profile fields.
	UpdateProfile(ctx context.Context, user *domain.User, form validator.ProfileForm) (*domain.User, error)
}
