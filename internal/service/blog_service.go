package service

import (
	"context"
	"fmt"
	"time"

	"blogicum/internal/domain"
	"blogicum/internal/metrics"
	"blogicum/internal/pagination"
	"blogicum/internal/repository"
	"blogicum/internal/validator"
)

// PageSize is the number of posts on every listing page.
const PageSize = pagination.DefaultPageSize

// BlogService implements BlogServiceInterface over the repositories. The
// visibility predicate is evaluated with the wall clock at call time, so
// scheduled posts surface as soon as their pub_date passes.
type BlogService struct {
	posts      repository.PostRepository
	comments   repository.CommentRepository
	categories repository.CategoryRepository
	locations  repository.LocationRepository
	users      repository.UserRepository

	now func() time.Time
}

// NewBlogService creates a new BlogService.
func NewBlogService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	categories repository.CategoryRepository,
	locations repository.LocationRepository,
	users repository.UserRepository,
) *BlogService {
	return &BlogService{
		posts:      posts,
		comments:   comments,
		categories: categories,
		locations:  locations,
		users:      users,
		now:        time.Now,
	}
}

// SetNow replaces the service clock (useful for testing).
func (s *BlogService) SetNow(now func() time.Time) {
	s.now = now
}

// Feed returns one page of the global feed of visible posts.
func (s *BlogService) Feed(ctx context.Context, page int) (*Listing, error) {
	now := s.now()
	return s.listPosts(ctx, repository.PostFilter{VisibleAt: &now}, page)
}

// CategoryFeed returns a published category and one page of its visible
// posts.
func (s *BlogService) CategoryFeed(ctx context.Context, slug string, page int) (*domain.Category, *Listing, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if !category.IsPublished {
		return nil, nil, domain.ErrNotFound
	}

	now := s.now()
	listing, err := s.listPosts(ctx, repository.PostFilter{VisibleAt: &now, CategoryID: &category.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return category, listing, nil
}

// Profile returns a user and one page of their posts. The owner bypasses
// the visibility predicate.
func (s *BlogService) Profile(ctx context.Context, username string, viewer *domain.User, page int) (*domain.User, *Listing, error) {
	profile, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	filter := repository.PostFilter{AuthorID: &profile.ID}
	if viewer == nil || viewer.ID != profile.ID {
		now := s.now()
		filter.VisibleAt = &now
	}

	listing, err := s.listPosts(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}
	return profile, listing, nil
}

func (s *BlogService) listPosts(ctx context.Context, filter repository.PostFilter, page int) (*Listing, error) {
	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	p := pagination.New(page, PageSize, total)
	posts, err := s.posts.List(ctx, filter, p.Size, p.Offset())
	if err != nil {
		return nil, err
	}
	return &Listing{Posts: posts, Page: p}, nil
}

// PostDetail returns a post with its comments, or ErrNotFound when the
// post is not visible to the viewer.
func (s *BlogService) PostDetail(ctx context.Context, id int64, viewer *domain.User) (*PostPage, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(viewer) && !post.VisibleAt(s.now()) {
		return nil, domain.ErrNotFound
	}

	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PostPage{Post: post, Comments: comments}, nil
}

// PostForEdit loads a post for the edit and delete forms.
func (s *BlogService) PostForEdit(ctx context.Context, id int64, viewer *domain.User) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(viewer) {
		return nil, domain.ErrNotAuthor
	}
	return post, nil
}

// FormChoices returns the select options for the post form.
func (s *BlogService) FormChoices(ctx context.Context) (*FormChoices, error) {
	categories, err := s.categories.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	locations, err := s.locations.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	return &FormChoices{Categories: categories, Locations: locations}, nil
}

// CreatePost stores a new post owned by author.
func (s *BlogService) CreatePost(ctx context.Context, author *domain.User, form validator.PostForm) (*domain.Post, error) {
	post := &domain.Post{
		Title:       form.Title,
		Text:        form.Text,
		ImagePath:   form.ImagePath,
		PubDate:     form.PubDate,
		IsPublished: form.IsPublished,
		CategoryID:  form.CategoryID,
		LocationID:  form.LocationID,
		AuthorID:    author.ID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	metrics.PostsCreatedTotal.Inc()
	return post, nil
}

// UpdatePost rewrites a post after the authorship check.
func (s *BlogService) UpdatePost(ctx context.Context, id int64, viewer *domain.User, form validator.PostForm) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(viewer) {
		return nil, domain.ErrNotAuthor
	}

	post.Title = form.Title
	post.Text = form.Text
	post.PubDate = form.PubDate
	post.IsPublished = form.IsPublished
	post.CategoryID = form.CategoryID
	post.LocationID = form.LocationID
	if form.ImagePath != nil {
		post.ImagePath = form.ImagePath
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post after the authorship check. Comments go with
// it via the FK cascade.
func (s *BlogService) DeletePost(ctx context.Context, id int64, viewer *domain.User) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.OwnedBy(viewer) {
		return domain.ErrNotAuthor
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	metrics.PostsDeletedTotal.Inc()
	return nil
}

// AddComment appends a comment to a post the author can see.
func (s *BlogService) AddComment(ctx context.Context, postID int64, author *domain.User, form validator.CommentForm) (*domain.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(author) && !post.VisibleAt(s.now()) {
		return nil, domain.ErrNotFound
	}

	comment := &domain.Comment{
		Text:     form.Text,
		PostID:   postID,
		AuthorID: author.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	metrics.CommentsCreatedTotal.Inc()
	return comment, nil
}

// Comment returns a comment scoped to a post. A comment that exists under
// a different post is ErrNotFound.
func (s *BlogService) Comment(ctx context.Context, postID, commentID int64) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, domain.ErrNotFound
	}
	return comment, nil
}

// UpdateComment rewrites a comment's text after the authorship check.
func (s *BlogService) UpdateComment(ctx context.Context, postID, commentID int64, viewer *domain.User, form validator.CommentForm) error {
	comment, err := s.Comment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !comment.OwnedBy(viewer) {
		return domain.ErrNotAuthor
	}

	comment.Text = form.Text
	return s.comments.Update(ctx, comment)
}

// DeleteComment removes a comment after the authorship check.
func (s *BlogService) DeleteComment(ctx context.Context, postID, commentID int64, viewer *domain.User) error {
	comment, err := s.Comment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !comment.OwnedBy(viewer) {
		return domain.ErrNotAuthor
	}
	return s.comments.Delete(ctx, commentID)
}
