package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogicum/internal/domain"
	"blogicum/internal/mocks"
	"blogicum/internal/repository"
	"blogicum/internal/service"
	"blogicum/internal/validator"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type blogFixture struct {
	posts      *mocks.MockPostRepository
	comments   *mocks.MockCommentRepository
	categories *mocks.MockCategoryRepository
	locations  *mocks.MockLocationRepository
	users      *mocks.MockUserRepository
	svc        *service.BlogService
}

func newBlogFixture() *blogFixture {
	f := &blogFixture{
		posts:      &mocks.MockPostRepository{},
		comments:   &mocks.MockCommentRepository{},
		categories: &mocks.MockCategoryRepository{},
		locations:  &mocks.MockLocationRepository{},
		users:      &mocks.MockUserRepository{},
	}
	f.svc = service.NewBlogService(f.posts, f.comments, f.categories, f.locations, f.users)
	f.svc.SetNow(func() time.Time { return testNow })
	return f
}

func visibleFilter(f repository.PostFilter) bool {
	return f.VisibleAt != nil && f.VisibleAt.Equal(testNow)
}

func TestBlogService_Feed(t *testing.T) {
	t.Run("applies visibility filter and pagination", func(t *testing.T) {
		f := newBlogFixture()

		matcher := mock.MatchedBy(func(fl repository.PostFilter) bool {
			return visibleFilter(fl) && fl.CategoryID == nil && fl.AuthorID == nil
		})
		f.posts.On("Count", mock.Anything, matcher).Return(25, nil)
		f.posts.On("List", mock.Anything, matcher, service.PageSize, 10).
			Return([]domain.Post{{ID: 11}}, nil)

		listing, err := f.svc.Feed(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, 2, listing.Page.Number)
		assert.Equal(t, 3, listing.Page.TotalPages)
		assert.Len(t, listing.Posts, 1)
		f.posts.AssertExpectations(t)
	})

	t.Run("page past the end is clamped to the last page", func(t *testing.T) {
		f := newBlogFixture()

		f.posts.On("Count", mock.Anything, mock.Anything).Return(25, nil)
		// 25 items at 10 per page: page 99 resolves to page 3, offset 20.
		f.posts.On("List", mock.Anything, mock.Anything, service.PageSize, 20).
			Return([]domain.Post{{ID: 21}}, nil)

		listing, err := f.svc.Feed(context.Background(), 99)
		require.NoError(t, err)
		assert.Equal(t, 3, listing.Page.Number)
		f.posts.AssertExpectations(t)
	})
}

func TestBlogService_CategoryFeed(t *testing.T) {
	t.Run("unknown slug is not found", func(t *testing.T) {
		f := newBlogFixture()
		f.categories.On("GetBySlug", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

		_, _, err := f.svc.CategoryFeed(context.Background(), "missing", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unpublished category is not found", func(t *testing.T) {
		f := newBlogFixture()
		f.categories.On("GetBySlug", mock.Anything, "hidden").
			Return(&domain.Category{ID: 3, Slug: "hidden", IsPublished: false}, nil)

		_, _, err := f.svc.CategoryFeed(context.Background(), "hidden", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.posts.AssertNotCalled(t, "List")
	})

	t.Run("published category scopes the filter", func(t *testing.T) {
		f := newBlogFixture()
		category := &domain.Category{ID: 3, Slug: "travel", IsPublished: true}
		f.categories.On("GetBySlug", mock.Anything, "travel").Return(category, nil)

		matcher := mock.MatchedBy(func(fl repository.PostFilter) bool {
			return visibleFilter(fl) && fl.CategoryID != nil && *fl.CategoryID == 3
		})
		f.posts.On("Count", mock.Anything, matcher).Return(1, nil)
		f.posts.On("List", mock.Anything, matcher, service.PageSize, 0).
			Return([]domain.Post{{ID: 1, CategoryID: 3}}, nil)

		got, listing, err := f.svc.CategoryFeed(context.Background(), "travel", 1)
		require.NoError(t, err)
		assert.Equal(t, category, got)
		assert.Len(t, listing.Posts, 1)
	})
}

func TestBlogService_Profile(t *testing.T) {
	owner := &domain.User{ID: "u1", Username: "alice"}

	t.Run("owner sees everything", func(t *testing.T) {
		f := newBlogFixture()
		f.users.On("GetByUsername", mock.Anything, "alice").Return(owner, nil)

		matcher := mock.MatchedBy(func(fl repository.PostFilter) bool {
			return fl.VisibleAt == nil && fl.AuthorID != nil && *fl.AuthorID == "u1"
		})
		f.posts.On("Count", mock.Anything, matcher).Return(2, nil)
		f.posts.On("List", mock.Anything, matcher, service.PageSize, 0).
			Return([]domain.Post{{ID: 1}, {ID: 2}}, nil)

		_, listing, err := f.svc.Profile(context.Background(), "alice", owner, 1)
		require.NoError(t, err)
		assert.Len(t, listing.Posts, 2)
		f.posts.AssertExpectations(t)
	})

	t.Run("other viewers get the visibility filter", func(t *testing.T) {
		f := newBlogFixture()
		f.users.On("GetByUsername", mock.Anything, "alice").Return(owner, nil)

		matcher := mock.MatchedBy(func(fl repository.PostFilter) bool {
			return visibleFilter(fl) && fl.AuthorID != nil && *fl.AuthorID == "u1"
		})
		f.posts.On("Count", mock.Anything, matcher).Return(1, nil)
		f.posts.On("List", mock.Anything, matcher, service.PageSize, 0).
			Return([]domain.Post{{ID: 1}}, nil)

		_, listing, err := f.svc.Profile(context.Background(), "alice", &domain.User{ID: "u2"}, 1)
		require.NoError(t, err)
		assert.Len(t, listing.Posts, 1)
		f.posts.AssertExpectations(t)
	})

	t.Run("anonymous viewers get the visibility filter", func(t *testing.T) {
		f := newBlogFixture()
		f.users.On("GetByUsername", mock.Anything, "alice").Return(owner, nil)

		matcher := mock.MatchedBy(func(fl repository.PostFilter) bool {
			return visibleFilter(fl)
		})
		f.posts.On("Count", mock.Anything, matcher).Return(0, nil)
		f.posts.On("List", mock.Anything, matcher, service.PageSize, 0).Return(nil, nil)

		_, listing, err := f.svc.Profile(context.Background(), "alice", nil, 1)
		require.NoError(t, err)
		assert.Empty(t, listing.Posts)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		f := newBlogFixture()
		f.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		_, _, err := f.svc.Profile(context.Background(), "ghost", nil, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func futurePost(author string) *domain.Post {
	return &domain.Post{
		ID:          7,
		AuthorID:    author,
		IsPublished: true,
		PubDate:     testNow.Add(24 * time.Hour),
		Category:    domain.Category{IsPublished: true},
	}
}

func TestBlogService_PostDetail(t *testing.T) {
	t.Run("future-dated post is hidden from non-owners", func(t *testing.T) {
		f := newBlogFixture()
		f.posts.On("GetByID", mock.Anything, int64(7)).Return(futurePost("u1"), nil)

		_, err := f.svc.PostDetail(context.Background(), 7, &domain.User{ID: "u2"})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = f.svc.PostDetail(context.Background(), 7, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("author sees their future-dated post", func(t *testing.T) {
		f := newBlogFixture()
		f.posts.On("GetByID", mock.Anything, int64(7)).Return(futurePost("u1"), nil)
		f.comments.On("ListByPost", mock.Anything, int64(7)).
			Return([]domain.Comment{{ID: 1, Text: "hi"}}, nil)

		page, err := f.svc.PostDetail(context.Background(), 7, &domain.User{ID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), page.Post.ID)
		assert.Len(t, page.Comments, 1)
	})

	t.Run("visible post is open to everyone", func(t *testing.T) {
		f := newBlogFixture()
		post := futurePost("u1")
		post.PubDate = testNow.Add(-time.Hour)
		f.posts.On("GetByID", mock.Anything, int64(7)).Return(post, nil)
		f.comments.On("ListByPost", mock.Anything, int64(7)).Return(nil, nil)

		_, err := f.svc.PostDetail(context.Background(), 7, nil)
		require.NoError(t, err)
	})
}

func TestBlogService_PostMutations(t *testing.T) {
	author := &domain.User{ID: "u1"}
	intruder := &domain.User{ID: "u2"}

	ownedPost := func() *domain.Post {
		return &domain.Post{ID: 5, AuthorID: "u1", Category: domain.Category{IsPublished: true}}
	}

	form := validator.PostForm{
		Title:      "new title",
		Text:       "new text",
		PubDate:    testNow,
		CategoryID: 2,
	}

	t.Run("non-author update is rejected without a write", func(t *testing.T) {
		f := newBlogFixture()
		f.posts.On("GetByID", mock.Anything, int64(5)).Return(ownedPost(), nil)

		_, err := f.svc.UpdatePost(context.Background(), 5, intruder, form)
		assert.ErrorIs(t, err, domain.ErrNotAuthor)
		f.posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("author update rewrites the fields", func(t *testing.T) {
		f := newBlogFixture()
		f.posts.On("GetByID", mock.Anything, int64(5)).Return(ownedPost(), nil)
		f.posts.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
			return p.ID == 5 && p.Title == "new title" && p.CategoryID == 2
		})).Return(nil)

		post, err := f.svc.UpdatePost(context.Background(), 5, author, form)
		require.NoError(t, err)
		assert.Equal(t, "new title", post.Title)
		f.posts.AssertExpectations(t)
	})

	t.Run("non-author delete is rejected without a write", func(t *testing.T) {
		f := newBlogFixture()
		f.posts.On("GetByID", mock.Anything, int64(5)).Return(ownedPost(), nil)

		err := f.svc.DeletePost(context.Background(), 5, intruder)
		assert.ErrorIs(t, err, domain.ErrNotAuthor)
		f.posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("author delete goes through", func(t *testing.T) {
		f := newBlogFixture()
		f.posts.On("GetByID", mock.Anything, int64(5)).Return(ownedPost(), nil)
		f.posts.On("Delete", mock.Anything, int64(5)).Return(nil)

		require.NoError(t, f.svc.DeletePost(context.Background(), 5, author))
		f.posts.AssertExpectations(t)
	})

	t.Run("create stamps the author", func(t *testing.T) {
		f := newBlogFixture()
		f.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
			return p.AuthorID == "u1" && p.Title == "new title"
		})).Return(nil)

		post, err := f.svc.CreatePost(context.Background(), author, form)
		require.NoError(t, err)
		assert.Equal(t, "u1", post.AuthorID)
	})

	t.Run("edit form load rejects non-authors", func(t *testing.T) {
		f := newBlogFixture()
		f.posts.On("GetByID", mock.Anything, int64(5)).Return(ownedPost(), nil)

		_, err := f.svc.PostForEdit(context.Background(), 5, intruder)
		assert.ErrorIs(t, err, domain.ErrNotAuthor)

		post, err := f.svc.PostForEdit(context.Background(), 5, author)
		require.NoError(t, err)
		assert.Equal(t, int64(5), post.ID)
	})
}

func TestBlogService_Comments(t *testing.T) {
	author := &domain.User{ID: "u1"}
	commenter := &domain.User{ID: "u2"}

	visiblePost := func() *domain.Post {
		return &domain.Post{
			ID:          5,
			AuthorID:    "u1",
			IsPublished: true,
			PubDate:     testNow.Add(-time.Hour),
			Category:    domain.Category{IsPublished: true},
		}
	}

	t.Run("add comment to a visible post", func(t *testing.T) {
		f := newBlogFixture()
		f.posts.On("GetByID", mock.Anything, int64(5)).Return(visiblePost(), nil)
		f.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.PostID == 5 && c.AuthorID == "u2" && c.Text == "nice"
		})).Return(nil)

		comment, err := f.svc.AddComment(context.Background(), 5, commenter, validator.CommentForm{Text: "nice"})
		require.NoError(t, err)
		assert.Equal(t, "u2", comment.AuthorID)
	})

	t.Run("cannot comment on an invisible post", func(t *testing.T) {
		f := newBlogFixture()
		post := visiblePost()
		post.IsPublished = false
		f.posts.On("GetByID", mock.Anything, int64(5)).Return(post, nil)

		_, err := f.svc.AddComment(context.Background(), 5, commenter, validator.CommentForm{Text: "nice"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("comment under a different post is not found", func(t *testing.T) {
		f := newBlogFixture()
		f.comments.On("GetByID", mock.Anything, int64(9)).
			Return(&domain.Comment{ID: 9, PostID: 6, AuthorID: "u2"}, nil)

		_, err := f.svc.Comment(context.Background(), 5, 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = f.svc.UpdateComment(context.Background(), 5, 9, commenter, validator.CommentForm{Text: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = f.svc.DeleteComment(context.Background(), 5, 9, commenter)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("non-author comment mutation is rejected", func(t *testing.T) {
		f := newBlogFixture()
		f.comments.On("GetByID", mock.Anything, int64(9)).
			Return(&domain.Comment{ID: 9, PostID: 5, AuthorID: "u2"}, nil)

		err := f.svc.UpdateComment(context.Background(), 5, 9, author, validator.CommentForm{Text: "x"})
		assert.ErrorIs(t, err, domain.ErrNotAuthor)
		f.comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

		err = f.svc.DeleteComment(context.Background(), 5, 9, author)
		assert.ErrorIs(t, err, domain.ErrNotAuthor)
		f.comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("author edits and deletes their comment", func(t *testing.T) {
		f := newBlogFixture()
		f.comments.On("GetByID", mock.Anything, int64(9)).
			Return(&domain.Comment{ID: 9, PostID: 5, AuthorID: "u2"}, nil)
		f.comments.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.ID == 9 && c.Text == "edited"
		})).Return(nil)
		f.comments.On("Delete", mock.Anything, int64(9)).Return(nil)

		require.NoError(t, f.svc.UpdateComment(context.Background(), 5, 9, commenter, validator.CommentForm{Text: "edited"}))
		require.NoError(t, f.svc.DeleteComment(context.Background(), 5, 9, commenter))
		f.comments.AssertExpectations(t)
	})
}

func TestBlogService_FormChoices(t *testing.T) {
	f := newBlogFixture()
	f.categories.On("ListPublished", mock.Anything).
		Return([]domain.Category{{ID: 1, Title: "Art"}}, nil)
	f.locations.On("ListPublished", mock.Anything).
		Return([]domain.Location{{ID: 2, Name: "Lisbon"}}, nil)

	choices, err := f.svc.FormChoices(context.Background())
	require.NoError(t, err)
	assert.Len(t, choices.Categories, 1)
	assert.Len(t, choices.Locations, 1)
}
