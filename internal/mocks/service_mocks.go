package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"blogicum/internal/domain"
	"blogicum/internal/service"
	"blogicum/internal/validator"
)

// MockBlogService mocks service.BlogServiceInterface.
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) Feed(ctx context.Context, page int) (*service.Listing, error) {
	args := m.Called(ctx, page)
	if l := args.Get(0); l != nil {
		return l.(*service.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogService) CategoryFeed(ctx context.Context, slug string, page int) (*domain.Category, *service.Listing, error) {
	args := m.Called(ctx, slug, page)
	var category *domain.Category
	var listing *service.Listing
	if c := args.Get(0); c != nil {
		category = c.(*domain.Category)
	}
	if l := args.Get(1); l != nil {
		listing = l.(*service.Listing)
	}
	return category, listing, args.Error(2)
}

func (m *MockBlogService) Profile(ctx context.Context, username string, viewer *domain.User, page int) (*domain.User, *service.Listing, error) {
	args := m.Called(ctx, username, viewer, page)
	var user *domain.User
	var listing *service.Listing
	if u := args.Get(0); u != nil {
		user = u.(*domain.User)
	}
	if l := args.Get(1); l != nil {
		listing = l.(*service.Listing)
	}
	return user, listing, args.Error(2)
}

func (m *MockBlogService) PostDetail(ctx context.Context, id int64, viewer *domain.User) (*service.PostPage, error) {
	args := m.Called(ctx, id, viewer)
	if p := args.Get(0); p != nil {
		return p.(*service.PostPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogService) PostForEdit(ctx context.Context, id int64, viewer *domain.User) (*domain.Post, error) {
	args := m.Called(ctx, id, viewer)
	if p := args.Get(0); p != nil {
		return p.(*domain.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogService) FormChoices(ctx context.Context) (*service.FormChoices, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.(*service.FormChoices), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogService) CreatePost(ctx context.Context, author *domain.User, form validator.PostForm) (*domain.Post, error) {
	args := m.Called(ctx, author, form)
	if p := args.Get(0); p != nil {
		return p.(*domain.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogService) UpdatePost(ctx context.Context, id int64, viewer *domain.User, form validator.PostForm) (*domain.Post, error) {
	args := m.Called(ctx, id, viewer, form)
	if p := args.Get(0); p != nil {
		return p.(*domain.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogService) DeletePost(ctx context.Context, id int64, viewer *domain.User) error {
	return m.Called(ctx, id, viewer).Error(0)
}

func (m *MockBlogService) AddComment(ctx context.Context, postID int64, author *domain.User, form validator.CommentForm) (*domain.Comment, error) {
	args := m.Called(ctx, postID, author, form)
	if c := args.Get(0); c != nil {
		return c.(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogService) Comment(ctx context.Context, postID, commentID int64) (*domain.Comment, error) {
	args := m.Called(ctx, postID, commentID)
	if c := args.Get(0); c != nil {
		return c.(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogService) UpdateComment(ctx context.Context, postID, commentID int64, viewer *domain.User, form validator.CommentForm) error {
	return m.Called(ctx, postID, commentID, viewer, form).Error(0)
}

func (m *MockBlogService) DeleteComment(ctx context.Context, postID, commentID int64, viewer *domain.User) error {
	return m.Called(ctx, postID, commentID, viewer).Error(0)
}

// MockAuthService mocks service.AuthServiceInterface.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, form validator.RegistrationForm) (*domain.User, error) {
	args := m.Called(ctx, form)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	if s := args.Get(0); s != nil {
		return s.(*domain.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockAuthService) UserBySession(ctx context.Context, sessionID string) (*domain.User, *domain.Session, error) {
	args := m.Called(ctx, sessionID)
	var user *domain.User
	var session *domain.Session
	if u := args.Get(0); u != nil {
		user = u.(*domain.User)
	}
	if s := args.Get(1); s != nil {
		session = s.(*domain.Session)
	}
	return user, session, args.Error(2)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, user *domain.User, form validator.ProfileForm) (*domain.User, error) {
	args := m.Called(ctx, user, form)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
