package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"chirpfeed/internal/errors"
	"chirpfeed/internal/model"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Save(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func newPostServiceForTest(posts *MockPostRepository, users *MockUserRepository) PostService {
	return NewPostService(posts, NewUserService(users, nil))
}

func TestPostService_ToggleLike_PairRestoresState(t *testing.T) {
	actorID := uuid.New()
	post := &model.Post{ID: uuid.New(), AuthorID: uuid.New(), Text: "hi", Likes: model.IDList{}}

	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	repo.On("Save", mock.Anything, post).Return(nil)

	svc := newPostServiceForTest(repo, new(MockUserRepository))

	liked, err := svc.ToggleLike(context.Background(), post.ID, actorID)
	assert.NoError(t, err)
	assert.True(t, liked.Likes.Contains(actorID))

	unliked, err := svc.ToggleLike(context.Background(), post.ID, actorID)
	assert.NoError(t, err)
	assert.False(t, unliked.Likes.Contains(actorID))
	assert.Empty(t, unliked.Likes)
}

func TestPostService_Update(t *testing.T) {
	authorID := uuid.New()
	post := &model.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Text:     "original",
		Likes:    model.IDList{uuid.New()},
		Comments: []model.Comment{{UserID: uuid.New(), Text: "first"}},
	}

	t.Run("author replaces text, likes and comments untouched", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("FindByID", mock.Anything, post.ID).Return(post, nil)
		repo.On("Save", mock.Anything, post).Return(nil)

		svc := newPostServiceForTest(repo, new(MockUserRepository))
		updated, err := svc.Update(context.Background(), post.ID, authorID, "edited")

		assert.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
		assert.Len(t, updated.Likes, 1)
		assert.Len(t, updated.Comments, 1)
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("FindByID", mock.Anything, post.ID).Return(post, nil)

		svc := newPostServiceForTest(repo, new(MockUserRepository))
		_, err := svc.Update(context.Background(), post.ID, uuid.New(), "hijack")

		assert.Equal(t, errors.ErrNotPostAuthor, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing post yields not found", func(t *testing.T) {
		repo := new(MockPostRepository)
		missing := uuid.New()
		repo.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)

		svc := newPostServiceForTest(repo, new(MockUserRepository))
		_, err := svc.Update(context.Background(), missing, authorID, "text")

		assert.Equal(t, errors.ErrPostNotFound, err)
	})
}

func TestPostService_Delete_NonAuthorForbidden(t *testing.T) {
	post := &model.Post{ID: uuid.New(), AuthorID: uuid.New(), Text: "keep me"}

	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, post.ID).Return(post, nil)

	svc := newPostServiceForTest(repo, new(MockUserRepository))
	err := svc.Delete(context.Background(), post.ID, uuid.New())

	assert.Equal(t, errors.ErrNotPostAuthor, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPostService_AddComment(t *testing.T) {
	actorID := uuid.New()
	post := &model.Post{ID: uuid.New(), AuthorID: uuid.New(), Text: "hi", Comments: []model.Comment{}}

	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	repo.On("Save", mock.Anything, post).Return(nil)

	svc := newPostServiceForTest(repo, new(MockUserRepository))
	commented, err := svc.AddComment(context.Background(), post.ID, actorID, "nice post")

	assert.NoError(t, err)
	assert.Len(t, commented.Comments, 1)
	assert.Equal(t, actorID, commented.Comments[0].UserID)
	assert.Equal(t, "nice post", commented.Comments[0].Text)
	assert.False(t, commented.Comments[0].CreatedAt.IsZero())
}

func TestPostService_Feed(t *testing.T) {
	author := &model.User{ID: uuid.New(), Username: "alice", Avatar: "http://example.com/a.png"}
	posts := []model.Post{
		{ID: uuid.New(), AuthorID: author.ID, Text: "third"},
		{ID: uuid.New(), AuthorID: author.ID, Text: "second"},
	}

	t.Run("passes skip/limit pagination to the store", func(t *testing.T) {
		repo := new(MockPostRepository)
		users := new(MockUserRepository)
		repo.On("List", mock.Anything, 2, 2).Return(posts, nil)
		users.On("FindByID", mock.Anything, author.ID).Return(author, nil)

		svc := newPostServiceForTest(repo, users)
		views, err := svc.Feed(context.Background(), 2, 2)

		assert.NoError(t, err)
		assert.Len(t, views, 2)
		assert.Equal(t, "alice", views[0].Author.Username)
		repo.AssertExpectations(t)
	})

	t.Run("defaults page and limit", func(t *testing.T) {
		repo := new(MockPostRepository)
		users := new(MockUserRepository)
		repo.On("List", mock.Anything, 0, 10).Return([]model.Post{}, nil)

		svc := newPostServiceForTest(repo, users)
		views, err := svc.Feed(context.Background(), 0, 0)

		assert.NoError(t, err)
		assert.Empty(t, views)
		repo.AssertExpectations(t)
	})

	t.Run("unresolvable author leaves the post undecorated", func(t *testing.T) {
		repo := new(MockPostRepository)
		users := new(MockUserRepository)
		repo.On("List", mock.Anything, 0, 10).Return(posts[:1], nil)
		users.On("FindByID", mock.Anything, author.ID).Return(nil, gorm.ErrRecordNotFound)

		svc := newPostServiceForTest(repo, users)
		views, err := svc.Feed(context.Background(), 1, 10)

		assert.NoError(t, err)
		assert.Len(t, views, 1)
		assert.Nil(t, views[0].Author)
	})
}

func TestPostService_Create(t *testing.T) {
	actorID := uuid.New()
	repo := new(MockPostRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	svc := newPostServiceForTest(repo, new(MockUserRepository))
	post, err := svc.Create(context.Background(), actorID, "hello world")

	assert.NoError(t, err)
	assert.Equal(t, actorID, post.AuthorID)
	assert.Equal(t, "hello world", post.Text)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}
