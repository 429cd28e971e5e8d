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

func TestUserService_Follow(t *testing.T) {
	actorID := uuid.New()
	targetID := uuid.New()

	t.Run("adds the relationship on both sides", func(t *testing.T) {
		actor := &model.User{ID: actorID, Username: "alice", Following: model.IDList{}}
		target := &model.User{ID: targetID, Username: "bob", Followers: model.IDList{}}

		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, targetID).Return(target, nil)
		repo.On("FindByID", mock.Anything, actorID).Return(actor, nil)
		repo.On("Save", mock.Anything, actor).Return(nil)
		repo.On("Save", mock.Anything, target).Return(nil)

		svc := NewUserService(repo, nil)
		message, err := svc.Follow(context.Background(), actorID, targetID)

		assert.NoError(t, err)
		assert.Equal(t, "You are now following bob", message)
		assert.True(t, actor.Following.Contains(targetID))
		assert.True(t, target.Followers.Contains(actorID))
		repo.AssertExpectations(t)
	})

	t.Run("second follow yields conflict and writes nothing", func(t *testing.T) {
		actor := &model.User{ID: actorID, Username: "alice", Following: model.IDList{targetID}}
		target := &model.User{ID: targetID, Username: "bob", Followers: model.IDList{actorID}}

		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, targetID).Return(target, nil)
		repo.On("FindByID", mock.Anything, actorID).Return(actor, nil)

		svc := NewUserService(repo, nil)
		_, err := svc.Follow(context.Background(), actorID, targetID)

		assert.Equal(t, errors.ErrAlreadyFollowing, err)
		assert.Equal(t, model.IDList{targetID}, actor.Following)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil)

		_, err := svc.Follow(context.Background(), actorID, actorID)

		assert.Equal(t, errors.ErrSelfFollow, err)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing target yields not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, targetID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(repo, nil)
		_, err := svc.Follow(context.Background(), actorID, targetID)

		assert.Equal(t, errors.ErrUserNotFound, err)
	})
}

func TestUserService_Unfollow_Idempotent(t *testing.T) {
	actorID := uuid.New()
	targetID := uuid.New()

	actor := &model.User{ID: actorID, Username: "alice", Following: model.IDList{targetID}}
	target := &model.User{ID: targetID, Username: "bob", Followers: model.IDList{actorID}}

	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, targetID).Return(target, nil)
	repo.On("FindByID", mock.Anything, actorID).Return(actor, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(repo, nil)

	message, err := svc.Unfollow(context.Background(), actorID, targetID)
	assert.NoError(t, err)
	assert.Equal(t, "You have unfollowed bob", message)
	assert.False(t, actor.Following.Contains(targetID))
	assert.False(t, target.Followers.Contains(actorID))

	// Removing a relationship that no longer exists still succeeds.
	_, err = svc.Unfollow(context.Background(), actorID, targetID)
	assert.NoError(t, err)
	assert.Empty(t, actor.Following)
	assert.Empty(t, target.Followers)
}

func TestUserService_UpdateProfile(t *testing.T) {
	id := uuid.New()

	t.Run("applies only the provided fields", func(t *testing.T) {
		user := &model.User{
			ID:           id,
			Username:     "alice",
			Bio:          "old bio",
			Avatar:       "http://example.com/a.png",
			PasswordHash: "hash",
		}
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, id).Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		svc := NewUserService(repo, nil)
		summary, err := svc.UpdateProfile(context.Background(), id, ProfilePatch{Bio: "new bio"})

		assert.NoError(t, err)
		assert.Equal(t, "alice", summary.Username)
		assert.Equal(t, "new bio", summary.Bio)
		assert.Equal(t, "http://example.com/a.png", summary.Avatar)
		assert.Equal(t, "hash", user.PasswordHash)
		repo.AssertExpectations(t)
	})

	t.Run("rehashes a provided password", func(t *testing.T) {
		user := &model.User{ID: id, Username: "alice", PasswordHash: "old-hash"}
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, id).Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		svc := NewUserService(repo, nil)
		_, err := svc.UpdateProfile(context.Background(), id, ProfilePatch{Password: "new-password"})

		assert.NoError(t, err)
		assert.NotEqual(t, "old-hash", user.PasswordHash)
		assert.NotEqual(t, "new-password", user.PasswordHash)
	})

	t.Run("missing user yields not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(repo, nil)
		_, err := svc.UpdateProfile(context.Background(), id, ProfilePatch{Bio: "x"})

		assert.Equal(t, errors.ErrUserNotFound, err)
	})
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(repo, nil)
	_, err := svc.GetProfile(context.Background(), id)

	assert.Equal(t, errors.ErrUserNotFound, err)
}
