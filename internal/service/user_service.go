package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chirpfeed/internal/cache"
	"chirpfeed/internal/errors"
	"chirpfeed/internal/model"
	"chirpfeed/internal/repository"
)

const summaryCacheTTL = 5 * time.Minute

// ProfilePatch carries the optional fields of a profile update. Empty fields
// are left untouched.
type ProfilePatch struct {
	Username string
	Bio      string
	Avatar   string
	Password string
}

// UserService handles profiles and the follow graph.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*model.UserSummary, error)
	Follow(ctx context.Context, actorID, targetID uuid.UUID) (message string, err error)
	Unfollow(ctx context.Context, actorID, targetID uuid.UUID) (message string, err error)
	Summary(ctx context.Context, id uuid.UUID) (*model.UserSummary, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{
		repo:  repo,
		cache: cache,
	}
}

func (s *userService) summaryCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:summary:%s", id.String())
}

// GetProfile returns the user document. The password hash is excluded from
// serialization at the model level.
func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the non-empty patch fields and returns the updated
// public summary. The summary cache entry is invalidated so feed decoration
// picks up the change.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*model.UserSummary, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if patch.Username != "" {
		user.Username = patch.Username
	}
	if patch.Bio != "" {
		user.Bio = patch.Bio
	}
	if patch.Avatar != "" {
		user.Avatar = patch.Avatar
	}
	if patch.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(patch.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.summaryCacheKey(id))

	return user.Summary(), nil
}

// Follow adds the actor to the target's followers and the target to the
// actor's following list. The two writes are independent and not
// transactional.
func (s *userService) Follow(ctx context.Context, actorID, targetID uuid.UUID) (string, error) {
	if actorID == targetID {
		return "", errors.ErrSelfFollow
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrUserNotFound
		}
		return "", err
	}
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrUserNotFound
		}
		return "", err
	}

	if actor.Following.Contains(targetID) {
		return "", errors.ErrAlreadyFollowing
	}

	actor.Following = append(actor.Following, targetID)
	target.Followers = append(target.Followers, actorID)

	if err := s.repo.Save(ctx, actor); err != nil {
		return "", fmt.Errorf("save actor: %w", err)
	}
	if err := s.repo.Save(ctx, target); err != nil {
		return "", fmt.Errorf("save target: %w", err)
	}

	return fmt.Sprintf("You are now following %s", target.Username), nil
}

// Unfollow removes the relationship from both sides. Removal is idempotent:
// unfollowing a user who was never followed still succeeds.
func (s *userService) Unfollow(ctx context.Context, actorID, targetID uuid.UUID) (string, error) {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrUserNotFound
		}
		return "", err
	}
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrUserNotFound
		}
		return "", err
	}

	actor.Following = actor.Following.Without(targetID)
	target.Followers = target.Followers.Without(actorID)

	if err := s.repo.Save(ctx, actor); err != nil {
		return "", fmt.Errorf("save actor: %w", err)
	}
	if err := s.repo.Save(ctx, target); err != nil {
		return "", fmt.Errorf("save target: %w", err)
	}

	return fmt.Sprintf("You have unfollowed %s", target.Username), nil
}

// Summary returns the public projection of a user with caching.
func (s *userService) Summary(ctx context.Context, id uuid.UUID) (*model.UserSummary, error) {
	if data, _ := s.cache.Get(ctx, s.summaryCacheKey(id)); data != nil {
		var cached model.UserSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	summary := user.Summary()
	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, s.summaryCacheKey(id), payload, summaryCacheTTL)
	}
	return summary, nil
}
