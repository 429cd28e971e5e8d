package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chirpfeed/internal/errors"
	"chirpfeed/internal/model"
	"chirpfeed/internal/repository"
)

const defaultFeedLimit = 10

// PostService handles the post store: creation, listing, author-only
// mutation, like toggling and comments.
type PostService interface {
	Create(ctx context.Context, authorID uuid.UUID, text string) (*model.Post, error)
	Feed(ctx context.Context, page, limit int) ([]model.PostView, error)
	ByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.PostView, error)
	Update(ctx context.Context, postID, actorID uuid.UUID, text string) (*model.Post, error)
	Delete(ctx context.Context, postID, actorID uuid.UUID) error
	ToggleLike(ctx context.Context, postID, actorID uuid.UUID) (*model.Post, error)
	AddComment(ctx context.Context, postID, actorID uuid.UUID, text string) (*model.Post, error)
}

type postService struct {
	repo  repository.PostRepository
	users UserService
}

// NewPostService creates a new post service. Author summaries for feed
// decoration come from the user service, which caches them.
func NewPostService(repo repository.PostRepository, users UserService) PostService {
	return &postService{
		repo:  repo,
		users: users,
	}
}

// Create stores a new post with empty like and comment lists.
func (s *postService) Create(ctx context.Context, authorID uuid.UUID, text string) (*model.Post, error) {
	post := &model.Post{
		AuthorID: authorID,
		Text:     text,
		Likes:    model.IDList{},
		Comments: []model.Comment{},
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Feed returns the global chronological feed, newest first, with skip/limit
// pagination. Page is 1-indexed.
func (s *postService) Feed(ctx context.Context, page, limit int) ([]model.PostView, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultFeedLimit
	}
	posts, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return s.decorate(ctx, posts), nil
}

// ByAuthor returns all posts by one author, newest first.
func (s *postService) ByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.PostView, error) {
	posts, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return s.decorate(ctx, posts), nil
}

// decorate attaches author summaries to posts. A post whose author cannot be
// resolved is returned without one.
func (s *postService) decorate(ctx context.Context, posts []model.Post) []model.PostView {
	views := make([]model.PostView, 0, len(posts))
	for _, post := range posts {
		view := model.PostView{Post: post}
		if summary, err := s.users.Summary(ctx, post.AuthorID); err == nil {
			view.Author = summary
		}
		views = append(views, view)
	}
	return views
}

// Update replaces the post text. Only the author may update a post; likes and
// comments are left untouched.
func (s *postService) Update(ctx context.Context, postID, actorID uuid.UUID, text string) (*model.Post, error) {
	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, errors.ErrNotPostAuthor
	}

	post.Text = text
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return post, nil
}

// Delete removes the post permanently. Only the author may delete a post.
func (s *postService) Delete(ctx context.Context, postID, actorID uuid.UUID) error {
	post, err := s.find(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return errors.ErrNotPostAuthor
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ToggleLike likes the post if the actor has not liked it yet, otherwise
// removes the like. Read-modify-write with no concurrency guard.
func (s *postService) ToggleLike(ctx context.Context, postID, actorID uuid.UUID) (*model.Post, error) {
	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Likes.Contains(actorID) {
		post.Likes = post.Likes.Without(actorID)
	} else {
		post.Likes = append(post.Likes, actorID)
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return post, nil
}

// AddComment appends a comment with the current timestamp. Comments are
// append-only.
func (s *postService) AddComment(ctx context.Context, postID, actorID uuid.UUID, text string) (*model.Post, error) {
	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Comments = append(post.Comments, model.Comment{
		UserID:    actorID,
		Text:      text,
		CreatedAt: time.Now(),
	})

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return post, nil
}

func (s *postService) find(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
