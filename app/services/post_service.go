package services

import (
	"context"
	"errors"

	"blogapi/app/models"
	"blogapi/app/repositories"

	"github.com/rs/zerolog"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	logger   zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		logger:   logger.With().Str("component", "post_service").Logger(),
	}
}

// ListPosts returns every stored post
func (s *PostService) ListPosts(ctx context.Context) ([]*models.BlogPost, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, s.storeError("list posts", "", err)
	}
	return posts, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeError("get post", id, err)
	}
	return post, nil
}

// CreatePost validates the input and persists a new post
func (s *PostService) CreatePost(ctx context.Context, input *models.PostInput) (*models.BlogPost, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	post := input.Post()
	if err := s.postRepo.InsertOne(ctx, post); err != nil {
		return nil, s.storeError("create post", "", err)
	}

	s.logger.Debug().Str("post_id", post.ID).Msg("post created")
	return post, nil
}

// CreatePosts persists a batch of already-built posts in one call
func (s *PostService) CreatePosts(ctx context.Context, posts []*models.BlogPost) error {
	for _, post := range posts {
		post.BeforeCreate()
		if err := post.Validate(); err != nil {
			return err
		}
	}
	if err := s.postRepo.InsertMany(ctx, posts); err != nil {
		return s.storeError("create posts", "", err)
	}
	return nil
}

// UpdatePost applies a partial update to an existing post
func (s *PostService) UpdatePost(ctx context.Context, id string, patch *models.PostPatch) error {
	if err := patch.Validate(id); err != nil {
		return err
	}

	if err := s.postRepo.UpdateByID(ctx, id, patch); err != nil {
		return s.storeError("update post", id, err)
	}

	s.logger.Debug().Str("post_id", id).Msg("post updated")
	return nil
}

// DeletePost removes a post. Deleting an id that does not exist succeeds.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	err := s.postRepo.DeleteByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		s.logger.Debug().Str("post_id", id).Msg("delete of missing post ignored")
		return nil
	}
	if err != nil {
		return s.storeError("delete post", id, err)
	}

	s.logger.Debug().Str("post_id", id).Msg("post deleted")
	return nil
}

// storeError maps repository errors onto the service error taxonomy
func (s *PostService) storeError(op, id string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.NotFoundError{ID: id}
	}
	return &models.PersistenceError{Op: op, Err: err}
}
