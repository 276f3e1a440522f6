package repositories

import (
	"context"

	"blogapi/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	InsertOne(ctx context.Context, post *models.BlogPost) error
	InsertMany(ctx context.Context, posts []*models.BlogPost) error
	FindAll(ctx context.Context) ([]*models.BlogPost, error)
	FindByID(ctx context.Context, id string) (*models.BlogPost, error)
	UpdateByID(ctx context.Context, id string, patch *models.PostPatch) error
	DeleteByID(ctx context.Context, id string) error
	// DropAll removes every post. Only seeding and test teardown use it.
	DropAll(ctx context.Context) error
}

// Store is a PostRepository that owns a connection.
type Store interface {
	PostRepository
	Ping(ctx context.Context) error
	Close() error
}
