package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"blogapi/app/models"
	"blogapi/app/repositories/mock"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validInput(title string) *models.PostInput {
	return &models.PostInput{
		Author:  &models.Author{FirstName: "A", LastName: "B"},
		Title:   title,
		Content: "C",
	}
}

func TestPostService(t *testing.T) {
	ctx := context.Background()
	postRepo := mock.NewPostRepository()
	service := NewPostService(postRepo, zerolog.Nop())

	var created *models.BlogPost

	t.Run("create post", func(t *testing.T) {
		post, err := service.CreatePost(ctx, validInput("T"))
		require.NoError(t, err)
		assert.NotEmpty(t, post.ID)
		assert.False(t, post.Created.IsZero())
		created = post
	})

	t.Run("get post", func(t *testing.T) {
		post, err := service.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "T", post.Title)
		assert.Equal(t, "C", post.Content)
		assert.Equal(t, "A B", post.View().Author)
	})

	t.Run("update post", func(t *testing.T) {
		err := service.UpdatePost(ctx, created.ID, &models.PostPatch{Title: strPtr("foo"), Content: strPtr("bar")})
		require.NoError(t, err)

		updated, err := service.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "foo", updated.Title)
		assert.Equal(t, "bar", updated.Content)
		assert.Equal(t, created.Author, updated.Author)
		assert.True(t, created.Created.Equal(updated.Created))
	})

	t.Run("update with mismatched body id", func(t *testing.T) {
		err := service.UpdatePost(ctx, created.ID, &models.PostPatch{ID: strPtr("nope"), Title: strPtr("foo")})
		var verr *models.ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("update missing post", func(t *testing.T) {
		err := service.UpdatePost(ctx, "999", &models.PostPatch{Title: strPtr("foo")})
		var nf *models.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "999", nf.ID)
	})

	t.Run("delete post", func(t *testing.T) {
		require.NoError(t, service.DeletePost(ctx, created.ID))

		_, err := service.GetPost(ctx, created.ID)
		var nf *models.NotFoundError
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("delete missing post succeeds", func(t *testing.T) {
		assert.NoError(t, service.DeletePost(ctx, created.ID))
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		post, err := service.CreatePost(ctx, validInput("again"))
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, post.ID)
	})

	t.Run("list matches stored count", func(t *testing.T) {
		require.NoError(t, postRepo.DropAll(ctx))
		for i := 0; i < 5; i++ {
			_, err := service.CreatePost(ctx, validInput(fmt.Sprintf("List %d", i)))
			require.NoError(t, err)
		}

		posts, err := service.ListPosts(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, postRepo.Count())
		assert.Len(t, posts, 5)
		assert.Equal(t, "List 0", posts[0].Title)
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name  string
			input *models.PostInput
		}{
			{name: "nil body", input: nil},
			{name: "empty title", input: &models.PostInput{Author: &models.Author{FirstName: "A", LastName: "B"}, Content: "C"}},
			{name: "empty content", input: &models.PostInput{Author: &models.Author{FirstName: "A", LastName: "B"}, Title: "T"}},
			{name: "missing author", input: &models.PostInput{Title: "T", Content: "C"}},
			{name: "missing last name", input: &models.PostInput{Author: &models.Author{FirstName: "A"}, Title: "T", Content: "C"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				before := postRepo.Count()
				_, err := service.CreatePost(ctx, tt.input)
				var verr *models.ValidationError
				assert.True(t, errors.As(err, &verr))
				assert.Equal(t, before, postRepo.Count())
			})
		}
	})
}

func TestPostServiceCreatePosts(t *testing.T) {
	ctx := context.Background()
	postRepo := mock.NewPostRepository()
	service := NewPostService(postRepo, zerolog.Nop())

	batch := []*models.BlogPost{
		{Author: models.Author{FirstName: "A", LastName: "B"}, Title: "one", Content: "x"},
		{Author: models.Author{FirstName: "C", LastName: "D"}, Title: "two", Content: "y", Created: time.Now().Add(-time.Hour)},
	}
	require.NoError(t, service.CreatePosts(ctx, batch))
	assert.Equal(t, 2, postRepo.Count())

	bad := []*models.BlogPost{{Title: "no author", Content: "x"}}
	assert.Error(t, service.CreatePosts(ctx, bad))
	assert.Equal(t, 2, postRepo.Count())
}

func TestPostServicePersistenceErrors(t *testing.T) {
	ctx := context.Background()
	postRepo := mock.NewPostRepository()
	service := NewPostService(postRepo, zerolog.Nop())
	storeErr := errors.New("connection refused")
	postRepo.Err = storeErr

	checks := map[string]func() error{
		"list": func() error {
			_, err := service.ListPosts(ctx)
			return err
		},
		"get": func() error {
			_, err := service.GetPost(ctx, "1")
			return err
		},
		"create": func() error {
			_, err := service.CreatePost(ctx, validInput("T"))
			return err
		},
		"update": func() error {
			return service.UpdatePost(ctx, "1", &models.PostPatch{Title: strPtr("x")})
		},
		"delete": func() error {
			return service.DeletePost(ctx, "1")
		},
	}

	for name, call := range checks {
		t.Run(name, func(t *testing.T) {
			err := call()
			var perr *models.PersistenceError
			require.True(t, errors.As(err, &perr))
			assert.ErrorIs(t, err, storeErr)
		})
	}
}
