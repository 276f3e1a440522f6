// Package fixtures generates fake blog posts for seeding and tests.
package fixtures

import (
	"context"
	"time"

	"blogapi/app/models"
	"blogapi/app/repositories"
	"blogapi/app/services"

	"github.com/brianvoe/gofakeit/v7"
)

// Generator produces fake posts. A fixed seed gives repeatable output.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator returns a generator; seed 0 picks a random seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Input returns a valid create request body.
func (g *Generator) Input() *models.PostInput {
	return &models.PostInput{
		Author:  g.author(),
		Title:   g.faker.Sentence(5),
		Content: g.faker.Paragraph(3, 4, 12, "\n\n"),
	}
}

// Post returns an unsaved post with a creation time in the last year.
func (g *Generator) Post() *models.BlogPost {
	now := time.Now().UTC()
	return &models.BlogPost{
		Author:  *g.author(),
		Title:   g.faker.Sentence(5),
		Content: g.faker.Paragraph(3, 4, 12, "\n\n"),
		Created: g.faker.DateRange(now.AddDate(-1, 0, 0), now).UTC(),
	}
}

// Posts returns n unsaved posts.
func (g *Generator) Posts(n int) []*models.BlogPost {
	posts := make([]*models.BlogPost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, g.Post())
	}
	return posts
}

func (g *Generator) author() *models.Author {
	return &models.Author{
		FirstName: g.faker.FirstName(),
		LastName:  g.faker.LastName(),
	}
}

// Seed creates n fake posts through the service in one batch and returns them.
func Seed(ctx context.Context, svc *services.PostService, g *Generator, n int) ([]*models.BlogPost, error) {
	posts := g.Posts(n)
	if err := svc.CreatePosts(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Teardown drops every post.
func Teardown(ctx context.Context, repo repositories.PostRepository) error {
	return repo.DropAll(ctx)
}
