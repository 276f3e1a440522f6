package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Author is the structured author name stored with every post.
type Author struct {
	FirstName string `json:"firstName" bson:"firstName" validate:"required,notblank"`
	LastName  string `json:"lastName" bson:"lastName" validate:"required,notblank"`
}

// BlogPost represents a persisted blog post.
type BlogPost struct {
	ID      string    `json:"id"`
	Author  Author    `json:"author"`
	Title   string    `json:"title" validate:"required"`
	Content string    `json:"content" validate:"required"`
	Created time.Time `json:"created"`
}

// PostInput is the request body accepted when creating a post.
type PostInput struct {
	Author  *Author    `json:"author" validate:"required"`
	Title   string     `json:"title" validate:"required"`
	Content string     `json:"content" validate:"required"`
	Created *time.Time `json:"created,omitempty"`
}

// PostPatch is the request body accepted when updating a post.
// Nil fields are left untouched.
type PostPatch struct {
	ID      *string `json:"id,omitempty"`
	Author  *Author `json:"author,omitempty" validate:"omitnil"`
	Title   *string `json:"title,omitempty" validate:"omitnil,min=1"`
	Content *string `json:"content,omitempty" validate:"omitnil,min=1"`
}

// PostView is the public JSON representation of a post.
type PostView struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}
