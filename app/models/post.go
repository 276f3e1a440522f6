package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FullName joins the first and last name for display.
func (a Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Validate checks if the post meets all validation requirements
func (p *BlogPost) Validate() error {
	if err := validate.Struct(p); err != nil {
		return toValidationError(err)
	}

	if p.Created.IsZero() {
		return &ValidationError{Field: "created", Message: "created cannot be zero"}
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *BlogPost) BeforeCreate() {
	if p.Created.IsZero() {
		p.Created = time.Now().UTC()
	}
}

// Apply copies the fields present in the patch onto the post.
// ID and Created are never touched.
func (p *BlogPost) Apply(patch *PostPatch) {
	if patch == nil {
		return
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}
}

// View maps the post to its public representation.
func (p *BlogPost) View() PostView {
	return PostView{
		ID:      p.ID,
		Author:  p.Author.FullName(),
		Title:   p.Title,
		Content: p.Content,
		Created: p.Created,
	}
}

// Views maps a slice of posts, never returning nil so it encodes as [].
func Views(posts []*BlogPost) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.View())
	}
	return out
}

// Validate checks the create request body.
func (in *PostInput) Validate() error {
	if in == nil {
		return &ValidationError{Message: "request body is required"}
	}
	if err := validate.Struct(in); err != nil {
		return toValidationError(err)
	}
	return nil
}

// Post builds the entity to persist. The id is left for the store to assign.
func (in *PostInput) Post() *BlogPost {
	post := &BlogPost{
		Author:  *in.Author,
		Title:   in.Title,
		Content: in.Content,
	}
	if in.Created != nil {
		post.Created = in.Created.UTC()
	}
	post.BeforeCreate()
	return post
}

// Validate checks the update request body against the id taken from the path.
func (p *PostPatch) Validate(pathID string) error {
	if p == nil {
		return &ValidationError{Message: "request body is required"}
	}
	if p.ID != nil && *p.ID != pathID {
		return &ValidationError{
			Field:   "id",
			Message: "request path id (" + pathID + ") and request body id (" + *p.ID + ") must match",
		}
	}
	if err := validate.Struct(p); err != nil {
		return toValidationError(err)
	}
	return nil
}

// Empty reports whether the patch carries no updatable field.
func (p *PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Author == nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := verrs[0]
	field := jsonFieldName(fe.Namespace())
	msg := "missing `" + field + "` in request body"
	if fe.Tag() != "required" {
		msg = "`" + field + "` must not be empty"
	}
	return &ValidationError{Field: field, Message: msg}
}

// jsonFieldName turns "PostInput.Author.FirstName" into "author.firstName".
func jsonFieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToLower(part[:1]) + part[1:]
	}
	return strings.Join(parts, ".")
}
