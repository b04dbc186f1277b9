// Package validation defines the request and response shapes of the API and
// the rules a payload must satisfy before it reaches the store.
package validation

import "blogapi/internal/models"

// AuthorCreate is the body of POST /authors.
type AuthorCreate struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// AuthorUpdate is the body of PUT /authors/{id}. A nil field, whether absent
// or null in the JSON, leaves the stored value unchanged.
type AuthorUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
}

// AuthorRead is the response shape for an author.
type AuthorRead struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PostCreate is the body of POST /posts. AuthorID is a pointer so that a
// missing field is distinguishable from an id that does not exist.
type PostCreate struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	AuthorID *int   `json:"author_id" validate:"required"`
}

// PostUpdate is the body of PUT /posts/{id}. The author of a post cannot change.
type PostUpdate struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// PostAuthor is the author embedded in a PostRead.
type PostAuthor struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PostRead is the response shape for a post, always with its author resolved.
type PostRead struct {
	ID      uint       `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Author  PostAuthor `json:"author"`
}

func NewAuthorRead(a *models.Author) AuthorRead {
	return AuthorRead{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
	}
}

// NewAuthorReads maps a slice of authors; the result is never nil so it
// encodes as [] rather than null.
func NewAuthorReads(authors []models.Author) []AuthorRead {
	out := make([]AuthorRead, 0, len(authors))
	for i := range authors {
		out = append(out, NewAuthorRead(&authors[i]))
	}
	return out
}

func NewPostRead(p *models.Post) PostRead {
	return PostRead{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author: PostAuthor{
			ID:    p.Author.ID,
			Name:  p.Author.Name,
			Email: p.Author.Email,
		},
	}
}

func NewPostReads(posts []models.Post) []PostRead {
	out := make([]PostRead, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostRead(&posts[i]))
	}
	return out
}
