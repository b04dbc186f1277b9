// Package seed creates demo authors and posts. It goes through the service
// layer so seeded data satisfies the same rules as API writes.
package seed

import (
	"context"
	"fmt"
	"strings"

	"blogapi/internal/models"
	"blogapi/internal/service"
	"blogapi/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds fake authors and posts and persists them.
type Factory struct {
	faker   *gofakeit.Faker
	authors *service.AuthorService
	posts   *service.PostService
	// appended to generated emails to keep them unique
	seq int
}

// NewFactory creates a Factory. A zero seed picks a random one.
func NewFactory(authors *service.AuthorService, posts *service.PostService, seed int64) *Factory {
	return &Factory{
		faker:   gofakeit.New(seed),
		authors: authors,
		posts:   posts,
	}
}

// BuildAuthor returns a valid, unsaved author payload.
func (f *Factory) BuildAuthor(overrides ...func(*validation.AuthorCreate)) validation.AuthorCreate {
	f.seq++
	first, last := f.faker.FirstName(), f.faker.LastName()
	in := validation.AuthorCreate{
		Name: first + " " + last,
		Email: strings.ToLower(fmt.Sprintf("%s.%s%d@%s",
			emailSafe(first), emailSafe(last), f.seq, f.faker.DomainName())),
	}
	for _, override := range overrides {
		override(&in)
	}
	return in
}

// BuildPost returns a valid, unsaved post payload for authorID.
func (f *Factory) BuildPost(authorID uint, overrides ...func(*validation.PostCreate)) validation.PostCreate {
	id := int(authorID)
	in := validation.PostCreate{
		Title:    strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 8)), "."),
		Content:  f.faker.Paragraph(f.faker.Number(1, 3), f.faker.Number(2, 5), 12, "\n\n"),
		AuthorID: &id,
	}
	for _, override := range overrides {
		override(&in)
	}
	return in
}

// CreateAuthor validates and persists a fake author.
func (f *Factory) CreateAuthor(ctx context.Context, overrides ...func(*validation.AuthorCreate)) (*models.Author, error) {
	in := f.BuildAuthor(overrides...)
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	return f.authors.CreateAuthor(ctx, service.CreateAuthorInput{Name: in.Name, Email: in.Email})
}

// CreatePost validates and persists a fake post written by author.
func (f *Factory) CreatePost(ctx context.Context, author *models.Author, overrides ...func(*validation.PostCreate)) (*models.Post, error) {
	in := f.BuildPost(author.ID, overrides...)
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	return f.posts.CreatePost(ctx, service.CreatePostInput{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: *in.AuthorID,
	})
}

func emailSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, s)
}
