package service

import (
	"context"
	"testing"

	"blogapi/internal/models"
	"blogapi/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAuthorService_CreateAuthor(t *testing.T) {
	env := setupServices(t)
	events := env.subscribe(t, notifications.EntityAuthors)

	a := env.createAuthor(t, "Ann", "ann@example.com")
	assert.NotZero(t, a.ID)
	assert.Equal(t, "Ann", a.Name)
	assert.Equal(t, "ann@example.com", a.Email)

	ev := nextEvent(t, events)
	assert.Equal(t, notifications.AuthorCreated, ev.Type)
	assert.Equal(t, a.ID, ev.EntityID)
}

func TestAuthorService_CreateAuthor_DuplicateEmail(t *testing.T) {
	env := setupServices(t)
	env.createAuthor(t, "Ann", "ann@example.com")

	_, err := env.authors.CreateAuthor(context.Background(), CreateAuthorInput{Name: "Other", Email: "ann@example.com"})
	assertAppError(t, err, models.CodeConflict, "Email already registered")

	list, err := env.authors.ListAuthors(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAuthorService_ListAuthors(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	list, err := env.authors.ListAuthors(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	first := env.createAuthor(t, "A", "a@example.com")
	second := env.createAuthor(t, "B", "b@example.com")

	list, err = env.authors.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestAuthorService_GetAuthor(t *testing.T) {
	env := setupServices(t)
	a := env.createAuthor(t, "Ann", "ann@example.com")

	got, err := env.authors.GetAuthor(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Email, got.Email)

	_, err = env.authors.GetAuthor(context.Background(), 999)
	assertAppError(t, err, models.CodeNotFound, "Author not found")
}

func TestAuthorService_UpdateAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		env := setupServices(t)
		a := env.createAuthor(t, "Ann", "ann@example.com")

		got, err := env.authors.UpdateAuthor(ctx, a.ID, UpdateAuthorInput{Name: strPtr("Annie")})
		require.NoError(t, err)
		assert.Equal(t, "Annie", got.Name)
		assert.Equal(t, "ann@example.com", got.Email)
	})

	t.Run("same email is not a conflict", func(t *testing.T) {
		env := setupServices(t)
		a := env.createAuthor(t, "Ann", "ann@example.com")

		got, err := env.authors.UpdateAuthor(ctx, a.ID, UpdateAuthorInput{Email: strPtr("ann@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", got.Email)
	})

	t.Run("email owned by another author", func(t *testing.T) {
		env := setupServices(t)
		a := env.createAuthor(t, "Ann", "ann@example.com")
		env.createAuthor(t, "Bob", "bob@example.com")

		_, err := env.authors.UpdateAuthor(ctx, a.ID, UpdateAuthorInput{Email: strPtr("bob@example.com")})
		assertAppError(t, err, models.CodeConflict, "Email already registered")

		unchanged, err := env.authors.GetAuthor(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", unchanged.Email)
	})

	t.Run("empty payload", func(t *testing.T) {
		env := setupServices(t)
		a := env.createAuthor(t, "Ann", "ann@example.com")

		got, err := env.authors.UpdateAuthor(ctx, a.ID, UpdateAuthorInput{})
		require.NoError(t, err)
		assert.Equal(t, a.Name, got.Name)
		assert.Equal(t, a.Email, got.Email)
	})

	t.Run("missing author", func(t *testing.T) {
		env := setupServices(t)
		_, err := env.authors.UpdateAuthor(ctx, 42, UpdateAuthorInput{Name: strPtr("X")})
		assertAppError(t, err, models.CodeNotFound, "Author not found")
	})
}

func TestAuthorService_DeleteAuthor_CascadesPosts(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	events := env.subscribe(t, notifications.EntityAuthors)

	a := env.createAuthor(t, "Ann", "ann@example.com")
	p := env.createPost(t, a.ID, "First")
	nextEvent(t, events)

	require.NoError(t, env.authors.DeleteAuthor(ctx, a.ID))

	ev := nextEvent(t, events)
	assert.Equal(t, notifications.AuthorDeleted, ev.Type)
	assert.Equal(t, a.ID, ev.EntityID)

	_, err := env.authors.GetAuthor(ctx, a.ID)
	assertAppError(t, err, models.CodeNotFound, "")
	_, err = env.posts.GetPost(ctx, p.ID)
	assertAppError(t, err, models.CodeNotFound, "Post not found")

	err = env.authors.DeleteAuthor(ctx, a.ID)
	assertAppError(t, err, models.CodeNotFound, "Author not found")
}

func TestAuthorService_ListAuthorPosts(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	a := env.createAuthor(t, "Ann", "ann@example.com")
	b := env.createAuthor(t, "Bob", "bob@example.com")

	posts, err := env.authors.ListAuthorPosts(ctx, a.ID)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	env.createPost(t, a.ID, "A1")
	env.createPost(t, b.ID, "B1")
	env.createPost(t, a.ID, "A2")

	posts, err = env.authors.ListAuthorPosts(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "A1", posts[0].Title)
	assert.Equal(t, "A2", posts[1].Title)
	assert.Equal(t, "Ann", posts[0].Author.Name)

	_, err = env.authors.ListAuthorPosts(ctx, 999)
	assertAppError(t, err, models.CodeNotFound, "Author not found")
}
