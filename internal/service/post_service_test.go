package service

import (
	"context"
	"testing"

	"blogapi/internal/models"
	"blogapi/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestPostService_CreatePost(t *testing.T) {
	env := setupServices(t)
	events := env.subscribe(t, notifications.EntityPosts)
	a := env.createAuthor(t, "Ann", "ann@example.com")

	p := env.createPost(t, a.ID, "Hello")
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, "body", p.Content)
	assert.Equal(t, a.ID, p.Author.ID)
	assert.Equal(t, "Ann", p.Author.Name)
	assert.Equal(t, "ann@example.com", p.Author.Email)

	ev := nextEvent(t, events)
	assert.Equal(t, notifications.PostCreated, ev.Type)
	assert.Equal(t, p.ID, ev.EntityID)
}

func TestPostService_CreatePost_UnknownAuthor(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	for _, id := range []int{999, 0, -3} {
		_, err := env.posts.CreatePost(ctx, CreatePostInput{Title: "T", Content: "C", AuthorID: id})
		assertAppError(t, err, models.CodeBadRequest, "author_id does not exist")
	}

	posts, err := env.posts.ListPosts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostService_ListPosts(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	a := env.createAuthor(t, "Ann", "ann@example.com")
	b := env.createAuthor(t, "Bob", "bob@example.com")
	env.createPost(t, a.ID, "A1")
	env.createPost(t, b.ID, "B1")

	all, err := env.posts.ListPosts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A1", all[0].Title)
	assert.Equal(t, "Bob", all[1].Author.Name)

	onlyB, err := env.posts.ListPosts(ctx, intPtr(int(b.ID)))
	require.NoError(t, err)
	require.Len(t, onlyB, 1)
	assert.Equal(t, "B1", onlyB[0].Title)

	// unknown author filters to nothing rather than failing
	none, err := env.posts.ListPosts(ctx, intPtr(999))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	none, err = env.posts.ListPosts(ctx, intPtr(-1))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostService_GetPost(t *testing.T) {
	env := setupServices(t)
	a := env.createAuthor(t, "Ann", "ann@example.com")
	p := env.createPost(t, a.ID, "Hello")

	got, err := env.posts.GetPost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "Ann", got.Author.Name)

	_, err = env.posts.GetPost(context.Background(), 999)
	assertAppError(t, err, models.CodeNotFound, "Post not found")
}

func TestPostService_UpdatePost(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	a := env.createAuthor(t, "Ann", "ann@example.com")
	p := env.createPost(t, a.ID, "Hello")

	got, err := env.posts.UpdatePost(ctx, p.ID, UpdatePostInput{Content: strPtr("new body")})
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "new body", got.Content)
	assert.Equal(t, a.ID, got.Author.ID)

	got, err = env.posts.UpdatePost(ctx, p.ID, UpdatePostInput{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "new body", got.Content)

	_, err = env.posts.UpdatePost(ctx, 999, UpdatePostInput{Title: strPtr("X")})
	assertAppError(t, err, models.CodeNotFound, "Post not found")
}

func TestPostService_DeletePost(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	a := env.createAuthor(t, "Ann", "ann@example.com")
	p := env.createPost(t, a.ID, "Hello")

	require.NoError(t, env.posts.DeletePost(ctx, p.ID))

	_, err := env.posts.GetPost(ctx, p.ID)
	assertAppError(t, err, models.CodeNotFound, "Post not found")

	// the author survives its post
	_, err = env.authors.GetAuthor(ctx, a.ID)
	require.NoError(t, err)

	err = env.posts.DeletePost(ctx, p.ID)
	assertAppError(t, err, models.CodeNotFound, "Post not found")
}

func TestPostService_NilNotifier(t *testing.T) {
	env := setupServices(t)
	svc := NewPostService(env.db, env.posts.postRepo, env.posts.authorRepo, nil)
	a := env.createAuthor(t, "Ann", "ann@example.com")

	p, err := svc.CreatePost(context.Background(), CreatePostInput{Title: "T", Content: "C", AuthorID: int(a.ID)})
	require.NoError(t, err)
	assert.Equal(t, "T", p.Title)
}
