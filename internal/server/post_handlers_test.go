package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/notifications"
	"blogapi/internal/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Success",
			body:           map[string]any{"title": "T", "content": "C", "author_id": 1},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Unknown Author",
			body:           map[string]any{"title": "T", "content": "C", "author_id": 999},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "author_id does not exist",
		},
		{
			name:           "Missing Author",
			body:           map[string]any{"title": "T", "content": "C"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "Non Integer Author",
			body:           map[string]any{"title": "T", "content": "C", "author_id": "one"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "Missing Title",
			body:           map[string]any{"content": "C", "author_id": 1},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, app := setupTestServer(t, nil)
			doJSON(t, app, http.MethodPost, "/authors", map[string]any{"name": "Ann", "email": "ann@example.com"})

			status, raw := doJSON(t, app, http.MethodPost, "/posts", tt.body)
			assert.Equal(t, tt.expectedStatus, status, string(raw))
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decode[models.ErrorResponse](t, raw).Error)
			}
			if status != http.StatusCreated {
				_, raw = doJSON(t, app, http.MethodGet, "/posts", nil)
				assert.Equal(t, "[]", string(raw), "no row may be created on failure")
			}
		})
	}
}

func TestListPosts(t *testing.T) {
	_, app := setupTestServer(t, nil)
	doJSON(t, app, http.MethodPost, "/authors", map[string]any{"name": "Ann", "email": "ann@example.com"})
	doJSON(t, app, http.MethodPost, "/authors", map[string]any{"name": "Bob", "email": "bob@example.com"})
	doJSON(t, app, http.MethodPost, "/posts", map[string]any{"title": "A1", "content": "c", "author_id": 1})
	doJSON(t, app, http.MethodPost, "/posts", map[string]any{"title": "B1", "content": "c", "author_id": 2})
	doJSON(t, app, http.MethodPost, "/posts", map[string]any{"title": "A2", "content": "c", "author_id": 1})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedTitles []string
	}{
		{"All", "/posts", http.StatusOK, []string{"A1", "B1", "A2"}},
		{"By Author", "/posts?author_id=1", http.StatusOK, []string{"A1", "A2"}},
		{"Unknown Author", "/posts?author_id=999", http.StatusOK, []string{}},
		{"Invalid Author", "/posts?author_id=abc", http.StatusUnprocessableEntity, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := doJSON(t, app, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.expectedStatus, status, string(raw))
			if tt.expectedTitles == nil {
				return
			}
			titles := []string{}
			for _, p := range decode[[]validation.PostRead](t, raw) {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.expectedTitles, titles)
		})
	}
}

func TestGetPost(t *testing.T) {
	_, app := setupTestServer(t, nil)
	doJSON(t, app, http.MethodPost, "/authors", map[string]any{"name": "Ann", "email": "ann@example.com"})
	doJSON(t, app, http.MethodPost, "/posts", map[string]any{"title": "T", "content": "C", "author_id": 1})

	status, raw := doJSON(t, app, http.MethodGet, "/posts/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ann", decode[validation.PostRead](t, raw).Author.Name)

	status, _ = doJSON(t, app, http.MethodGet, "/posts/2", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodGet, "/posts/x", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestPostRoutes_NonPositiveIDIsNotFound(t *testing.T) {
	_, app := setupTestServer(t, nil)

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/posts/-1", nil},
		{http.MethodGet, "/posts/0", nil},
		{http.MethodPut, "/posts/-1", map[string]any{"title": "T"}},
		{http.MethodDelete, "/posts/0", nil},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, raw := doJSON(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, status, string(raw))
			assert.Equal(t, models.ErrorResponse{Error: "Post not found", Code: models.CodeNotFound},
				decode[models.ErrorResponse](t, raw))
		})
	}
}

func TestUpdatePost(t *testing.T) {
	_, app := setupTestServer(t, nil)
	doJSON(t, app, http.MethodPost, "/authors", map[string]any{"name": "Ann", "email": "ann@example.com"})
	doJSON(t, app, http.MethodPost, "/authors", map[string]any{"name": "Bob", "email": "bob@example.com"})
	doJSON(t, app, http.MethodPost, "/posts", map[string]any{"title": "T", "content": "C", "author_id": 1})

	status, raw := doJSON(t, app, http.MethodPut, "/posts/1", map[string]any{"title": "New"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.JSONEq(t, `{"id":1,"title":"New","content":"C","author":{"id":1,"name":"Ann","email":"ann@example.com"}}`, string(raw))

	// author_id is not part of the update payload
	status, raw = doJSON(t, app, http.MethodPut, "/posts/1", map[string]any{"author_id": 2})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, uint(1), decode[validation.PostRead](t, raw).Author.ID)

	status, _ = doJSON(t, app, http.MethodPut, "/posts/1", map[string]any{"title": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doJSON(t, app, http.MethodPut, "/posts/999", map[string]any{"title": "X"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeletePost(t *testing.T) {
	_, app := setupTestServer(t, nil)
	doJSON(t, app, http.MethodPost, "/authors", map[string]any{"name": "Ann", "email": "ann@example.com"})
	doJSON(t, app, http.MethodPost, "/posts", map[string]any{"title": "T", "content": "C", "author_id": 1})

	status, _ := doJSON(t, app, http.MethodDelete, "/posts/1", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/posts/1", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// the author is untouched
	status, _ = doJSON(t, app, http.MethodGet, "/authors/1", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCreatePost_PublishesEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	_, app := setupTestServer(t, rdb)

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, notifications.EntityChannel(notifications.EntityPosts))
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	doJSON(t, app, http.MethodPost, "/authors", map[string]any{"name": "Ann", "email": "ann@example.com"})
	status, _ := doJSON(t, app, http.MethodPost, "/posts", map[string]any{"title": "T", "content": "C", "author_id": 1})
	require.Equal(t, http.StatusCreated, status)

	recvCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(recvCtx)
	require.NoError(t, err)

	var ev notifications.Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	assert.Equal(t, notifications.PostCreated, ev.Type)
	assert.Equal(t, uint(1), ev.EntityID)
}
