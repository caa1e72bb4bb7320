//go:build !integration

package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &Client{Addr: srv.URL}
}

func TestUsers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		io.WriteString(w, `{"users":[{"username":"lurker","name":"do_nothing","avatar_url":"https://example.com/a.png"}]}`)
	})

	users, err := c.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "lurker", users[0].Username)
	assert.Equal(t, "https://example.com/a.png", users[0].AvatarURL)
}

func TestUserNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/nobody", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"404: Not found"}`)
	})

	u, err := c.User(context.Background(), "nobody")
	assert.Nil(t, u)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "404: Not found", apiErr.Message)
}

func TestArticlesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cats", r.URL.Query().Get("topic"))
		assert.Equal(t, "votes", r.URL.Query().Get("sort_by"))
		assert.Equal(t, "asc", r.URL.Query().Get("order"))
		io.WriteString(w, `{"articles":[{"article_id":5,"topic":"cats","comment_count":2}]}`)
	})

	articles, err := c.Articles(context.Background(), ArticlesQuery{Topic: "cats", SortBy: "votes", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, 5, articles[0].ArticleID)
	assert.Equal(t, 2, articles[0].CommentCount)
}

func TestPostComment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/articles/2/comments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"username":"lurker","body":"hi"}`, string(b))

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"comment":{"comment_id":19,"body":"hi","votes":0,"author":"lurker","article_id":2}}`)
	})

	cm, err := c.PostComment(context.Background(), 2, "lurker", "hi")
	require.NoError(t, err)
	assert.Equal(t, 19, cm.CommentID)
	assert.Equal(t, "lurker", cm.Author)
}

func TestDeleteComment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/comments/1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteComment(context.Background(), 1))
}

func TestErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Topics(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, apiErr.Message)
}
