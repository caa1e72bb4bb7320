//go:build integration

package comment

import (
	"context"
	"log"
	"net/http"
	"os"
	"sort"
	"testing"

	"github.com/SergeyParamoshkin/newsapi/internal/errresponse"
	"github.com/SergeyParamoshkin/newsapi/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pg *testdb.Container

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	pg, err = testdb.Start(ctx)
	if err != nil {
		log.Fatal(err)
	}

	code := m.Run()

	if err := pg.Terminate(ctx); err != nil {
		log.Print(err)
	}
	os.Exit(code)
}

func TestPgListComments(t *testing.T) {
	pg.Reseed(t)
	s := NewPgStore(pg.DB.Pool)
	ctx := context.Background()

	comments, err := s.ListComments(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 11)
	assert.True(t, sort.SliceIsSorted(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	}))
	for _, c := range comments {
		assert.Equal(t, 1, c.ArticleID)
	}

	comments, err = s.ListComments(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, comments)

	_, err = s.ListComments(ctx, 9999)
	assert.Equal(t, http.StatusNotFound, errresponse.FromError(err).HTTPStatusCode)
}

func TestPgAddComment(t *testing.T) {
	pg.Reseed(t)
	s := NewPgStore(pg.DB.Pool)
	ctx := context.Background()

	c, err := s.AddComment(ctx, 2, "lurker", "first")
	require.NoError(t, err)
	assert.Equal(t, 19, c.CommentID)
	assert.Equal(t, "first", c.Body)
	assert.Equal(t, "lurker", c.Author)
	assert.Equal(t, 2, c.ArticleID)
	assert.Zero(t, c.Votes)
	assert.False(t, c.CreatedAt.IsZero())

	comments, err := s.ListComments(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestPgAddCommentForeignKeys(t *testing.T) {
	pg.Reseed(t)
	s := NewPgStore(pg.DB.Pool)
	ctx := context.Background()

	tests := []struct {
		name      string
		articleID int
		username  string
	}{
		{"unknown article", 9999, "lurker"},
		{"unknown user", 1, "nobody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddComment(ctx, tt.articleID, tt.username, "hi")
			require.Error(t, err)

			resp := errresponse.FromError(err)
			assert.Equal(t, http.StatusNotFound, resp.HTTPStatusCode)
			assert.Equal(t, "404: Not found", resp.Message)
		})
	}
}

func TestPgDeleteComment(t *testing.T) {
	pg.Reseed(t)
	s := NewPgStore(pg.DB.Pool)
	ctx := context.Background()

	require.NoError(t, s.DeleteComment(ctx, 1))

	err := s.DeleteComment(ctx, 1)
	assert.Equal(t, http.StatusNotFound, errresponse.FromError(err).HTTPStatusCode)

	comments, err := s.ListComments(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
