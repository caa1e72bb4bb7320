package server

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SergeyParamoshkin/newsapi/internal/apperr"
	"github.com/SergeyParamoshkin/newsapi/internal/article"
	"github.com/SergeyParamoshkin/newsapi/internal/errresponse"
	"github.com/SergeyParamoshkin/newsapi/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
)

var errBoom = errors.New("boom")

// memStore implements every resource Store over slices. failWith, when set,
// is returned from every call.
type memStore struct {
	mu sync.Mutex

	topics   []model.Topic
	users    []model.User
	articles []model.Article
	comments []model.Comment

	failWith error
}

func newMemStore() *memStore {
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)

		return t
	}

	return &memStore{
		topics: []model.Topic{
			{Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Slug: "cats", Description: "Not dogs"},
			{Slug: "paper", Description: "what books are made of"},
		},
		users: []model.User{
			{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://example.com/jonny.jpg"},
			{Username: "lurker", Name: "do_nothing", AvatarURL: "https://example.com/lurker.png"},
		},
		articles: []model.Article{
			{ArticleID: 1, Author: "butter_bridge", Title: "Living in the shadow of a great man", Body: "I find this existence challenging", Topic: "mitch", CreatedAt: at("2020-07-09T20:11:00Z"), Votes: 100},
			{ArticleID: 2, Author: "lurker", Title: "Sony Vaio; or, The Laptop", Body: "Call me Mitchell.", Topic: "mitch", CreatedAt: at("2020-10-16T05:03:00Z")},
			{ArticleID: 3, Author: "lurker", Title: "UNCOVERED: catspiracy", Body: "Bastet walks amongst us", Topic: "cats", CreatedAt: at("2020-08-03T13:14:00Z")},
		},
		comments: []model.Comment{
			{CommentID: 1, Body: "Lobster pot", Author: "lurker", ArticleID: 1, CreatedAt: at("2020-05-15T20:19:00Z")},
			{CommentID: 2, Body: "Fruit pastilles", Author: "butter_bridge", ArticleID: 1, CreatedAt: at("2020-06-15T10:25:00Z")},
			{CommentID: 3, Body: "git push origin master", Author: "lurker", ArticleID: 3, CreatedAt: at("2020-06-20T07:24:00Z")},
		},
	}
}

func (s *memStore) ListTopics(ctx context.Context) ([]model.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	return append([]model.Topic(nil), s.topics...), nil
}

func (s *memStore) countComments(articleID int) int {
	n := 0
	for _, c := range s.comments {
		if c.ArticleID == articleID {
			n++
		}
	}

	return n
}

func (s *memStore) GetArticle(ctx context.Context, id int) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	for _, a := range s.articles {
		if a.ArticleID == id {
			a.CommentCount = s.countComments(id)

			return &a, nil
		}
	}

	return nil, apperr.NotFound()
}

func (s *memStore) ListArticles(ctx context.Context, q article.ListQuery) ([]model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	var out []model.Article
	for _, a := range s.articles {
		if q.Topic != "" && a.Topic != q.Topic {
			continue
		}
		a.CommentCount = s.countComments(a.ArticleID)
		out = append(out, a)
	}

	if len(out) == 0 && q.Topic != "" {
		found := false
		for _, t := range s.topics {
			found = found || t.Slug == q.Topic
		}
		if !found {
			return nil, apperr.NotFound()
		}
	}

	// The fake only knows the default ordering and votes.
	less := func(a, b model.Article) bool {
		if q.SortBy == "votes" {
			return a.Votes < b.Votes
		}

		return a.CreatedAt.Before(b.CreatedAt)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.Order == "desc" {
			return less(out[j], out[i])
		}

		return less(out[i], out[j])
	})

	return out, nil
}

func (s *memStore) UpdateVotes(ctx context.Context, id, inc int) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	for i := range s.articles {
		if s.articles[i].ArticleID == id {
			s.articles[i].Votes += inc
			a := s.articles[i]
			a.CommentCount = s.countComments(id)

			return &a, nil
		}
	}

	return nil, apperr.NotFound()
}

func (s *memStore) ListComments(ctx context.Context, articleID int) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	exists := false
	for _, a := range s.articles {
		exists = exists || a.ArticleID == articleID
	}
	if !exists {
		return nil, apperr.NotFound()
	}

	var out []model.Comment
	for _, c := range s.comments {
		if c.ArticleID == articleID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// AddComment reports unknown references the way PostgreSQL does, so the
// error translation is exercised end to end.
func (s *memStore) AddComment(ctx context.Context, articleID int, username, body string) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	articleOK, userOK := false, false
	for _, a := range s.articles {
		articleOK = articleOK || a.ArticleID == articleID
	}
	for _, u := range s.users {
		userOK = userOK || u.Username == username
	}
	if !articleOK || !userOK {
		return nil, &pgconn.PgError{Code: errresponse.PgForeignKeyViolation, TableName: "comments"}
	}

	c := model.Comment{
		CommentID: len(s.comments) + 1,
		Body:      body,
		Author:    username,
		ArticleID: articleID,
		CreatedAt: time.Now().UTC(),
	}
	s.comments = append(s.comments, c)

	return &c, nil
}

func (s *memStore) DeleteComment(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	for i, c := range s.comments {
		if c.CommentID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)

			return nil
		}
	}

	return apperr.NotFound()
}

func (s *memStore) ListUsers(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	return append([]model.User(nil), s.users...), nil
}

func (s *memStore) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}

	return nil, apperr.NotFound()
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error {
	return p.err
}
