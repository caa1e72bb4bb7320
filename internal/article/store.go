package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SergeyParamoshkin/newsapi/internal/apperr"
	"github.com/SergeyParamoshkin/newsapi/internal/database"
	"github.com/SergeyParamoshkin/newsapi/internal/model"
	"github.com/jackc/pgx/v5"
)

// ListQuery narrows and orders the article list. SortBy and Order must come
// from SortColumns and Orders, they are interpolated into the statement.
type ListQuery struct {
	Topic  string
	SortBy string
	Order  string
}

// SortColumns maps the public sort_by names to SQL expressions.
var SortColumns = map[string]string{
	"article_id":      "a.article_id",
	"author":          "a.author",
	"title":           "a.title",
	"topic":           "a.topic",
	"created_at":      "a.created_at",
	"votes":           "a.votes",
	"article_img_url": "a.article_img_url",
	"comment_count":   "comment_count",
}

var Orders = map[string]string{
	"asc":  "ASC",
	"desc": "DESC",
}

func DefaultListQuery() ListQuery {
	return ListQuery{SortBy: "created_at", Order: "desc"}
}

type Store interface {
	GetArticle(ctx context.Context, id int) (*model.Article, error)
	ListArticles(ctx context.Context, q ListQuery) ([]model.Article, error)
	UpdateVotes(ctx context.Context, id, inc int) (*model.Article, error)
}

type PgStore struct {
	db database.Querier
}

func NewPgStore(db database.Querier) *PgStore {
	return &PgStore{db: db}
}

const commentCount = `(SELECT COUNT(*) FROM comments c WHERE c.article_id = a.article_id)::INT AS comment_count`

func (s *PgStore) GetArticle(ctx context.Context, id int) (*model.Article, error) {
	rows, err := s.db.Query(ctx, `
		SELECT a.article_id, a.author, a.title, a.body, a.topic, a.created_at, a.votes,
			a.article_img_url, `+commentCount+`
		FROM articles a
		WHERE a.article_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}

	article, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Article])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("scan article %d: %w", id, err)
	}

	return article, nil
}

// ListArticles returns articles without their body. Filtering on a topic that
// does not exist is a not found, a topic without articles is an empty list.
func (s *PgStore) ListArticles(ctx context.Context, q ListQuery) ([]model.Article, error) {
	column, ok := SortColumns[q.SortBy]
	if !ok {
		return nil, apperr.BadRequest()
	}
	order, ok := Orders[strings.ToLower(q.Order)]
	if !ok {
		return nil, apperr.BadRequest()
	}

	var (
		where string
		args  []any
	)
	if q.Topic != "" {
		where = "WHERE a.topic = $1"
		args = append(args, q.Topic)
	}

	sql := fmt.Sprintf(`
		SELECT a.article_id, a.author, a.title, a.topic, a.created_at, a.votes,
			a.article_img_url, %s
		FROM articles a
		%s
		ORDER BY %s %s, a.article_id %s`, commentCount, where, column, order, order)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	articles, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[model.Article])
	if err != nil {
		return nil, fmt.Errorf("scan articles: %w", err)
	}

	if len(articles) == 0 && q.Topic != "" {
		var exists bool
		err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM topics WHERE slug = $1)`, q.Topic).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("check topic %q: %w", q.Topic, err)
		}
		if !exists {
			return nil, apperr.NotFound()
		}
	}

	return articles, nil
}

// UpdateVotes adds inc, which may be negative, to the article's votes and
// returns the updated row.
func (s *PgStore) UpdateVotes(ctx context.Context, id, inc int) (*model.Article, error) {
	rows, err := s.db.Query(ctx, `
		UPDATE articles a SET votes = a.votes + $1
		WHERE a.article_id = $2
		RETURNING a.article_id, a.author, a.title, a.body, a.topic, a.created_at, a.votes,
			a.article_img_url, `+commentCount, inc, id)
	if err != nil {
		return nil, fmt.Errorf("update votes on article %d: %w", id, err)
	}

	article, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Article])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("update votes on article %d: %w", id, err)
	}

	return article, nil
}
