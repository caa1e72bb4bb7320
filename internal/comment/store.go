package comment

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/newsapi/internal/apperr"
	"github.com/SergeyParamoshkin/newsapi/internal/database"
	"github.com/SergeyParamoshkin/newsapi/internal/model"
	"github.com/jackc/pgx/v5"
)

type Store interface {
	ListComments(ctx context.Context, articleID int) ([]model.Comment, error)
	AddComment(ctx context.Context, articleID int, username, body string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

type PgStore struct {
	db database.Querier
}

func NewPgStore(db database.Querier) *PgStore {
	return &PgStore{db: db}
}

// ListComments returns the article's comments, newest first. An article with
// no comments yields an empty list; only a missing article is a not found.
func (s *PgStore) ListComments(ctx context.Context, articleID int) ([]model.Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT comment_id, body, votes, author, article_id, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, comment_id DESC`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments of article %d: %w", articleID, err)
	}

	comments, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Comment])
	if err != nil {
		return nil, fmt.Errorf("scan comments of article %d: %w", articleID, err)
	}

	if len(comments) == 0 {
		var exists bool
		err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE article_id = $1)`, articleID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("check article %d: %w", articleID, err)
		}
		if !exists {
			return nil, apperr.NotFound()
		}
	}

	return comments, nil
}

// AddComment inserts a comment with zero votes. An unknown article or author
// surfaces as a foreign key violation.
func (s *PgStore) AddComment(ctx context.Context, articleID int, username, body string) (*model.Comment, error) {
	rows, err := s.db.Query(ctx, `
		INSERT INTO comments (article_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING comment_id, body, votes, author, article_id, created_at`, articleID, username, body)
	if err != nil {
		return nil, fmt.Errorf("add comment to article %d: %w", articleID, err)
	}

	comment, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Comment])
	if err != nil {
		return nil, fmt.Errorf("add comment to article %d: %w", articleID, err)
	}

	return comment, nil
}

func (s *PgStore) DeleteComment(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound()
	}

	return nil
}
