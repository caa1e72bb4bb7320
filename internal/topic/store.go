package topic

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/newsapi/internal/database"
	"github.com/SergeyParamoshkin/newsapi/internal/model"
	"github.com/jackc/pgx/v5"
)

type Store interface {
	ListTopics(ctx context.Context) ([]model.Topic, error)
}

type PgStore struct {
	db database.Querier
}

func NewPgStore(db database.Querier) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := s.db.Query(ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	topics, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Topic])
	if err != nil {
		return nil, fmt.Errorf("scan topics: %w", err)
	}

	return topics, nil
}
