package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyParamoshkin/newsapi/internal/apperr"
	"github.com/SergeyParamoshkin/newsapi/internal/database"
	"github.com/SergeyParamoshkin/newsapi/internal/model"
	"github.com/jackc/pgx/v5"
)

type Store interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, username string) (*model.User, error)
}

type PgStore struct {
	db database.Querier
}

func NewPgStore(db database.Querier) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.Query(ctx, `SELECT username, name, avatar_url FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}

	return users, nil
}

func (s *PgStore) GetUser(ctx context.Context, username string) (*model.User, error) {
	rows, err := s.db.Query(ctx, `SELECT username, name, avatar_url FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}

	u, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("scan user %q: %w", username, err)
	}

	return u, nil
}
