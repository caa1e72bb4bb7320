//go:build integration

// Package testdb runs a throwaway PostgreSQL for integration tests.
package testdb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SergeyParamoshkin/newsapi/internal/config"
	"github.com/SergeyParamoshkin/newsapi/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type Container struct {
	pg *postgres.PostgresContainer
	DB *database.Database
}

// Start boots a container and connects a pool to it. Call Terminate when done.
func Start(ctx context.Context) (*Container, error) {
	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("news_test"),
		postgres.WithUsername("news"),
		postgres.WithPassword("news"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)

		return nil, fmt.Errorf("connection string: %w", err)
	}

	db, err := database.New(ctx, config.DatabaseConfig{URL: dsn, MaxConns: 4}, false, zap.NewNop())
	if err != nil {
		_ = pg.Terminate(ctx)

		return nil, err
	}

	return &Container{pg: pg, DB: db}, nil
}

func (c *Container) Terminate(ctx context.Context) error {
	c.DB.Close()

	return c.pg.Terminate(ctx)
}

// Reseed recreates the schema and loads the test fixture set.
func (c *Container) Reseed(t *testing.T) {
	t.Helper()

	data, err := database.LoadData("test")
	if err != nil {
		t.Fatalf("load fixture data: %v", err)
	}

	if err := database.Seed(context.Background(), c.DB, data); err != nil {
		t.Fatalf("seed database: %v", err)
	}
}
