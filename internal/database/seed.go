package database

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"path"

	"github.com/SergeyParamoshkin/newsapi/internal/model"
	"github.com/jackc/pgx/v5"
)

//go:embed data
var dataFiles embed.FS

// Data is a full set of fixture rows. Article and comment ids are assigned
// by the database in insertion order, starting at 1.
type Data struct {
	Topics   []model.Topic
	Users    []model.User
	Articles []model.Article
	Comments []model.Comment
}

// LoadData reads the named embedded fixture set, e.g. "test".
func LoadData(name string) (*Data, error) {
	d := &Data{}

	files := []struct {
		file string
		dst  any
	}{
		{"topics.json", &d.Topics},
		{"users.json", &d.Users},
		{"articles.json", &d.Articles},
		{"comments.json", &d.Comments},
	}

	for _, f := range files {
		raw, err := dataFiles.ReadFile(path.Join("data", name, f.file))
		if err != nil {
			return nil, fmt.Errorf("read fixture %s/%s: %w", name, f.file, err)
		}

		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode fixture %s/%s: %w", name, f.file, err)
		}
	}

	return d, nil
}

// Seed migrates the schema, empties every table and restarts its ids, then
// bulk loads d. The reload runs in a single transaction so a failed seed
// leaves the previous data in place.
func Seed(ctx context.Context, db *Database, d *Data) error {
	if err := Migrate(ctx, db); err != nil {
		return err
	}

	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE`)
		if err != nil {
			return fmt.Errorf("truncate tables: %w", err)
		}

		_, err = tx.CopyFrom(ctx, pgx.Identifier{"topics"},
			[]string{"slug", "description"},
			pgx.CopyFromSlice(len(d.Topics), func(i int) ([]any, error) {
				t := d.Topics[i]

				return []any{t.Slug, t.Description}, nil
			}))
		if err != nil {
			return fmt.Errorf("copy topics: %w", err)
		}

		_, err = tx.CopyFrom(ctx, pgx.Identifier{"users"},
			[]string{"username", "name", "avatar_url"},
			pgx.CopyFromSlice(len(d.Users), func(i int) ([]any, error) {
				u := d.Users[i]

				return []any{u.Username, u.Name, u.AvatarURL}, nil
			}))
		if err != nil {
			return fmt.Errorf("copy users: %w", err)
		}

		// COPY does not guarantee serial order, plain inserts do.
		for _, a := range d.Articles {
			_, err := tx.Exec(ctx, `
				INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				a.Title, a.Topic, a.Author, a.Body, a.CreatedAt, a.Votes, a.ArticleImgURL)
			if err != nil {
				return fmt.Errorf("insert article %q: %w", a.Title, err)
			}
		}

		for _, c := range d.Comments {
			_, err := tx.Exec(ctx, `
				INSERT INTO comments (body, article_id, author, votes, created_at)
				VALUES ($1, $2, $3, $4, $5)`,
				c.Body, c.ArticleID, c.Author, c.Votes, c.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert comment on article %d: %w", c.ArticleID, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	db.log.Infow("database seeded",
		"topics", len(d.Topics),
		"users", len(d.Users),
		"articles", len(d.Articles),
		"comments", len(d.Comments),
	)

	return nil
}
