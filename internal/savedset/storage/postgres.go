package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cuongbtq/jobboard/internal/savedset"
	"github.com/cuongbtq/jobboard/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

// Migrations creates and evolves the saved_sets table
var Migrations = []postgresql.Migration{
	{
		Version: 1,
		Name:    "create saved_sets",
		SQL: `
			CREATE TABLE IF NOT EXISTS saved_sets (
				name       TEXT PRIMARY KEY,
				ids        TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
}

// Postgres stores each saved set as one row of the saved_sets table
type Postgres struct {
	db  *sqlx.DB
	key string
}

// NewPostgres creates a repository for the set stored under key
func NewPostgres(db *sqlx.DB, key string) *Postgres {
	if key == "" {
		key = savedset.DefaultKey
	}
	return &Postgres{db: db, key: key}
}

// Load reads the stored set. A missing row is ErrNotFound.
func (p *Postgres) Load(ctx context.Context) ([]string, error) {
	var raw string
	query := `
		SELECT ids
		FROM saved_sets
		WHERE name = $1
	`

	err := p.db.GetContext(ctx, &raw, query, p.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, savedset.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get saved set: %w", err)
	}

	return savedset.Decode([]byte(raw))
}

// Save upserts the whole set
func (p *Postgres) Save(ctx context.Context, ids []string) error {
	data, err := savedset.Encode(ids)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO saved_sets (name, ids, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE
		SET ids = EXCLUDED.ids, updated_at = EXCLUDED.updated_at
	`

	if _, err := p.db.ExecContext(ctx, query, p.key, string(data)); err != nil {
		return fmt.Errorf("failed to upsert saved set: %w", err)
	}

	return nil
}
