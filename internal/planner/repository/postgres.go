package repository

import (
	"context"
	"errors"
	"fmt"

	"building-control/internal/planner/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================================
// PostgreSQL Repository
// ============================================================

const postgresSchema = `
CREATE TABLE IF NOT EXISTS buildings (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    address     TEXT NOT NULL DEFAULT '',
    floors      INTEGER NOT NULL DEFAULT 0,
    document    JSONB NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type Postgres struct {
	pool *pgxpool.Pool
}

var _ Repository = (*Postgres)(nil)

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for postgres driver")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (r *Postgres) Init(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *Postgres) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Postgres) Save(ctx context.Context, b models.Building) error {
	doc, err := encodeBuilding(b)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO buildings (id, name, address, floors, document)
        VALUES ($1, $2, $3, $4, $5::jsonb)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            address = EXCLUDED.address,
            floors = EXCLUDED.floors,
            document = EXCLUDED.document,
            updated_at = now()
    `, b.ID, b.Name, b.Address, len(b.Floors), string(doc))
	if err != nil {
		return fmt.Errorf("save building %s: %w", b.ID, err)
	}
	return nil
}

func (r *Postgres) Get(ctx context.Context, id string) (models.Building, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT document::text FROM buildings WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Building{}, ErrNotFound
		}
		return models.Building{}, err
	}
	return decodeBuilding(doc)
}

func (r *Postgres) List(ctx context.Context) ([]models.BuildingSummary, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, address, floors, to_char(updated_at AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
        FROM buildings
        ORDER BY name, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	out := []models.BuildingSummary{}
	for rows.Next() {
		var s models.BuildingSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Floors, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete building %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Postgres) Close() error {
	r.pool.Close()
	return nil
}
