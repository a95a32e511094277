package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"building-control/internal/planner/models"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ============================================================
// SQLite Repository
// ============================================================

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS buildings (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    address     TEXT NOT NULL DEFAULT '',
    floors      INTEGER NOT NULL DEFAULT 0,
    document    TEXT NOT NULL,
    created_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

type SQLite struct {
	db *sql.DB
}

var _ Repository = (*SQLite)(nil)

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Init создает схему.
func (r *SQLite) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *SQLite) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLite) Save(ctx context.Context, b models.Building) error {
	doc, err := encodeBuilding(b)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO buildings (id, name, address, floors, document)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            address = excluded.address,
            floors = excluded.floors,
            document = excluded.document,
            updated_at = CURRENT_TIMESTAMP
    `, b.ID, b.Name, b.Address, len(b.Floors), string(doc))
	if err != nil {
		return fmt.Errorf("save building %s: %w", b.ID, err)
	}
	return nil
}

func (r *SQLite) Get(ctx context.Context, id string) (models.Building, error) {
	row := r.db.QueryRowContext(ctx, `SELECT document FROM buildings WHERE id = ?`, id)

	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Building{}, ErrNotFound
		}
		return models.Building{}, err
	}
	return decodeBuilding([]byte(doc))
}

func (r *SQLite) List(ctx context.Context) ([]models.BuildingSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, address, floors, updated_at
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

func (r *SQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM buildings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete building %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLite) Close() error {
	return r.db.Close()
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
