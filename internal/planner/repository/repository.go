package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"building-control/internal/planner/models"
)

var ErrNotFound = errors.New("building not found")

// Repository хранит здания целиком как JSON-документы.
type Repository interface {
	Init(ctx context.Context) error
	Ping(ctx context.Context) error
	Save(ctx context.Context, b models.Building) error
	Get(ctx context.Context, id string) (models.Building, error)
	List(ctx context.Context) ([]models.BuildingSummary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open выбирает реализацию по имени драйвера.
func Open(ctx context.Context, driver, sqlitePath, postgresURL string) (Repository, error) {
	switch driver {
	case "", "sqlite":
		db, err := OpenSQLite(sqlitePath)
		if err != nil {
			return nil, err
		}
		return NewSQLite(db), nil
	case "postgres":
		return NewPostgres(ctx, postgresURL)
	}
	return nil, fmt.Errorf("unknown database driver %q", driver)
}

func encodeBuilding(b models.Building) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode building: %w", err)
	}
	return data, nil
}

func decodeBuilding(data []byte) (models.Building, error) {
	var b models.Building
	if err := json.Unmarshal(data, &b); err != nil {
		return models.Building{}, fmt.Errorf("decode building: %w", err)
	}
	return b, nil
}
