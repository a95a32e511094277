package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"building-control/internal/planner/models"

	"github.com/cheekybits/is"
)

func openTestSQLite(t *testing.T) Repository {
	t.Helper()

	repo, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "db", "planner.db"), "")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testBuilding(id, name string) models.Building {
	return models.Building{
		ID:      id,
		Name:    name,
		Address: "Main st. 1",
		Lon:     37.6,
		Lat:     55.7,
		Floors: []models.FloorPlan{{
			Level: "Ground",
			Scale: 0.5,
			Elements: []models.Element{{
				ID:          "e1",
				Kind:        models.KindProduct,
				Name:        "Product 1",
				Coordinates: []models.Coordinate{{X: 1.25, Y: 2}},
				Properties:  map[string]any{"sku": "A-1"},
			}},
		}},
	}
}

func exerciseRepository(t *testing.T, repo Repository) {
	is := is.New(t)
	ctx := context.Background()

	is.NoErr(repo.Init(ctx))
	is.NoErr(repo.Init(ctx))
	is.NoErr(repo.Ping(ctx))

	b := testBuilding("b-2", "Warehouse")
	is.NoErr(repo.Save(ctx, b))
	is.NoErr(repo.Save(ctx, testBuilding("b-1", "Atrium")))

	got, err := repo.Get(ctx, "b-2")
	is.NoErr(err)
	is.Equal(got.Name, "Warehouse")
	is.Equal(got.Lat, 55.7)
	is.Equal(len(got.Floors), 1)
	is.Equal(got.Floors[0].Scale, 0.5)
	is.Equal(got.Floors[0].Elements[0].Coordinates[0], models.Coordinate{X: 1.25, Y: 2})
	is.Equal(got.Floors[0].Elements[0].Properties["sku"], "A-1")

	b.Name = "Warehouse 2"
	b.Floors = append(b.Floors, models.FloorPlan{Level: "First", Scale: 1, Elements: []models.Element{}})
	is.NoErr(repo.Save(ctx, b))

	list, err := repo.List(ctx)
	is.NoErr(err)
	is.Equal(len(list), 2)
	is.Equal(list[0].Name, "Atrium")
	is.Equal(list[1].Name, "Warehouse 2")
	is.Equal(list[1].Floors, 2)
	is.True(list[1].UpdatedAt != "")

	is.NoErr(repo.Delete(ctx, "b-1"))
	is.True(errors.Is(repo.Delete(ctx, "b-1"), ErrNotFound))

	_, err = repo.Get(ctx, "b-1")
	is.True(errors.Is(err, ErrNotFound))
}

func TestSQLiteRepository(t *testing.T) {
	exerciseRepository(t, openTestSQLite(t))
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("PLANNER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PLANNER_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	repo, err := Open(ctx, "postgres", "", dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer repo.Close()

	is.New(t).NoErr(repo.Init(ctx))
	for _, id := range []string{"b-1", "b-2"} {
		_ = repo.Delete(ctx, id)
	}
	exerciseRepository(t, repo)
	_ = repo.Delete(ctx, "b-2")
}

func TestOpenUnknownDriver(t *testing.T) {
	is := is.New(t)

	_, err := Open(context.Background(), "mysql", "", "")
	is.NotNil(err)

	_, err = Open(context.Background(), "postgres", "", "")
	is.NotNil(err)
}
