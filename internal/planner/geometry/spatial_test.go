package geometry

import (
	"testing"

	"building-control/internal/planner/models"

	"github.com/cheekybits/is"
)

func product(id string, x, y float64) models.Element {
	return models.Element{ID: id, Kind: models.KindProduct, Coordinates: []models.Coordinate{{X: x, Y: y}}}
}

func TestContainsPoint(t *testing.T) {
	is := is.New(t)

	ring := square(0, 0, 4)
	is.True(ContainsPoint(ring, models.Coordinate{X: 2, Y: 2}))
	is.False(ContainsPoint(ring, models.Coordinate{X: 5, Y: 5}))
	is.False(ContainsPoint(ring, models.Coordinate{X: -0.5, Y: 2}))

	// граница и вершины считаются внутри
	is.True(ContainsPoint(ring, models.Coordinate{X: 0, Y: 2}))
	is.True(ContainsPoint(ring, models.Coordinate{X: 4, Y: 4}))
	is.True(ContainsPoint(ring[:4], models.Coordinate{X: 2, Y: 0}))

	is.False(ContainsPoint(ring[:2], models.Coordinate{X: 0, Y: 0}))
}

func TestContainsPointConcave(t *testing.T) {
	is := is.New(t)

	// L-образный контур
	ring := []models.Coordinate{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 4}, {X: 0, Y: 4},
	}
	is.True(ContainsPoint(ring, models.Coordinate{X: 0.5, Y: 3}))
	is.True(ContainsPoint(ring, models.Coordinate{X: 3, Y: 0.5}))
	is.False(ContainsPoint(ring, models.Coordinate{X: 3, Y: 3}))
}

func TestPointsInPolygon(t *testing.T) {
	is := is.New(t)

	polygon := models.Element{Kind: models.KindFurniture, Coordinates: square(0, 0, 4)}
	candidates := []models.Element{
		product("c", 3, 3),
		product("out", 5, 5),
		product("a", 1, 1),
		{ID: "wall", Kind: models.KindInnerWall, Coordinates: []models.Coordinate{{X: 1, Y: 1}, {X: 2, Y: 2}}},
	}

	inside := PointsInPolygon(polygon, candidates)
	is.Equal(len(inside), 2)
	is.Equal(inside[0].ID, "c")
	is.Equal(inside[1].ID, "a")

	wall := models.Element{Kind: models.KindOuterWall, Coordinates: square(0, 0, 4)}
	none := PointsInPolygon(wall, candidates)
	is.NotNil(none)
	is.Equal(len(none), 0)
}

func TestAnalyzeFloorUsesLatestPolygon(t *testing.T) {
	is := is.New(t)

	floor := models.FloorPlan{Elements: []models.Element{
		{ID: "big", Kind: models.KindRoom, Coordinates: square(0, 0, 10)},
		product("p1", 1, 1),
		product("p2", 8, 8),
		{ID: "small", Kind: models.KindShelf, Coordinates: square(7, 7, 2)},
		{ID: "wall", Kind: models.KindOuterWall, Coordinates: []models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}}},
	}}

	result := AnalyzeFloor(floor)
	is.NotNil(result.Polygon)
	is.Equal(result.Polygon.ID, "small")
	is.Equal(len(result.Points), 1)
	is.Equal(result.Points[0].ID, "p2")
}

func TestAnalyzeFloorWithoutPolygon(t *testing.T) {
	is := is.New(t)

	result := AnalyzeFloor(models.FloorPlan{Elements: []models.Element{product("p", 1, 1)}})
	is.Nil(result.Polygon)
	is.NotNil(result.Points)
	is.Equal(len(result.Points), 0)
}
