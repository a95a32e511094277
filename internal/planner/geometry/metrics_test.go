package geometry

import (
	"math"
	"testing"

	"building-control/internal/planner/models"

	"github.com/cheekybits/is"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func square(x, y, side float64) []models.Coordinate {
	return []models.Coordinate{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
		{X: x, Y: y},
	}
}

func TestRingAreaUnitSquare(t *testing.T) {
	is := is.New(t)

	room := models.Element{Kind: models.KindRoom, Coordinates: square(0, 0, 1)}
	m := Measure(room)
	is.Equal(m.Type, MeasureArea)
	is.True(near(m.Value, 1))
	is.Equal(m.String(), "1.00 m²")

	// замыкающая точка не обязательна
	is.True(near(RingArea(square(0, 0, 1)[:4]), 1))
}

func TestRingAreaOrientationAndRotation(t *testing.T) {
	is := is.New(t)

	ring := []models.Coordinate{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 1, Y: 5}}
	area := RingArea(ring)

	reversed := make([]models.Coordinate, len(ring))
	for i, c := range ring {
		reversed[len(ring)-1-i] = c
	}
	is.True(near(RingArea(reversed), area))

	sin, cos := math.Sincos(math.Pi / 7)
	rotated := make([]models.Coordinate, len(ring))
	for i, c := range ring {
		rotated[i] = models.Coordinate{X: c.X*cos - c.Y*sin + 3, Y: c.X*sin + c.Y*cos - 2}
	}
	is.True(math.Abs(RingArea(rotated)-area) < 1e-6)
}

func TestRingAreaDegenerate(t *testing.T) {
	is := is.New(t)

	is.Equal(RingArea(nil), 0.0)
	is.Equal(RingArea([]models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}}), 0.0)
}

func TestPathLength(t *testing.T) {
	is := is.New(t)

	wall := models.Element{
		Kind:        models.KindOuterWall,
		Coordinates: []models.Coordinate{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}},
	}
	m := Measure(wall)
	is.Equal(m.Type, MeasureLength)
	is.True(near(m.Value, 7))
	is.Equal(m.String(), "7.00 m")

	is.Equal(PathLength([]models.Coordinate{{X: 1, Y: 1}}), 0.0)
}

func TestMeasureProduct(t *testing.T) {
	is := is.New(t)

	m := Measure(models.Element{Kind: models.KindProduct, Coordinates: []models.Coordinate{{X: 1, Y: 1}}})
	is.Equal(m.Type, MeasurePoint)
	is.Equal(m.Value, 0.0)
	is.Equal(m.String(), "point")
}

func TestSummarize(t *testing.T) {
	is := is.New(t)

	floor := models.FloorPlan{
		Level: "1",
		Scale: 2,
		Elements: []models.Element{
			{Kind: models.KindRoom, Coordinates: square(0, 0, 2)},
			{Kind: models.KindShelf, Coordinates: square(0, 0, 1)},
			{Kind: models.KindOuterWall, Coordinates: []models.Coordinate{{X: 0, Y: 0}, {X: 4, Y: 0}}},
			{Kind: models.KindProduct, Coordinates: []models.Coordinate{{X: 1, Y: 1}}},
			{Kind: models.KindProduct, Coordinates: []models.Coordinate{{X: 2, Y: 1}}},
		},
	}

	s := Summarize(floor)
	is.Equal(s.Counts[models.KindRoom], 1)
	is.Equal(s.Products, 2)
	is.True(near(s.RoomArea, 4))
	is.True(near(s.ShelfArea, 1))
	is.True(near(s.WallLength, 4))
	is.True(near(s.SourceRoomArea, 1))
	is.True(near(s.SourceWallLength, 2))
}
