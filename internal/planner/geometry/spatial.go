package geometry

import (
	"math"

	"building-control/internal/planner/models"
)

// boundaryEpsilon: допуск попадания точки на границу контура.
const boundaryEpsilon = 1e-9

// ============================================================
// Point in polygon
// ============================================================

// ContainsPoint проверяет попадание точки в контур. Точки на границе
// считаются внутри. Контур обходится циклически, замыкающая точка
// не обязательна. Для самопересекающихся контуров результат не определен.
func ContainsPoint(ring []models.Coordinate, p models.Coordinate) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[j], ring[i]
		if onSegment(a, b, p) {
			return true
		}
		if (b.Y > p.Y) != (a.Y > p.Y) {
			x := (a.X-b.X)*(p.Y-b.Y)/(a.Y-b.Y) + b.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b, p models.Coordinate) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > boundaryEpsilon {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-boundaryEpsilon &&
		p.X <= math.Max(a.X, b.X)+boundaryEpsilon &&
		p.Y >= math.Min(a.Y, b.Y)-boundaryEpsilon &&
		p.Y <= math.Max(a.Y, b.Y)+boundaryEpsilon
}

// PointsInPolygon возвращает точечные элементы, попавшие в контур,
// в порядке кандидатов. Каждый вызов пересчитывает все заново.
func PointsInPolygon(polygon models.Element, candidates []models.Element) []models.Element {
	if !polygon.Kind.IsRing() {
		return []models.Element{}
	}
	out := []models.Element{}
	for _, c := range candidates {
		if !c.Kind.IsPoint() || len(c.Coordinates) != 1 {
			continue
		}
		if ContainsPoint(polygon.Coordinates, c.Coordinates[0]) {
			out = append(out, c)
		}
	}
	return out
}

// ============================================================
// Floor analysis
// ============================================================

// LatestPolygon: последний добавленный контур этажа.
func LatestPolygon(floor models.FloorPlan) (models.Element, bool) {
	for i := len(floor.Elements) - 1; i >= 0; i-- {
		if floor.Elements[i].Kind.IsRing() {
			return floor.Elements[i], true
		}
	}
	return models.Element{}, false
}

// Points: все товары этажа в порядке добавления.
func Points(floor models.FloorPlan) []models.Element {
	var out []models.Element
	for _, e := range floor.Elements {
		if e.Kind.IsPoint() {
			out = append(out, e)
		}
	}
	return out
}

type Analysis struct {
	Polygon *models.Element  `json:"polygon,omitempty"`
	Points  []models.Element `json:"points"`
}

// AnalyzeFloor ищет товары внутри последнего нарисованного контура.
// Без контура или без товаров результат пустой.
func AnalyzeFloor(floor models.FloorPlan) Analysis {
	polygon, ok := LatestPolygon(floor)
	if !ok {
		return Analysis{Points: []models.Element{}}
	}
	return Analysis{
		Polygon: &polygon,
		Points:  PointsInPolygon(polygon, Points(floor)),
	}
}
