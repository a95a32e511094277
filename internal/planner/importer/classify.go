package importer

import (
	"building-control/internal/planner/models"
	"building-control/internal/planner/parser"
)

// ============================================================
// Classifier
// ============================================================

// Classifier определяет тип элемента по форме сущности. Отрезок считается
// внешней стеной, замкнутая цепочка комнатой, открытая внутренней стеной.
type Classifier struct {
	ClosureEpsilon float64
	counters       map[models.ElementKind]int
}

func NewClassifier(closureEpsilon float64) *Classifier {
	return &Classifier{
		ClosureEpsilon: closureEpsilon,
		counters:       make(map[models.ElementKind]int),
	}
}

// Kind классифицирует уже нормализованную цепочку без побочных эффектов.
func (c *Classifier) Kind(points []models.Coordinate, closedFlag bool) models.ElementKind {
	if len(points) <= 2 {
		return models.KindOuterWall
	}
	if c.IsClosed(points, closedFlag) {
		return models.KindRoom
	}
	return models.KindInnerWall
}

// IsClosed: явный флаг или совпадение концов в пределах допуска.
// Цепочка из двух точек замкнутой не бывает.
func (c *Classifier) IsClosed(points []models.Coordinate, closedFlag bool) bool {
	n := len(points)
	if n <= 2 {
		return false
	}
	return closedFlag || points[0].Distance(points[n-1]) <= c.ClosureEpsilon
}

// Classify строит элемент из нормализованной сущности. Имена нумеруются
// последовательно в пределах типа.
func (c *Classifier) Classify(entity parser.RawEntity) models.Element {
	kind := c.Kind(entity.Points, entity.Closed)

	e := models.Element{
		ID:          newID(),
		Kind:        kind,
		Coordinates: append([]models.Coordinate(nil), entity.Points...),
	}
	e.CloseRing()
	e.ApplyDefaultStyle()

	c.counters[kind]++
	e.Name = models.DisplayName(kind, c.counters[kind])
	if entity.ID != "" {
		e.Properties = map[string]any{"sourceId": entity.ID}
	}
	return e
}
