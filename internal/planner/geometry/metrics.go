package geometry

import (
	"fmt"
	"math"

	"building-control/internal/planner/models"
)

// ============================================================
// Measurements
// ============================================================

type MeasureType string

const (
	MeasurePoint  MeasureType = "point"
	MeasureArea   MeasureType = "area"
	MeasureLength MeasureType = "length"
)

const (
	UnitArea   = "m²"
	UnitLength = "m"
)

type Measurement struct {
	Type  MeasureType `json:"type"`
	Value float64     `json:"value"`
	Unit  string      `json:"unit,omitempty"`
}

// String форматирует значение с точностью отображения (2 знака).
func (m Measurement) String() string {
	if m.Type == MeasurePoint {
		return string(MeasurePoint)
	}
	return fmt.Sprintf("%.2f %s", m.Value, m.Unit)
}

// Measure считает площадь контура или длину ломаной. Для товаров
// возвращает точку без протяженности. При нехватке вершин значение 0.
func Measure(e models.Element) Measurement {
	switch {
	case e.Kind.IsPoint():
		return Measurement{Type: MeasurePoint}
	case e.Kind.IsRing():
		return Measurement{Type: MeasureArea, Value: RingArea(e.Coordinates), Unit: UnitArea}
	default:
		return Measurement{Type: MeasureLength, Value: PathLength(e.Coordinates), Unit: UnitLength}
	}
}

// RingArea: формула шнурования, индексы по модулю n. Знак (направление
// обхода) отбрасывается.
func RingArea(ring []models.Coordinate) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return math.Abs(sum) / 2
}

// PathLength: сумма длин звеньев ломаной.
func PathLength(path []models.Coordinate) float64 {
	if len(path) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(path); i++ {
		total += path[i-1].Distance(path[i])
	}
	return total
}

// ============================================================
// Floor summary
// ============================================================

type FloorSummary struct {
	Level         string                     `json:"level"`
	Counts        map[models.ElementKind]int `json:"counts"`
	RoomArea      float64                    `json:"roomArea"`
	FurnitureArea float64                    `json:"furnitureArea"`
	ShelfArea     float64                    `json:"shelfArea"`
	WallLength    float64                    `json:"wallLength"`
	Products      int                        `json:"products"`

	// Source*: те же величины в единицах исходного чертежа.
	SourceRoomArea   float64 `json:"sourceRoomArea"`
	SourceWallLength float64 `json:"sourceWallLength"`
}

// Summarize собирает агрегаты по этажу.
func Summarize(floor models.FloorPlan) FloorSummary {
	s := FloorSummary{
		Level:  floor.Level,
		Counts: make(map[models.ElementKind]int),
	}

	for _, e := range floor.Elements {
		s.Counts[e.Kind]++
		m := Measure(e)
		switch e.Kind {
		case models.KindRoom:
			s.RoomArea += m.Value
		case models.KindFurniture:
			s.FurnitureArea += m.Value
		case models.KindShelf:
			s.ShelfArea += m.Value
		case models.KindOuterWall, models.KindInnerWall:
			s.WallLength += m.Value
		case models.KindProduct:
			s.Products++
		}
	}

	if floor.Scale > 0 {
		s.SourceRoomArea = s.RoomArea / (floor.Scale * floor.Scale)
		s.SourceWallLength = s.WallLength / floor.Scale
	}
	return s
}
