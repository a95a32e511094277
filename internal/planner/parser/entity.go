package parser

import (
	"building-control/internal/planner/models"
)

// ============================================================
// Raw entities
// ============================================================

// Типы сущностей, которые понимает импорт. Остальные (CIRCLE, TEXT,
// INSERT, ...) сохраняются с исходным тегом и пропускаются дальше.
const (
	EntityLine       = "LINE"
	EntityLWPolyline = "LWPOLYLINE"
	EntityPolyline   = "POLYLINE"
)

// RawEntity: сущность чертежа в исходных (немасштабированных) координатах.
type RawEntity struct {
	ID     string
	Type   string
	Points []models.Coordinate
	Closed bool
}

// Recognized сообщает, участвует ли сущность в импорте.
func (e RawEntity) Recognized() bool {
	switch e.Type {
	case EntityLine, EntityLWPolyline, EntityPolyline:
		return true
	}
	return false
}
