package store

import (
	"errors"
	"fmt"
	"strings"

	"building-control/internal/planner/models"

	"github.com/google/uuid"
)

var ErrInvalidProperty = errors.New("invalid floor property")

// IndexError: индекс этажа вне диапазона.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("floor index %d out of range [0, %d)", e.Index, e.Len)
}

// ============================================================
// Patches
// ============================================================

// ElementPatch: частичное обновление элемента. nil-поля не меняются.
type ElementPatch struct {
	Kind        *models.ElementKind `json:"type,omitempty"`
	Coordinates []models.Coordinate `json:"coordinates,omitempty"`
	Name        *string             `json:"name,omitempty"`
	Color       *string             `json:"color,omitempty"`
	Thickness   *float64            `json:"thickness,omitempty"`
	Properties  map[string]any      `json:"properties,omitempty"`
}

func (p ElementPatch) apply(e models.Element) models.Element {
	out := e.Clone()
	if p.Kind != nil && *p.Kind != e.Kind {
		out.Kind = *p.Kind
		// при смене типа стиль берется от нового типа
		if p.Color == nil {
			out.Color = ""
		}
		if p.Thickness == nil {
			out.Thickness = nil
		}
		out.ApplyDefaultStyle()
	}
	if p.Coordinates != nil {
		out.Coordinates = append([]models.Coordinate(nil), p.Coordinates...)
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.Thickness != nil {
		t := *p.Thickness
		out.Thickness = &t
	}
	if p.Properties != nil {
		out.Properties = p.Properties
	}
	out.CloseRing()
	return out.Clone()
}

// ============================================================
// Copy-on-write operations
// ============================================================
//
// Все операции возвращают новое здание; исходное не меняется ни при
// успехе, ни при ошибке.

func checkFloor(b models.Building, floorIndex int) error {
	if floorIndex < 0 || floorIndex >= len(b.Floors) {
		return &IndexError{Index: floorIndex, Len: len(b.Floors)}
	}
	return nil
}

// PrepareElement готовит нарисованный элемент к вставке: id, замыкание
// контура, стиль и имя по умолчанию, проверка геометрии.
func PrepareElement(floor models.FloorPlan, e models.Element) (models.Element, error) {
	out := e.Clone()
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	out.CloseRing()
	if err := out.Validate(); err != nil {
		return models.Element{}, err
	}
	out.ApplyDefaultStyle()
	if out.Name == "" {
		n := 1
		for _, existing := range floor.Elements {
			if existing.Kind == out.Kind {
				n++
			}
		}
		out.Name = models.DisplayName(out.Kind, n)
	}
	return out, nil
}

// AddElement добавляет элемент в конец этажа.
func AddElement(b models.Building, floorIndex int, e models.Element) (models.Building, models.Element, error) {
	if err := checkFloor(b, floorIndex); err != nil {
		return b, models.Element{}, err
	}
	prepared, err := PrepareElement(b.Floors[floorIndex], e)
	if err != nil {
		return b, models.Element{}, err
	}

	out := b.Clone()
	floor := &out.Floors[floorIndex]
	floor.Elements = append(floor.Elements, prepared)
	return out, prepared.Clone(), nil
}

// UpdateElement применяет patch к элементу с данным id. Если элемента
// на этаже нет, здание возвращается без изменений.
func UpdateElement(b models.Building, floorIndex int, id string, patch ElementPatch) (models.Building, error) {
	if err := checkFloor(b, floorIndex); err != nil {
		return b, err
	}
	idx := indexOf(b.Floors[floorIndex], id)
	if idx < 0 {
		return b, nil
	}

	updated := patch.apply(b.Floors[floorIndex].Elements[idx])
	if err := updated.Validate(); err != nil {
		return b, err
	}

	out := b.Clone()
	out.Floors[floorIndex].Elements[idx] = updated
	return out, nil
}

// RemoveElement удаляет элемент по id. Отсутствующий id: не ошибка.
func RemoveElement(b models.Building, floorIndex int, id string) (models.Building, error) {
	if err := checkFloor(b, floorIndex); err != nil {
		return b, err
	}
	idx := indexOf(b.Floors[floorIndex], id)
	if idx < 0 {
		return b, nil
	}

	out := b.Clone()
	elements := out.Floors[floorIndex].Elements
	out.Floors[floorIndex].Elements = append(elements[:idx:idx], elements[idx+1:]...)
	return out, nil
}

// ReplaceElements заменяет все элементы этажа.
func ReplaceElements(b models.Building, floorIndex int, elements []models.Element) (models.Building, error) {
	if err := checkFloor(b, floorIndex); err != nil {
		return b, err
	}

	next := models.FloorPlan{Elements: make([]models.Element, 0, len(elements))}
	for _, e := range elements {
		prepared, err := PrepareElement(next, e)
		if err != nil {
			return b, err
		}
		next.Elements = append(next.Elements, prepared)
	}

	out := b.Clone()
	out.Floors[floorIndex].Elements = next.Elements
	return out, nil
}

// ClearElements удаляет элементы указанных типов (все, если типы не заданы).
func ClearElements(b models.Building, floorIndex int, kinds ...models.ElementKind) (models.Building, error) {
	if err := checkFloor(b, floorIndex); err != nil {
		return b, err
	}

	out := b.Clone()
	kept := []models.Element{}
	for _, e := range out.Floors[floorIndex].Elements {
		if len(kinds) > 0 && !containsKind(kinds, e.Kind) {
			kept = append(kept, e)
		}
	}
	out.Floors[floorIndex].Elements = kept
	return out, nil
}

// AddFloor добавляет этаж в конец списка.
func AddFloor(b models.Building, floor models.FloorPlan) (models.Building, error) {
	if floor.Scale <= 0 {
		floor.Scale = 1
	}
	if strings.TrimSpace(floor.Level) == "" {
		floor.Level = fmt.Sprintf("Floor %d", len(b.Floors)+1)
	}

	next := models.FloorPlan{Level: floor.Level, Scale: floor.Scale, Elements: []models.Element{}}
	for _, e := range floor.Elements {
		prepared, err := PrepareElement(next, e)
		if err != nil {
			return b, err
		}
		next.Elements = append(next.Elements, prepared)
	}

	out := b.Clone()
	out.Floors = append(out.Floors, next)
	return out, nil
}

// RemoveFloor удаляет этаж; индексы следующих этажей сдвигаются.
func RemoveFloor(b models.Building, floorIndex int) (models.Building, error) {
	if err := checkFloor(b, floorIndex); err != nil {
		return b, err
	}
	out := b.Clone()
	out.Floors = append(out.Floors[:floorIndex:floorIndex], out.Floors[floorIndex+1:]...)
	return out, nil
}

// SetFloorProperty меняет подпись ("level") или масштаб ("scale") этажа.
func SetFloorProperty(b models.Building, floorIndex int, key string, value any) (models.Building, error) {
	if err := checkFloor(b, floorIndex); err != nil {
		return b, err
	}

	out := b.Clone()
	floor := &out.Floors[floorIndex]

	switch key {
	case "level":
		level, ok := value.(string)
		if !ok || strings.TrimSpace(level) == "" {
			return b, fmt.Errorf("%w: level must be a non-empty string", ErrInvalidProperty)
		}
		floor.Level = level
	case "scale":
		scale, ok := toFloat(value)
		if !ok || scale <= 0 {
			return b, fmt.Errorf("%w: scale must be a positive number", ErrInvalidProperty)
		}
		floor.Scale = scale
	default:
		return b, fmt.Errorf("%w: unknown key %q", ErrInvalidProperty, key)
	}
	return out, nil
}

// ============================================================
// Helpers
// ============================================================

func indexOf(floor models.FloorPlan, id string) int {
	if id == "" {
		return -1
	}
	for i, e := range floor.Elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func containsKind(kinds []models.ElementKind, k models.ElementKind) bool {
	for _, item := range kinds {
		if item == k {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
