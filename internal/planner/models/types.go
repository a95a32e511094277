package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownKind     = errors.New("unknown element kind")
	ErrInvalidGeometry = errors.New("invalid element geometry")
)

// ============================================================
// Geometry primitives
// ============================================================

// Coordinate: точка в локальной плоской системе координат этажа.
// В JSON сериализуется как массив [x, y].
type Coordinate struct {
	X float64
	Y float64
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.X, c.Y})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate: expected 2 values, got %d", len(pair))
	}
	c.X, c.Y = pair[0], pair[1]
	return nil
}

func (c Coordinate) Finite() bool {
	return !math.IsNaN(c.X) && !math.IsNaN(c.Y) && !math.IsInf(c.X, 0) && !math.IsInf(c.Y, 0)
}

// Distance возвращает евклидово расстояние между точками.
func (c Coordinate) Distance(o Coordinate) float64 {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ============================================================
// Element kinds
// ============================================================

type ElementKind string

const (
	KindOuterWall ElementKind = "outer-wall"
	KindInnerWall ElementKind = "inner-wall"
	KindDoor      ElementKind = "door"
	KindWindow    ElementKind = "window"
	KindRoom      ElementKind = "room"
	KindFurniture ElementKind = "furniture"
	KindShelf     ElementKind = "shelf"
	KindProduct   ElementKind = "product"
)

// Kinds перечисляет все типы в порядке панели инструментов редактора.
var Kinds = []ElementKind{
	KindOuterWall,
	KindInnerWall,
	KindDoor,
	KindWindow,
	KindRoom,
	KindFurniture,
	KindShelf,
	KindProduct,
}

// ParseKind разбирает тип элемента. "raf": старое имя стеллажа.
func ParseKind(s string) (ElementKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "raf" {
		return KindShelf, nil
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k ElementKind) Valid() bool {
	_, ok := kindStyles[k]
	return ok
}

// IsPoint: элемент без протяженности (товар).
func (k ElementKind) IsPoint() bool {
	return k == KindProduct
}

// IsRing: замкнутый контур, у которого считается площадь.
func (k ElementKind) IsRing() bool {
	return k == KindRoom || k == KindFurniture || k == KindShelf
}

// IsPath: открытая ломаная, у которой считается длина.
func (k ElementKind) IsPath() bool {
	return k == KindOuterWall || k == KindInnerWall || k == KindDoor || k == KindWindow
}

// UnmarshalJSON принимает и старые имена типов.
func (k *ElementKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ============================================================
// Kind styles
// ============================================================

type KindStyle struct {
	Label     string
	Color     string
	Thickness float64 // 0: у типа нет толщины линии
}

var kindStyles = map[ElementKind]KindStyle{
	KindOuterWall: {Label: "Outer Wall", Color: "#333", Thickness: 5},
	KindInnerWall: {Label: "Inner Wall", Color: "#666", Thickness: 3},
	KindDoor:      {Label: "Door", Color: "#8B4513", Thickness: 3},
	KindWindow:    {Label: "Window", Color: "#87CEEB", Thickness: 2},
	KindRoom:      {Label: "Room", Color: "rgba(200, 200, 200, 0.2)"},
	KindFurniture: {Label: "Furniture", Color: "rgba(139, 69, 19, 0.3)"},
	KindShelf:     {Label: "Shelf", Color: "rgba(70, 130, 180, 0.3)"},
	KindProduct:   {Label: "Product", Color: "#FF6347"},
}

func StyleOf(k ElementKind) KindStyle {
	return kindStyles[k]
}

// DisplayName генерирует имя вида "Room 3".
func DisplayName(k ElementKind, n int) string {
	label := StyleOf(k).Label
	if label == "" {
		label = string(k)
	}
	return fmt.Sprintf("%s %d", label, n)
}

// ============================================================
// Building elements
// ============================================================

type Element struct {
	ID          string         `json:"id"`
	Kind        ElementKind    `json:"type"`
	Coordinates []Coordinate   `json:"coordinates"`
	Name        string         `json:"name,omitempty"`
	Color       string         `json:"color,omitempty"`
	Thickness   *float64       `json:"thickness,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// ApplyDefaultStyle заполняет пустые цвет и толщину значениями типа.
func (e *Element) ApplyDefaultStyle() {
	style := StyleOf(e.Kind)
	if e.Color == "" {
		e.Color = style.Color
	}
	if e.Thickness == nil && style.Thickness > 0 {
		t := style.Thickness
		e.Thickness = &t
	}
}

// CloseRing замыкает контур, если первая и последняя точки различаются.
func (e *Element) CloseRing() {
	n := len(e.Coordinates)
	if !e.Kind.IsRing() || n == 0 {
		return
	}
	if e.Coordinates[0] != e.Coordinates[n-1] {
		e.Coordinates = append(e.Coordinates, e.Coordinates[0])
	}
}

// Validate проверяет инварианты геометрии для типа элемента.
func (e Element) Validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
	for i, c := range e.Coordinates {
		if !c.Finite() {
			return fmt.Errorf("%w: coordinate %d is not finite", ErrInvalidGeometry, i)
		}
	}

	n := len(e.Coordinates)
	switch {
	case e.Kind.IsPoint():
		if n != 1 {
			return fmt.Errorf("%w: %s needs exactly 1 coordinate, got %d", ErrInvalidGeometry, e.Kind, n)
		}
	case e.Kind.IsRing():
		distinct := n
		if n > 1 && e.Coordinates[0] == e.Coordinates[n-1] {
			distinct--
		}
		if distinct < 3 {
			return fmt.Errorf("%w: %s needs at least 3 vertices, got %d", ErrInvalidGeometry, e.Kind, distinct)
		}
	case e.Kind.IsPath():
		if n < 2 {
			return fmt.Errorf("%w: %s needs at least 2 coordinates, got %d", ErrInvalidGeometry, e.Kind, n)
		}
	}
	return nil
}

func (e Element) Clone() Element {
	out := e
	out.Coordinates = append([]Coordinate(nil), e.Coordinates...)
	if e.Thickness != nil {
		t := *e.Thickness
		out.Thickness = &t
	}
	out.Properties = cloneMap(e.Properties)
	return out
}

// ============================================================
// Floors & buildings
// ============================================================

type FloorPlan struct {
	Level    string    `json:"level"`
	Scale    float64   `json:"scale"`
	Elements []Element `json:"elements"`
}

func (f FloorPlan) Clone() FloorPlan {
	out := f
	if f.Elements != nil {
		out.Elements = make([]Element, len(f.Elements))
		for i, e := range f.Elements {
			out.Elements[i] = e.Clone()
		}
	}
	return out
}

type Building struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Lon     float64     `json:"lon"`
	Lat     float64     `json:"lat"`
	Address string      `json:"address"`
	Floors  []FloorPlan `json:"floors"`
}

func (b Building) Clone() Building {
	out := b
	if b.Floors != nil {
		out.Floors = make([]FloorPlan, len(b.Floors))
		for i, f := range b.Floors {
			out.Floors[i] = f.Clone()
		}
	}
	return out
}

// BuildingSummary: строка списка зданий.
type BuildingSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Floors    int    `json:"floors"`
	UpdatedAt string `json:"updated_at"`
}

// cloneMap копирует свойства вместе с вложенными объектами и массивами,
// как они приходят из JSON.
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = cloneValue(v)
	}
	return cp
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		if val == nil {
			return val
		}
		cp := make([]any, len(val))
		for i, item := range val {
			cp[i] = cloneValue(item)
		}
		return cp
	}
	return v
}
