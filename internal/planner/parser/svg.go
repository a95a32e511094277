package parser

import (
	"encoding/xml"
	"fmt"
	"io"

	"building-control/internal/planner/models"
)

// ============================================================
// XML Structures
// ============================================================

type SVG struct {
	XMLName xml.Name `xml:"svg"`
	Shapes
}

// Shapes: фигуры одного уровня вложенности (корень или <g>).
type Shapes struct {
	Rects     []Rect     `xml:"rect"`
	Lines     []Line     `xml:"line"`
	Polylines []Polyline `xml:"polyline"`
	Polygons  []Polyline `xml:"polygon"`
	Paths     []Path     `xml:"path"`
	Groups    []Shapes   `xml:"g"`
}

type Rect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type Line struct {
	ID string  `xml:"id,attr"`
	X1 float64 `xml:"x1,attr"`
	Y1 float64 `xml:"y1,attr"`
	X2 float64 `xml:"x2,attr"`
	Y2 float64 `xml:"y2,attr"`
}

type Polyline struct {
	ID     string `xml:"id,attr"`
	Points string `xml:"points,attr"`
}

type Path struct {
	ID string `xml:"id,attr"`
	D  string `xml:"d,attr"`
}

// ============================================================
// Parser
// ============================================================

// ParseSVG переводит фигуры SVG в сущности импорта: line → LINE,
// polyline/path → LWPOLYLINE, polygon/rect → замкнутая LWPOLYLINE.
// Вложенные группы <g> обходятся рекурсивно.
func ParseSVG(r io.Reader) ([]RawEntity, error) {
	var svg SVG
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&svg); err != nil {
		return nil, err
	}

	var entities []RawEntity
	if err := collectSVG(&svg.Shapes, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func collectSVG(svg *Shapes, out *[]RawEntity) error {
	// Parse rects
	for _, rect := range svg.Rects {
		*out = append(*out, RawEntity{
			ID:   rect.ID,
			Type: EntityLWPolyline,
			Points: []models.Coordinate{
				{X: rect.X, Y: rect.Y},
				{X: rect.X + rect.Width, Y: rect.Y},
				{X: rect.X + rect.Width, Y: rect.Y + rect.Height},
				{X: rect.X, Y: rect.Y + rect.Height},
			},
			Closed: true,
		})
	}

	for _, line := range svg.Lines {
		*out = append(*out, RawEntity{
			ID:   line.ID,
			Type: EntityLine,
			Points: []models.Coordinate{
				{X: line.X1, Y: line.Y1},
				{X: line.X2, Y: line.Y2},
			},
		})
	}

	for _, pl := range svg.Polylines {
		points, err := parsePoints(pl.Points)
		if err != nil {
			return fmt.Errorf("polyline %q: %w", pl.ID, err)
		}
		*out = append(*out, RawEntity{ID: pl.ID, Type: EntityLWPolyline, Points: points})
	}

	for _, pg := range svg.Polygons {
		points, err := parsePoints(pg.Points)
		if err != nil {
			return fmt.Errorf("polygon %q: %w", pg.ID, err)
		}
		*out = append(*out, RawEntity{ID: pg.ID, Type: EntityLWPolyline, Points: points, Closed: true})
	}

	// Parse paths
	for _, path := range svg.Paths {
		subpaths, err := ParsePath(path.D)
		if err != nil {
			return fmt.Errorf("path %q: %w", path.ID, err)
		}
		for i, sp := range subpaths {
			*out = append(*out, RawEntity{ID: subpathID(path.ID, i), Type: EntityLWPolyline, Points: sp.Points, Closed: sp.Closed})
		}
	}

	for i := range svg.Groups {
		if err := collectSVG(&svg.Groups[i], out); err != nil {
			return err
		}
	}
	return nil
}

// subpathID: первая цепочка сохраняет id элемента path, следующие
// получают суффикс #2, #3...
func subpathID(id string, i int) string {
	if id == "" || i == 0 {
		return id
	}
	return fmt.Sprintf("%s#%d", id, i+1)
}
