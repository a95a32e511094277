package render

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"building-control/internal/planner/models"
)

// ============================================================
// Renderer
// ============================================================

const (
	defaultPixelsPerUnit = 100.0
	defaultMargin        = 20.0
	productRadius        = 6.0
)

type Renderer struct {
	PixelsPerUnit float64
	Margin        float64
}

func NewRenderer() *Renderer {
	return &Renderer{
		PixelsPerUnit: defaultPixelsPerUnit,
		Margin:        defaultMargin,
	}
}

// Render собирает SVG этажа. Порядок слоев: помещения, стены и проемы,
// товары поверх всего.
func (r *Renderer) Render(floor *models.FloorPlan) (string, error) {
	if floor == nil {
		return "", fmt.Errorf("floor is nil")
	}

	minX, minY, width, height := r.floorSize(floor)
	project := func(c models.Coordinate) models.Coordinate {
		return models.Coordinate{
			X: (c.X-minX)*r.PixelsPerUnit + r.Margin,
			// ось Y чертежа направлена вверх
			Y: height - ((c.Y-minY)*r.PixelsPerUnit + r.Margin),
		}
	}

	var elements []string
	elements = append(elements, r.renderRings(floor, project)...)
	elements = append(elements, r.renderPaths(floor, project)...)
	elements = append(elements, r.renderProducts(floor, project)...)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")
	if floor.Level != "" {
		builder.WriteString("  <title>" + html.EscapeString(floor.Level) + "</title>\n")
	}

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Sizing
// ============================================================

func (r *Renderer) floorSize(floor *models.FloorPlan) (float64, float64, float64, float64) {
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64

	for _, e := range floor.Elements {
		for _, c := range e.Coordinates {
			minX = math.Min(minX, c.X)
			maxX = math.Max(maxX, c.X)
			minY = math.Min(minY, c.Y)
			maxY = math.Max(maxY, c.Y)
		}
	}

	if minX == math.MaxFloat64 || minY == math.MaxFloat64 {
		return 0, 0, 1000, 1000
	}

	width := (maxX-minX)*r.PixelsPerUnit + 2*r.Margin
	height := (maxY-minY)*r.PixelsPerUnit + 2*r.Margin
	return minX, minY, width, height
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderRings(floor *models.FloorPlan, project func(models.Coordinate) models.Coordinate) []string {
	var out []string

	for _, e := range floor.Elements {
		if !e.Kind.IsRing() || len(e.Coordinates) < 3 {
			continue
		}

		points := e.Coordinates
		if points[0] == points[len(points)-1] {
			points = points[:len(points)-1]
		}

		var path strings.Builder
		path.WriteString(`<path id="`)
		path.WriteString(html.EscapeString(e.ID))
		path.WriteString(`" d="M `)
		path.WriteString(formatPoint(project(points[0])))
		for _, p := range points[1:] {
			path.WriteString(" L ")
			path.WriteString(formatPoint(project(p)))
		}
		path.WriteString(fmt.Sprintf(` Z" fill="%s" stroke="#999" />`, html.EscapeString(colorOf(e))))

		out = append(out, path.String())
	}

	return out
}

func (r *Renderer) renderPaths(floor *models.FloorPlan, project func(models.Coordinate) models.Coordinate) []string {
	var out []string

	for _, e := range floor.Elements {
		if !e.Kind.IsPath() || len(e.Coordinates) < 2 {
			continue
		}

		points := make([]string, 0, len(e.Coordinates))
		for _, c := range e.Coordinates {
			p := project(c)
			points = append(points, formatFloat(p.X)+","+formatFloat(p.Y))
		}

		dash := ""
		if e.Kind == models.KindInnerWall {
			dash = ` stroke-dasharray="5 5"`
		}

		out = append(out, fmt.Sprintf(`<polyline id="%s" points="%s" fill="none" stroke="%s" stroke-width="%s"%s />`,
			html.EscapeString(e.ID), strings.Join(points, " "), html.EscapeString(colorOf(e)), formatFloat(thicknessOf(e)), dash))
	}

	return out
}

func (r *Renderer) renderProducts(floor *models.FloorPlan, project func(models.Coordinate) models.Coordinate) []string {
	var out []string

	for _, e := range floor.Elements {
		if !e.Kind.IsPoint() || len(e.Coordinates) != 1 {
			continue
		}
		p := project(e.Coordinates[0])
		out = append(out, fmt.Sprintf(`<circle id="%s" cx="%s" cy="%s" r="%s" fill="%s" />`,
			html.EscapeString(e.ID), formatFloat(p.X), formatFloat(p.Y), formatFloat(productRadius), html.EscapeString(colorOf(e))))
	}

	return out
}

// ============================================================
// Formatting helpers
// ============================================================

func colorOf(e models.Element) string {
	if e.Color != "" {
		return e.Color
	}
	return models.StyleOf(e.Kind).Color
}

func thicknessOf(e models.Element) float64 {
	if e.Thickness != nil && *e.Thickness > 0 {
		return *e.Thickness
	}
	if t := models.StyleOf(e.Kind).Thickness; t > 0 {
		return t
	}
	return 1
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(math.Round(val*1000)/1000, 'f', -1, 64)
}

func formatPoint(p models.Coordinate) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
