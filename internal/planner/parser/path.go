package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"building-control/internal/planner/models"
)

// ============================================================
// Path Parser
// ============================================================

var pathCommandRe = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// Subpath: одна цепочка SVG path от M до следующего M или Z.
type Subpath struct {
	Points []models.Coordinate
	Closed bool
}

// ParsePath парсит SVG path в список подпутей. Каждая команда M/m после
// первой начинает новую цепочку, Z замыкает только текущую. Точка
// замыкания в список не добавляется.
func ParsePath(d string) ([]Subpath, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	// Простой парсер команд M, m, L, l, H, h, V, v, Z
	matches := pathCommandRe.FindAllStringSubmatch(d, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no path commands in %q", d)
	}

	var paths []Subpath
	open := -1
	var currentX, currentY, startX, startY float64

	moveTo := func(x, y float64) {
		paths = append(paths, Subpath{Points: []models.Coordinate{{X: x, Y: y}}})
		open = len(paths) - 1
		startX, startY = x, y
		currentX, currentY = x, y
	}
	lineTo := func(x, y float64) {
		// после Z рисование продолжается из начала замкнутой цепочки
		if open < 0 {
			if len(paths) == 0 {
				moveTo(x, y)
				return
			}
			moveTo(currentX, currentY)
		}
		paths[open].Points = append(paths[open].Points, models.Coordinate{X: x, Y: y})
		currentX, currentY = x, y
	}

	for _, match := range matches {
		cmd := match[1]
		coords, err := parseCoords(match[2])
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", cmd, err)
		}

		switch cmd {
		case "M", "m": // MoveTo, следующие пары трактуются как LineTo
			for i := 0; i+1 < len(coords); i += 2 {
				x, y := coords[i], coords[i+1]
				if cmd == "m" {
					x += currentX
					y += currentY
				}
				if i == 0 {
					moveTo(x, y)
				} else {
					lineTo(x, y)
				}
			}

		case "L":
			for i := 0; i+1 < len(coords); i += 2 {
				lineTo(coords[i], coords[i+1])
			}

		case "l":
			for i := 0; i+1 < len(coords); i += 2 {
				lineTo(currentX+coords[i], currentY+coords[i+1])
			}

		case "H":
			for _, x := range coords {
				lineTo(x, currentY)
			}

		case "h":
			for _, dx := range coords {
				lineTo(currentX+dx, currentY)
			}

		case "V":
			for _, y := range coords {
				lineTo(currentX, y)
			}

		case "v":
			for _, dy := range coords {
				lineTo(currentX, currentY+dy)
			}

		case "Z", "z":
			if open >= 0 {
				paths[open].Closed = true
				currentX, currentY = startX, startY
				open = -1
			}
		}
	}

	return paths, nil
}

// parsePoints разбирает атрибут points у polyline/polygon.
func parsePoints(s string) ([]models.Coordinate, error) {
	coords, err := parseCoords(s)
	if err != nil {
		return nil, err
	}
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("odd number of values in points %q", s)
	}
	points := make([]models.Coordinate, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		points = append(points, models.Coordinate{X: coords[i], Y: coords[i+1]})
	}
	return points, nil
}

func parseCoords(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	// Разделитель: запятая или пробел
	s = strings.ReplaceAll(s, ",", " ")
	parts := strings.Fields(s)

	coords := make([]float64, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		coords = append(coords, val)
	}

	return coords, nil
}
