package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"building-control/internal/planner/models"
)

var ErrNoEntities = errors.New("no ENTITIES section")

// ============================================================
// DXF group codes
// ============================================================

const (
	codeEntity = 0
	codeName   = 2
	codeHandle = 5
	codeX      = 10
	codeY      = 20
	codeEndX   = 11
	codeEndY   = 21
	codeFlags  = 70
)

const flagClosed = 1

type groupPair struct {
	code  int
	value string
}

// ============================================================
// Parser
// ============================================================

// ParseDXF читает ASCII DXF и возвращает сущности секции ENTITIES.
// Поддерживаются LINE, LWPOLYLINE и POLYLINE/VERTEX/SEQEND; прочие
// сущности возвращаются без координат.
func ParseDXF(r io.Reader) ([]RawEntity, error) {
	pairs, err := readPairs(r)
	if err != nil {
		return nil, err
	}

	start, end, ok := entitiesSection(pairs)
	if !ok {
		return nil, ErrNoEntities
	}

	var entities []RawEntity
	var current *RawEntity
	var polyline *RawEntity
	var vertex *models.Coordinate
	var pendingX float64
	var haveX bool

	flushVertex := func() {
		if vertex != nil && polyline != nil {
			polyline.Points = append(polyline.Points, *vertex)
		}
		vertex = nil
	}
	flush := func() {
		if current != nil {
			entities = append(entities, *current)
		}
		current = nil
		haveX = false
	}

	for _, p := range pairs[start:end] {
		if p.code == codeEntity {
			flushVertex()
			switch p.value {
			case "VERTEX":
				if polyline != nil {
					vertex = &models.Coordinate{}
					continue
				}
			case "SEQEND":
				if polyline != nil {
					entities = append(entities, *polyline)
					polyline = nil
					continue
				}
			}
			flush()
			if polyline != nil {
				// POLYLINE без SEQEND
				entities = append(entities, *polyline)
				polyline = nil
			}
			if p.value == EntityPolyline {
				polyline = &RawEntity{Type: EntityPolyline}
				continue
			}
			current = &RawEntity{Type: p.value}
			continue
		}

		if vertex != nil {
			switch p.code {
			case codeX:
				x, err := parseFloat(p)
				if err != nil {
					return nil, err
				}
				vertex.X = x
			case codeY:
				y, err := parseFloat(p)
				if err != nil {
					return nil, err
				}
				vertex.Y = y
			}
			continue
		}

		target := current
		if target == nil {
			target = polyline
		}
		if target == nil {
			continue
		}

		switch p.code {
		case codeHandle:
			target.ID = p.value
		case codeFlags:
			flags, err := strconv.Atoi(p.value)
			if err != nil {
				return nil, fmt.Errorf("group %d: %w", p.code, err)
			}
			target.Closed = flags&flagClosed != 0
		case codeX, codeEndX:
			if target.Type == EntityPolyline {
				continue // точка вставки POLYLINE, вершины идут в VERTEX
			}
			x, err := parseFloat(p)
			if err != nil {
				return nil, err
			}
			pendingX, haveX = x, true
		case codeY, codeEndY:
			if target.Type == EntityPolyline {
				continue
			}
			y, err := parseFloat(p)
			if err != nil {
				return nil, err
			}
			if haveX {
				target.Points = append(target.Points, models.Coordinate{X: pendingX, Y: y})
				haveX = false
			}
		}
	}

	flushVertex()
	flush()
	if polyline != nil {
		entities = append(entities, *polyline)
	}

	return entities, nil
}

func readPairs(r io.Reader) ([]groupPair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("line %d: group code %q without value", len(lines), lines[len(lines)-1])
	}

	pairs := make([]groupPair, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		code, err := strconv.Atoi(lines[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group code %q", i+1, lines[i])
		}
		pairs = append(pairs, groupPair{code: code, value: lines[i+1]})
	}
	return pairs, nil
}

func entitiesSection(pairs []groupPair) (int, int, bool) {
	for i := 0; i+1 < len(pairs); i++ {
		if pairs[i].code != codeEntity || pairs[i].value != "SECTION" {
			continue
		}
		if pairs[i+1].code != codeName || pairs[i+1].value != "ENTITIES" {
			continue
		}
		start := i + 2
		for j := start; j < len(pairs); j++ {
			if pairs[j].code == codeEntity && (pairs[j].value == "ENDSEC" || pairs[j].value == "EOF") {
				return start, j, true
			}
		}
		return start, len(pairs), true
	}
	return 0, 0, false
}

func parseFloat(p groupPair) (float64, error) {
	v, err := strconv.ParseFloat(p.value, 64)
	if err != nil {
		return 0, fmt.Errorf("group %d: invalid number %q", p.code, p.value)
	}
	return v, nil
}
