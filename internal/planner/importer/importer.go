package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"building-control/internal/planner/geometry"
	"building-control/internal/planner/models"
	"building-control/internal/planner/parser"

	"github.com/google/uuid"
)

// ============================================================
// Errors
// ============================================================

// ParseError: файл не удалось разобрать на сущности.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse drawing: %v", e.Err)
	}
	return fmt.Sprintf("parse drawing %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyResultError: после фильтрации не осталось ни одного элемента.
type EmptyResultError struct {
	Source string
}

func (e *EmptyResultError) Error() string {
	if e.Source == "" {
		return "drawing contains no usable elements"
	}
	return fmt.Sprintf("drawing %s contains no usable elements", e.Source)
}

// ============================================================
// Formats
// ============================================================

type Format string

const (
	FormatDXF Format = "dxf"
	FormatSVG Format = "svg"
)

// DetectFormat определяет формат по расширению файла.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return ParseFormat(ext)
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatDXF:
		return FormatDXF, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported drawing format %q", s)
}

// ============================================================
// Import
// ============================================================

type Options struct {
	Format   Format
	Name     string // имя файла; из него строится подпись этажа
	Geometry geometry.Options
}

// Import читает чертеж целиком и строит этаж: габариты → масштаб →
// нормализация → классификация → отсев вырожденных элементов.
// Отмена возможна только через ctx.
func Import(ctx context.Context, r io.Reader, opts Options) (*models.FloorPlan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Source: opts.Name, Err: fmt.Errorf("read: %w", err)}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entities, err := parse(opts.Format, data)
	if err != nil {
		return nil, &ParseError{Source: opts.Name, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	floor := Build(entities, opts.Geometry)
	if len(floor.Elements) == 0 {
		return nil, &EmptyResultError{Source: opts.Name}
	}
	floor.Level = levelLabel(opts.Name)

	log.Printf("[IMPORT] %s: %d entities → %d elements (scale %.4f)", opts.Name, len(entities), len(floor.Elements), floor.Scale)
	return &floor, nil
}

// Build превращает распознанные сущности в этаж. Нераспознанные типы
// пропускаются и в габаритах не участвуют.
func Build(entities []parser.RawEntity, opts geometry.Options) models.FloorPlan {
	opts = opts.WithDefaults()

	var recognized []parser.RawEntity
	var chains [][]models.Coordinate
	for _, e := range entities {
		if !e.Recognized() {
			continue
		}
		recognized = append(recognized, e)
		chains = append(chains, e.Points)
	}

	bbox, _ := geometry.Bounds(chains)
	transform := geometry.Fit(bbox, opts.TargetSize)
	classifier := NewClassifier(opts.ClosureEpsilon)

	floor := models.FloorPlan{
		Scale:    transform.Scale,
		Elements: []models.Element{},
	}

	for _, e := range recognized {
		if e.Type == parser.EntityLine && !allFinite(e.Points) {
			continue
		}

		points := transform.ApplyAll(e.Points)
		if len(points) < 2 {
			continue
		}
		if e.Type == parser.EntityLine {
			points = points[:2]
		}

		normalized := parser.RawEntity{ID: e.ID, Type: e.Type, Points: points, Closed: e.Closed}
		kind := classifier.Kind(points, e.Closed)
		if degenerate(kind, points, opts) {
			continue
		}

		floor.Elements = append(floor.Elements, classifier.Classify(normalized))
	}

	return floor
}

func degenerate(kind models.ElementKind, points []models.Coordinate, opts geometry.Options) bool {
	if kind.IsRing() {
		return geometry.RingArea(points) < opts.MinArea
	}
	return geometry.PathLength(points) < opts.MinLength
}

func parse(format Format, data []byte) ([]parser.RawEntity, error) {
	switch format {
	case FormatDXF:
		return parser.ParseDXF(bytes.NewReader(data))
	case FormatSVG:
		return parser.ParseSVG(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("unsupported drawing format %q", format)
}

func levelLabel(name string) string {
	base := filepath.Base(name)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if base == "" || base == "." {
		return "Import"
	}
	return "(" + base + ")"
}

func allFinite(points []models.Coordinate) bool {
	for _, p := range points {
		if !p.Finite() {
			return false
		}
	}
	return true
}

func newID() string {
	return uuid.NewString()
}
