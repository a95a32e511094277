package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"building-control/internal/planner/models"
)

// ============================================================
// Points export
// ============================================================

type PointExport struct {
	ID          string    `json:"id"`
	Coordinates []float64 `json:"coordinates"`
	Type        string    `json:"type"`
}

type PointsDocument struct {
	TotalPoints int           `json:"totalPoints"`
	Points      []PointExport `json:"points"`
	ExportDate  string        `json:"exportDate"`
}

// NewPointsDocument собирает документ выгрузки из результата анализа.
func NewPointsDocument(points []models.Element, now time.Time) PointsDocument {
	doc := PointsDocument{
		TotalPoints: len(points),
		Points:      make([]PointExport, 0, len(points)),
		ExportDate:  now.UTC().Format(time.RFC3339Nano),
	}
	for _, p := range points {
		var coords []float64
		if len(p.Coordinates) > 0 {
			coords = []float64{p.Coordinates[0].X, p.Coordinates[0].Y}
		}
		doc.Points = append(doc.Points, PointExport{
			ID:          p.ID,
			Coordinates: coords,
			Type:        "Point",
		})
	}
	return doc
}

// WritePoints пишет документ как JSON с отступами.
func WritePoints(w io.Writer, doc PointsDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode points: %w", err)
	}
	return nil
}

// PointsFilename: имя файла выгрузки с датой.
func PointsFilename(now time.Time) string {
	return fmt.Sprintf("points-export-%s.json", now.UTC().Format("2006-01-02"))
}
