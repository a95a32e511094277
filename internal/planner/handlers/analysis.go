package handlers

import (
	"bytes"
	"log"

	"building-control/internal/planner/export"
	"building-control/internal/planner/geometry"
	"building-control/internal/planner/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Metrics & Analysis Handlers
// ============================================================

type elementMetric struct {
	ID      string               `json:"id"`
	Type    models.ElementKind   `json:"type"`
	Name    string               `json:"name"`
	Metric  geometry.Measurement `json:"metric"`
	Display string               `json:"display"`
}

type metricsResponse struct {
	Summary  geometry.FloorSummary `json:"summary"`
	Elements []elementMetric       `json:"elements"`
}

// FloorMetrics: площадь или длина каждого элемента и сводка по этажу.
func (h *Handler) FloorMetrics(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "METRICS", err)
	}
	floor, err := h.buildings.Floor(c.Context(), c.Params("id"), idx)
	if err != nil {
		return respondError(c, "METRICS", err)
	}

	resp := metricsResponse{
		Summary:  geometry.Summarize(floor),
		Elements: make([]elementMetric, 0, len(floor.Elements)),
	}
	for _, e := range floor.Elements {
		m := geometry.Measure(e)
		resp.Elements = append(resp.Elements, elementMetric{
			ID:      e.ID,
			Type:    e.Kind,
			Name:    e.Name,
			Metric:  m,
			Display: m.String(),
		})
	}
	return c.JSON(resp)
}

// Analyze возвращает товары внутри последнего контура этажа.
func (h *Handler) Analyze(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "ANALYSIS", err)
	}
	result, err := h.buildings.Analyze(c.Context(), c.Params("id"), idx)
	if err != nil {
		return respondError(c, "ANALYSIS", err)
	}

	log.Printf("[ANALYSIS] Building %s floor %d: %d points inside", c.Params("id"), idx, len(result.Points))
	return c.JSON(fiber.Map{
		"polygon":     result.Polygon,
		"points":      result.Points,
		"totalPoints": len(result.Points),
	})
}

// ExportPoints отдает результат анализа файлом для скачивания.
func (h *Handler) ExportPoints(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "ANALYSIS", err)
	}
	result, err := h.buildings.Analyze(c.Context(), c.Params("id"), idx)
	if err != nil {
		return respondError(c, "ANALYSIS", err)
	}

	now := h.now()
	var buf bytes.Buffer
	if err := export.WritePoints(&buf, export.NewPointsDocument(result.Points, now)); err != nil {
		return respondError(c, "ANALYSIS", err)
	}

	c.Attachment(export.PointsFilename(now))
	c.Set("Content-Type", "application/json")
	return c.Send(buf.Bytes())
}

// FloorGeoJSON: этаж как FeatureCollection.
func (h *Handler) FloorGeoJSON(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "GEOJSON", err)
	}
	floor, err := h.buildings.Floor(c.Context(), c.Params("id"), idx)
	if err != nil {
		return respondError(c, "GEOJSON", err)
	}

	data, err := export.MarshalFloor(floor)
	if err != nil {
		return respondError(c, "GEOJSON", err)
	}
	c.Set("Content-Type", "application/geo+json")
	return c.Send(data)
}
