package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"building-control/internal/planner/geometry"
	"building-control/internal/planner/importer"
	"building-control/internal/planner/models"
	"building-control/internal/planner/render"
	"building-control/internal/planner/repository"
	"building-control/internal/planner/service"
	"building-control/internal/planner/store"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Planner Handler
// ============================================================

type Handler struct {
	buildings *service.Buildings
	tuning    geometry.Options
	renderer  *render.Renderer
	now       func() time.Time
}

func New(buildings *service.Buildings, tuning geometry.Options) *Handler {
	return &Handler{
		buildings: buildings,
		tuning:    tuning.WithDefaults(),
		renderer:  render.NewRenderer(),
		now:       time.Now,
	}
}

// Register вешает маршруты планировщика на группу /api/v1.
func (h *Handler) Register(api fiber.Router) {
	api.Get("/buildings", h.ListBuildings)
	api.Post("/buildings", h.CreateBuilding)
	api.Get("/buildings/:id", h.GetBuilding)
	api.Delete("/buildings/:id", h.DeleteBuilding)

	api.Post("/buildings/:id/floors", h.AddFloor)
	api.Post("/buildings/:id/floors/import", h.ImportFloor)
	api.Get("/buildings/:id/floors/:floor", h.GetFloor)
	api.Patch("/buildings/:id/floors/:floor", h.SetFloorProperty)
	api.Delete("/buildings/:id/floors/:floor", h.RemoveFloor)

	api.Post("/buildings/:id/floors/:floor/elements", h.AddElement)
	api.Put("/buildings/:id/floors/:floor/elements", h.ReplaceElements)
	api.Delete("/buildings/:id/floors/:floor/elements", h.ClearElements)
	api.Patch("/buildings/:id/floors/:floor/elements/:element", h.UpdateElement)
	api.Delete("/buildings/:id/floors/:floor/elements/:element", h.RemoveElement)

	api.Get("/buildings/:id/floors/:floor/metrics", h.FloorMetrics)
	api.Get("/buildings/:id/floors/:floor/analysis", h.Analyze)
	api.Get("/buildings/:id/floors/:floor/analysis/export", h.ExportPoints)
	api.Get("/buildings/:id/floors/:floor/geojson", h.FloorGeoJSON)
	api.Get("/buildings/:id/floors/:floor/svg", h.RenderFloor)

	api.Get("/kinds", h.ListKinds)
}

// ============================================================
// Helpers
// ============================================================

func floorIndex(c fiber.Ctx) (int, error) {
	idx, err := strconv.Atoi(c.Params("floor"))
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "floor index must be an integer")
	}
	return idx, nil
}

func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return fiber.NewError(http.StatusBadRequest, "body required")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid JSON payload: "+err.Error())
	}
	return nil
}

// respondError переводит ошибки домена в HTTP статусы.
func respondError(c fiber.Ctx, tag string, err error) error {
	status := http.StatusInternalServerError

	var fe *fiber.Error
	var indexErr *store.IndexError
	var parseErr *importer.ParseError
	var emptyErr *importer.EmptyResultError

	switch {
	case errors.As(err, &fe):
		status = fe.Code
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	case errors.As(err, &indexErr), errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &parseErr):
		status = http.StatusBadRequest
	case errors.As(err, &emptyErr):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidGeometry),
		errors.Is(err, models.ErrUnknownKind),
		errors.Is(err, store.ErrInvalidProperty):
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[%s] Error: %v", tag, err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
