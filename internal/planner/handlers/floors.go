package handlers

import (
	"net/http"

	"building-control/internal/planner/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Floor Handlers
// ============================================================

type floorPropertyRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// AddFloor добавляет этаж из JSON.
func (h *Handler) AddFloor(c fiber.Ctx) error {
	var floor models.FloorPlan
	if err := decodeBody(c, &floor); err != nil {
		return respondError(c, "FLOORS", err)
	}

	b, err := h.buildings.AddFloor(c.Context(), c.Params("id"), floor)
	if err != nil {
		return respondError(c, "FLOORS", err)
	}
	return c.Status(http.StatusCreated).JSON(b)
}

func (h *Handler) GetFloor(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "FLOORS", err)
	}
	floor, err := h.buildings.Floor(c.Context(), c.Params("id"), idx)
	if err != nil {
		return respondError(c, "FLOORS", err)
	}
	return c.JSON(floor)
}

// SetFloorProperty меняет level или scale этажа.
func (h *Handler) SetFloorProperty(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "FLOORS", err)
	}
	var req floorPropertyRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, "FLOORS", err)
	}

	b, err := h.buildings.SetFloorProperty(c.Context(), c.Params("id"), idx, req.Key, req.Value)
	if err != nil {
		return respondError(c, "FLOORS", err)
	}
	return c.JSON(b)
}

func (h *Handler) RemoveFloor(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "FLOORS", err)
	}
	b, err := h.buildings.RemoveFloor(c.Context(), c.Params("id"), idx)
	if err != nil {
		return respondError(c, "FLOORS", err)
	}
	return c.JSON(b)
}
