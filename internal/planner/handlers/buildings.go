package handlers

import (
	"net/http"

	"building-control/internal/planner/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Building Handlers
// ============================================================

// ListBuildings возвращает краткий список зданий.
func (h *Handler) ListBuildings(c fiber.Ctx) error {
	list, err := h.buildings.List(c.Context())
	if err != nil {
		return respondError(c, "BUILDINGS", err)
	}
	return c.JSON(list)
}

// CreateBuilding создает здание, при желании сразу с этажами.
func (h *Handler) CreateBuilding(c fiber.Ctx) error {
	var input models.Building
	if err := decodeBody(c, &input); err != nil {
		return respondError(c, "BUILDINGS", err)
	}

	b, err := h.buildings.Create(c.Context(), input)
	if err != nil {
		return respondError(c, "BUILDINGS", err)
	}
	return c.Status(http.StatusCreated).JSON(b)
}

func (h *Handler) GetBuilding(c fiber.Ctx) error {
	b, err := h.buildings.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, "BUILDINGS", err)
	}
	return c.JSON(b)
}

func (h *Handler) DeleteBuilding(c fiber.Ctx) error {
	if err := h.buildings.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, "BUILDINGS", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListKinds отдает типы элементов со стилями по умолчанию для панели
// инструментов редактора.
func (h *Handler) ListKinds(c fiber.Ctx) error {
	out := make([]fiber.Map, 0, len(models.Kinds))
	for _, k := range models.Kinds {
		style := models.StyleOf(k)
		item := fiber.Map{
			"type":  k,
			"name":  style.Label,
			"color": style.Color,
		}
		if style.Thickness > 0 {
			item["thickness"] = style.Thickness
		}
		out = append(out, item)
	}
	return c.JSON(out)
}
