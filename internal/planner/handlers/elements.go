package handlers

import (
	"net/http"
	"strings"

	"building-control/internal/planner/models"
	"building-control/internal/planner/store"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Element Handlers
// ============================================================

// AddElement добавляет нарисованный элемент в конец этажа.
func (h *Handler) AddElement(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}
	var e models.Element
	if err := decodeBody(c, &e); err != nil {
		return respondError(c, "ELEMENTS", err)
	}

	added, err := h.buildings.AddElement(c.Context(), c.Params("id"), idx, e)
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}
	return c.Status(http.StatusCreated).JSON(added)
}

// ReplaceElements заменяет все элементы этажа.
func (h *Handler) ReplaceElements(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}
	var elements []models.Element
	if err := decodeBody(c, &elements); err != nil {
		return respondError(c, "ELEMENTS", err)
	}

	b, err := h.buildings.ReplaceElements(c.Context(), c.Params("id"), idx, elements)
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}
	return c.JSON(b.Floors[idx])
}

// UpdateElement частично обновляет элемент. Неизвестный id: не ошибка.
func (h *Handler) UpdateElement(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}
	var patch store.ElementPatch
	if err := decodeBody(c, &patch); err != nil {
		return respondError(c, "ELEMENTS", err)
	}

	b, err := h.buildings.UpdateElement(c.Context(), c.Params("id"), idx, c.Params("element"), patch)
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}
	return c.JSON(b.Floors[idx])
}

func (h *Handler) RemoveElement(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}

	b, err := h.buildings.RemoveElement(c.Context(), c.Params("id"), idx, c.Params("element"))
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}
	return c.JSON(b.Floors[idx])
}

// ClearElements удаляет элементы этажа; ?types=product,room ограничивает
// удаление перечисленными типами.
func (h *Handler) ClearElements(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}

	var kinds []models.ElementKind
	if raw := c.Query("types"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			kind, err := models.ParseKind(part)
			if err != nil {
				return respondError(c, "ELEMENTS", err)
			}
			kinds = append(kinds, kind)
		}
	}

	b, err := h.buildings.ClearElements(c.Context(), c.Params("id"), idx, kinds...)
	if err != nil {
		return respondError(c, "ELEMENTS", err)
	}
	return c.JSON(b.Floors[idx])
}
