package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Render Handler
// ============================================================

// RenderFloor рисует этаж в SVG.
func (h *Handler) RenderFloor(c fiber.Ctx) error {
	idx, err := floorIndex(c)
	if err != nil {
		return respondError(c, "RENDER", err)
	}
	floor, err := h.buildings.Floor(c.Context(), c.Params("id"), idx)
	if err != nil {
		return respondError(c, "RENDER", err)
	}

	svg, err := h.renderer.Render(&floor)
	if err != nil {
		log.Printf("[RENDER] Render error: %v", err)
		return respondError(c, "RENDER", err)
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}
