package handlers

import (
	"log"
	"net/http"

	"building-control/internal/planner/importer"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Import Handler
// ============================================================

// ImportFloor принимает DXF или SVG в multipart/form-data (поле file) и
// добавляет распознанный чертеж новым этажом здания. Формат берется из
// поля format, а если его нет, из расширения файла.
func (h *Handler) ImportFloor(c fiber.Ctx) error {
	log.Printf("[IMPORT] Received request")
	log.Printf("[IMPORT] Content-Type: %s", c.Get("Content-Type"))

	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("[IMPORT] FormFile error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	log.Printf("[IMPORT] File received: %s, size: %d", file.Filename, file.Size)

	var format importer.Format
	if raw := c.FormValue("format"); raw != "" {
		format, err = importer.ParseFormat(raw)
	} else {
		format, err = importer.DetectFormat(file.Filename)
	}
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open file",
		})
	}
	defer f.Close()

	b, err := h.buildings.ImportFloor(c.Context(), c.Params("id"), f, importer.Options{
		Format:   format,
		Name:     file.Filename,
		Geometry: h.tuning,
	})
	if err != nil {
		log.Printf("[IMPORT] Import error: %v", err)
		return respondError(c, "IMPORT", err)
	}

	log.Printf("[IMPORT] Floor %d added to building %s", len(b.Floors)-1, b.ID)
	return c.Status(http.StatusCreated).JSON(b)
}
