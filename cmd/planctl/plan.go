package main

import (
	"encoding/json"
	"fmt"
	"os"

	"building-control/internal/planner/models"
)

// readPlan читает этаж, сохраненный командой import.
func readPlan(path string) (models.FloorPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FloorPlan{}, fmt.Errorf("read plan: %w", err)
	}
	var floor models.FloorPlan
	if err := json.Unmarshal(data, &floor); err != nil {
		return models.FloorPlan{}, fmt.Errorf("decode plan %s: %w", path, err)
	}
	return floor, nil
}

// writeOutput пишет в файл или, если путь пустой, в stdout.
func writeOutput(out string, data []byte) error {
	if out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "Written %s (%d bytes)\n", out, len(data))
	return nil
}
