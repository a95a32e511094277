package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"building-control/internal/planner/export"
	"building-control/internal/planner/geometry"
)

func analyzeCmd() *cobra.Command {
	var exportPath string
	var exportFile bool
	cmd := &cobra.Command{
		Use:   "analyze <plan.json>",
		Short: "List products inside the most recently drawn contour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], exportPath, exportFile)
		},
	}
	cmd.Flags().BoolVar(&exportFile, "export", false, "Write the result as a points export file")
	cmd.Flags().StringVarP(&exportPath, "out", "o", "", "Export file name (default points-export-<date>.json)")
	return cmd
}

func runAnalyze(path, exportPath string, exportFile bool) error {
	floor, err := readPlan(path)
	if err != nil {
		return err
	}

	result := geometry.AnalyzeFloor(floor)
	if result.Polygon == nil {
		fmt.Fprintln(os.Stdout, "No contour drawn on this floor.")
	} else {
		fmt.Fprintf(os.Stdout, "Contour %s (%s): %d points inside\n", result.Polygon.Name, result.Polygon.Kind, len(result.Points))
		for _, p := range result.Points {
			c := p.Coordinates[0]
			fmt.Fprintf(os.Stdout, "  - %s [%.3f, %.3f]\n", p.Name, c.X, c.Y)
		}
	}

	if !exportFile {
		return nil
	}

	now := time.Now()
	if exportPath == "" {
		exportPath = export.PointsFilename(now)
	}
	var buf bytes.Buffer
	if err := export.WritePoints(&buf, export.NewPointsDocument(result.Points, now)); err != nil {
		return err
	}
	return writeOutput(exportPath, buf.Bytes())
}
