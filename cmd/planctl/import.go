package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"building-control/internal/common/config"
	"building-control/internal/planner/importer"
)

func importCmd() *cobra.Command {
	var format string
	var tuningPath string
	var out string
	var targetSize float64
	var closureEpsilon float64
	var minLength float64
	var minArea float64
	cmd := &cobra.Command{
		Use:   "import <drawing.dxf|drawing.svg>",
		Short: "Convert a DXF or SVG drawing into a normalized floor plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.LoadTuning(tuningPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("target-size") {
				opts.TargetSize = targetSize
			}
			if cmd.Flags().Changed("closure-epsilon") {
				opts.ClosureEpsilon = closureEpsilon
			}
			if cmd.Flags().Changed("min-length") {
				opts.MinLength = minLength
			}
			if cmd.Flags().Changed("min-area") {
				opts.MinArea = minArea
			}
			return runImport(args[0], format, out, importer.Options{Geometry: opts.WithDefaults()})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Drawing format (dxf or svg); detected from the extension when empty")
	cmd.Flags().StringVar(&tuningPath, "tuning", "", "YAML file with import tolerances")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output plan JSON (stdout when empty)")
	cmd.Flags().Float64Var(&targetSize, "target-size", 10, "Side of the square the drawing is fitted into")
	cmd.Flags().Float64Var(&closureEpsilon, "closure-epsilon", 0.1, "Max distance between end points of a closed contour")
	cmd.Flags().Float64Var(&minLength, "min-length", 0.01, "Drop paths shorter than this")
	cmd.Flags().Float64Var(&minArea, "min-area", 0.01, "Drop contours with smaller area")
	return cmd
}

func runImport(path, format, out string, opts importer.Options) error {
	var err error
	if format != "" {
		opts.Format, err = importer.ParseFormat(format)
	} else {
		opts.Format, err = importer.DetectFormat(path)
	}
	if err != nil {
		return err
	}
	opts.Name = filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	floor, err := importer.Import(context.Background(), f, opts)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(floor, "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return writeOutput(out, append(data, '\n'))
}
