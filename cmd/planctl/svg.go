package main

import (
	"github.com/spf13/cobra"

	"building-control/internal/planner/render"
)

func svgCmd() *cobra.Command {
	var out string
	var pixels float64
	cmd := &cobra.Command{
		Use:   "svg <plan.json>",
		Short: "Render a floor plan to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			floor, err := readPlan(args[0])
			if err != nil {
				return err
			}
			r := render.NewRenderer()
			if pixels > 0 {
				r.PixelsPerUnit = pixels
			}
			svg, err := r.Render(&floor)
			if err != nil {
				return err
			}
			return writeOutput(out, []byte(svg))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (stdout when empty)")
	cmd.Flags().Float64Var(&pixels, "scale", 0, "Pixels per plan unit")
	return cmd
}
