package main

import (
	"github.com/spf13/cobra"

	"building-control/internal/planner/export"
)

func geojsonCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "geojson <plan.json>",
		Short: "Export a floor plan as a GeoJSON FeatureCollection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			floor, err := readPlan(args[0])
			if err != nil {
				return err
			}
			data, err := export.MarshalFloor(floor)
			if err != nil {
				return err
			}
			return writeOutput(out, append(data, '\n'))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (stdout when empty)")
	return cmd
}
