package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"building-control/internal/planner/geometry"
	"building-control/internal/planner/models"
)

func metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <plan.json>",
		Short: "Print area or length of every element and floor totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			floor, err := readPlan(args[0])
			if err != nil {
				return err
			}
			return printMetrics(os.Stdout, floor)
		},
	}
}

func printMetrics(w io.Writer, floor models.FloorPlan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tMETRIC")
	for _, e := range floor.Elements {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Kind, geometry.Measure(e))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := geometry.Summarize(floor)
	fmt.Fprintf(w, "\nFloor %s (scale %.4f)\n", floor.Level, floor.Scale)
	fmt.Fprintf(w, "  Rooms:     %d, %.2f %s\n", s.Counts[models.KindRoom], s.RoomArea, geometry.UnitArea)
	fmt.Fprintf(w, "  Furniture: %d, %.2f %s\n", s.Counts[models.KindFurniture], s.FurnitureArea, geometry.UnitArea)
	fmt.Fprintf(w, "  Shelves:   %d, %.2f %s\n", s.Counts[models.KindShelf], s.ShelfArea, geometry.UnitArea)
	fmt.Fprintf(w, "  Walls:     %d, %.2f %s\n", s.Counts[models.KindOuterWall]+s.Counts[models.KindInnerWall], s.WallLength, geometry.UnitLength)
	fmt.Fprintf(w, "  Products:  %d\n", s.Products)
	return nil
}
