package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "planctl",
		Short: "Offline floor plan import, metrics and analysis",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(importCmd())
	root.AddCommand(metricsCmd())
	root.AddCommand(analyzeCmd())
	root.AddCommand(geojsonCmd())
	root.AddCommand(svgCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
