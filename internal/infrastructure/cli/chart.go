package cli

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/burndown/pkg/renderer"
	"github.com/spf13/cobra"
)

var (
	chartOutput  string
	chartWidth   int
	chartHeight  int
	chartMarkers bool
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the burndown chart to an SVG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		project, err := services.Project.Load()
		if err != nil {
			return MapError(err)
		}

		opts := renderer.DefaultOptions("Burndown Chart - " + project.Name)
		opts.Width = chartWidth
		opts.Height = chartHeight
		opts.ShowMarkers = chartMarkers

		svg, err := renderer.NewChartRenderer(opts).Render(project.Series(), project.Ledger())
		if err != nil {
			return err
		}

		if err := os.WriteFile(chartOutput, svg, 0600); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Printf("Burndown chart saved to %s\n", chartOutput)
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "burndown_chart.svg", "output file path")
	chartCmd.Flags().IntVar(&chartWidth, "width", 1120, "chart width in pixels")
	chartCmd.Flags().IntVar(&chartHeight, "height", 640, "chart height in pixels")
	chartCmd.Flags().BoolVar(&chartMarkers, "markers", true, "mark individual progress updates")
	RootCmd.AddCommand(chartCmd)
}
