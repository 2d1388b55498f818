package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
	"github.com/spf13/cobra"
)

var (
	initStart  string
	initEnd    string
	initPoints float64
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Initialize a new burndown project",
	Long: `Initialize a new burndown project in the current directory.

An end date on or before the start date is not an error: the end is
advanced to start + 14 days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		projectName := "new-project"
		if len(args) > 0 {
			projectName = args[0]
		}

		start, err := time.Parse(burndown.DateFormat, initStart)
		if err != nil {
			return MapError(fmt.Errorf("%w: invalid start date %q (want YYYY-MM-DD)", burndown.ErrInvalidProject, initStart))
		}
		end, err := time.Parse(burndown.DateFormat, initEnd)
		if err != nil {
			return MapError(fmt.Errorf("%w: invalid end date %q (want YYYY-MM-DD)", burndown.ErrInvalidProject, initEnd))
		}

		def, err := services.Project.Init(projectName, start, end, initPoints)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Initialized burndown project %q: %s to %s, %.0f story points\n",
			def.Name, def.StartDate, def.EndDate, def.TotalStoryPoints)
		return nil
	},
}

func init() {
	today := time.Now().UTC().Format(burndown.DateFormat)
	initCmd.Flags().StringVar(&initStart, "start", today, "project start date (YYYY-MM-DD)")
	initCmd.Flags().StringVar(&initEnd, "end", today, "project end date (YYYY-MM-DD)")
	initCmd.Flags().Float64Var(&initPoints, "points", 100, "total story points")
	RootCmd.AddCommand(initCmd)
}
