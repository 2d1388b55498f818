package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var progressDescription string

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Record and inspect progress updates",
}

var progressAddCmd = &cobra.Command{
	Use:   "add <date> <completed-points>",
	Short: "Record a progress update",
	Long: `Record a progress update: the total story points completed by the
given date. Dates outside the project range are clamped to the nearest
boundary. Updates are kept in submission order.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		var points float64
		if _, err := fmt.Sscanf(args[1], "%f", &points); err != nil {
			return NewCLIError("invalid completed points", "Completed points must be a number", err)
		}

		summary, err := services.Project.RecordProgress(args[0], points, progressDescription)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Recorded %.1f completed points (%.1f%% of %.0f)\n",
			summary.CompletedStoryPoints, summary.ProgressPercentage, summary.TotalStoryPoints)
		return nil
	},
}

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List progress updates in submission order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		project, err := services.Project.Load()
		if err != nil {
			return MapError(err)
		}

		entries := project.Ledger()
		if len(entries) == 0 {
			fmt.Println("No progress recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tCOMPLETED\tDESCRIPTION")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%.1f\t%s\n", e.Date.Format("2006-01-02"), e.CompletedPoints, e.Description)
		}
		return w.Flush()
	},
}

func init() {
	progressAddCmd.Flags().StringVarP(&progressDescription, "description", "d", "", "free-text description of the update")
	progressCmd.AddCommand(progressAddCmd)
	progressCmd.AddCommand(progressListCmd)
	RootCmd.AddCommand(progressCmd)
}
