package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/burndown/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var statusJSON bool

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	statusLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Width(22)

	statusBarDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	statusBarRestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the project's progress summary",
	Long: `Show the project's progress summary: completed story points,
completion percentage, and the estimate-vs-actual variance across tasks.
The completed points reflect the most recently submitted update.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		project, err := services.Project.Load()
		if err != nil {
			return MapError(err)
		}
		summary := project.Summary()

		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		fmt.Println(statusTitleStyle.Render("Burndown - " + project.Name))
		fmt.Println()
		fmt.Printf("%s %s to %s\n", statusLabelStyle.Render("Timeline"),
			project.StartDate.Format("2006-01-02"), project.EndDate.Format("2006-01-02"))
		fmt.Printf("%s %.0f\n", statusLabelStyle.Render("Total story points"), summary.TotalStoryPoints)
		fmt.Printf("%s %.1f\n", statusLabelStyle.Render("Completed points"), summary.CompletedStoryPoints)
		fmt.Printf("%s %s %.1f%%\n", statusLabelStyle.Render("Progress"),
			progressBar(summary.ProgressPercentage, 30), summary.ProgressPercentage)
		fmt.Printf("%s %.1f%%\n", statusLabelStyle.Render("Estimate variance"), summary.EstimateVariance)
		fmt.Printf("%s %d\n", statusLabelStyle.Render("Tasks"), len(project.Tasks()))
		fmt.Printf("%s %d\n", statusLabelStyle.Render("Progress updates"), len(project.Ledger()))
		return nil
	},
}

// progressBar renders a fixed-width unicode bar for the given percentage.
func progressBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return statusBarDoneStyle.Render(strings.Repeat("█", filled)) +
		statusBarRestStyle.Render(strings.Repeat("░", width-filled))
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
	RootCmd.AddCommand(statusCmd)
}
