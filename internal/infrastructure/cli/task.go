package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var (
	taskComplexity string
	taskEstimate   float64
	taskActual     float64
	taskEndDate    string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage project tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a task with a complexity-based estimate",
	Long: `Add a task to the project. Without --estimate the story points are
sampled from the complexity tier's range (easy 1-3, medium 3-8, hard 8-13).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		td, err := services.Project.AddTask(args[0], taskComplexity, taskEstimate)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Added task %q (%s, %.0f points)\n", td.Name, td.Complexity, td.EstimatedPoints)
		return nil
	},
}

var taskStartCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Mark a task in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		if err := services.Project.StartTask(args[0]); err != nil {
			return MapError(err)
		}
		fmt.Printf("Task %q is now in progress\n", args[0])
		return nil
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete <name>",
	Short: "Mark a task completed",
	Long: `Mark a task completed. Without --actual the task's estimate is
recorded as the actual effort; without --end-date today is recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		var actual *float64
		if cmd.Flags().Changed("actual") {
			actual = &taskActual
		}

		if err := services.Project.CompleteTask(args[0], actual, taskEndDate); err != nil {
			return MapError(err)
		}
		fmt.Printf("Task %q completed\n", args[0])
		return nil
	},
}

var taskEstimateCmd = &cobra.Command{
	Use:   "estimate <complexity>",
	Short: "Sample story points for a complexity tier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		points, err := services.Project.Estimate(args[0])
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("%d\n", points)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks in add order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		project, err := services.Project.Load()
		if err != nil {
			return MapError(err)
		}

		tasks := project.Tasks()
		if len(tasks) == 0 {
			fmt.Println("No tasks yet. Add one with 'burndown task add'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCOMPLEXITY\tESTIMATED\tACTUAL\tSTATUS")
		for _, t := range tasks {
			actual := "-"
			if t.ActualPoints != nil {
				actual = fmt.Sprintf("%.0f", *t.ActualPoints)
			}
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%s\t%s\n", t.Name, t.Complexity, t.EstimatedPoints, actual, t.Status)
		}
		return w.Flush()
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskComplexity, "complexity", "c", "medium", "complexity tier (easy, medium, hard)")
	taskAddCmd.Flags().Float64VarP(&taskEstimate, "estimate", "e", 0, "explicit story points (0 samples from the tier)")
	taskCompleteCmd.Flags().Float64Var(&taskActual, "actual", 0, "actual story points spent")
	taskCompleteCmd.Flags().StringVar(&taskEndDate, "end-date", "", "completion date (YYYY-MM-DD, defaults to today)")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskStartCmd)
	taskCmd.AddCommand(taskCompleteCmd)
	taskCmd.AddCommand(taskEstimateCmd)
	taskCmd.AddCommand(taskListCmd)
	RootCmd.AddCommand(taskCmd)
}
