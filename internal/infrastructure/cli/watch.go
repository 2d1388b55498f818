package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/watch"
	"github.com/felixgeelhaar/burndown/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/burndown/pkg/renderer"
	"github.com/spf13/cobra"
)

var (
	watchOutput   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the chart whenever the definition changes",
	Long: `Watch the project definition and re-render the burndown chart on
every change. Useful next to an editor or a script appending progress
updates. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		render := func() {
			project, err := services.Project.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload: %v\n", MapError(err))
				return
			}
			opts := renderer.DefaultOptions("Burndown Chart - " + project.Name)
			svg, err := renderer.NewChartRenderer(opts).Render(project.Series(), project.Ledger())
			if err != nil {
				fmt.Fprintf(os.Stderr, "render: %v\n", err)
				return
			}
			if err := os.WriteFile(watchOutput, svg, 0600); err != nil {
				fmt.Fprintf(os.Stderr, "write chart: %v\n", err)
				return
			}
			fmt.Printf("Re-rendered %s\n", watchOutput)
		}

		// Render once up front so the artifact exists before the first change.
		render()

		watcher, err := watch.NewDefinitionWatcher(services.Workspace.Repo.DefinitionPath(), watchDebounce, render)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s (Ctrl-C to stop)\n", services.Workspace.Repo.DefinitionPath())
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "burndown_chart.svg", "output file path")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "debounce window for rapid changes")
	RootCmd.AddCommand(watchCmd)
}
