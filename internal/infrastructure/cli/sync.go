package cli

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/burndown/pkg/domain/board"
	"github.com/spf13/cobra"
)

var syncPluginPath string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Exchange tasks and progress with an external task board",
}

// resolveBoard returns the plugin binary and its config, preferring an
// explicit --plugin flag over the stored board configuration.
func resolveBoard(services *wiring.AppServices) (string, map[string]string, error) {
	if syncPluginPath != "" {
		return syncPluginPath, nil, nil
	}
	cfg, err := services.Workspace.Repo.LoadBoardConfig()
	if err != nil {
		return "", nil, NewCLIError(
			"no board plugin configured",
			"Run 'burndown sync configure' or pass --plugin <path>",
			err,
		)
	}
	return cfg.Binary, cfg.Config, nil
}

var syncImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import board cards as tasks",
	Long: `Import the board's cards as tasks. Each card's complexity is read
from its description (keyword search: hard, medium, else easy) and the
story points are sampled from that tier. Cards already imported are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)
		defer services.Loader.Cleanup()

		binary, config, err := resolveBoard(services)
		if err != nil {
			return err
		}

		added, err := services.Sync.Import(binary, config)
		if err != nil {
			return MapError(err)
		}
		if added == 0 {
			fmt.Println("No new cards to import.")
			return nil
		}
		fmt.Printf("Imported %d tasks from the board\n", added)
		return nil
	},
}

var syncMirrorCmd = &cobra.Command{
	Use:   "mirror <task-name>",
	Short: "Create a board card for a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)
		defer services.Loader.Cleanup()

		binary, config, err := resolveBoard(services)
		if err != nil {
			return err
		}

		card, err := services.Sync.Mirror(binary, config, args[0])
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Created card %q (%s)\n", card.Name, card.URL)
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push <task-name>",
	Short: "Push current progress to the task's board card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)
		defer services.Loader.Cleanup()

		binary, config, err := resolveBoard(services)
		if err != nil {
			return err
		}

		if err := services.Sync.Push(binary, config, args[0]); err != nil {
			return MapError(err)
		}
		fmt.Printf("Pushed progress for %q\n", args[0])
		return nil
	},
}

func init() {
	syncCmd.PersistentFlags().StringVar(&syncPluginPath, "plugin", "", "board plugin binary (overrides the stored configuration)")
	syncCmd.AddCommand(syncImportCmd)
	syncCmd.AddCommand(syncMirrorCmd)
	syncCmd.AddCommand(syncPushCmd)
	RootCmd.AddCommand(syncCmd)
}

// storedBoardConfig loads or initializes the board configuration for editing.
func storedBoardConfig(services *wiring.AppServices) *board.Config {
	cfg, err := services.Workspace.Repo.LoadBoardConfig()
	if err != nil {
		return &board.Config{Config: map[string]string{}}
	}
	if cfg.Config == nil {
		cfg.Config = map[string]string{}
	}
	return cfg
}
