package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollisk/paperwright/internal/lifecycle"
	"github.com/hollisk/paperwright/internal/storage"
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate [YYYY-MM]",
	Short: "Fold daily journal files into monthly bundles",
	Long: `consolidate merges the daily journal files of elapsed months into one
file per month and removes the dailies. Without an argument every elapsed
month is folded; with one, only that month. The current month always stays
as daily files.

The merge is idempotent: sessions already present in a monthly bundle are
not appended again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConsolidate,
}

func init() {
	rootCmd.AddCommand(consolidateCmd)
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := storage.NewLocal(cfg.ProjectsDir)
	if err != nil {
		return fmt.Errorf("failed to open projects directory: %w", err)
	}
	manager := lifecycle.NewManager(store, cfg.SessionGap)

	if len(args) == 1 {
		if err := manager.ConsolidateMonth(args[0]); err != nil {
			return err
		}
		fmt.Printf("Consolidated %s\n", args[0])
		return nil
	}

	months, err := manager.ConsolidateElapsedMonths()
	if err != nil {
		return err
	}
	if len(months) == 0 {
		fmt.Println("Nothing to consolidate")
		return nil
	}
	for _, month := range months {
		fmt.Printf("Consolidated %s\n", month)
	}
	return nil
}
