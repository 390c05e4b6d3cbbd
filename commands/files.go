package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hollisk/paperwright/internal/lifecycle"
	"github.com/hollisk/paperwright/internal/storage"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List every file with its lifecycle state",
	Long: `files prints the device inventory: every journal and project file
together with its lifecycle state (active, archived, trashed), kind, size,
and last modification time.`,
	RunE: runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := storage.NewLocal(cfg.ProjectsDir)
	if err != nil {
		return fmt.Errorf("failed to open projects directory: %w", err)
	}
	manager := lifecycle.NewManager(store, cfg.SessionGap)

	files, err := manager.Inventory()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tSTATE\tSIZE\tCREATED\tMODIFIED")
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			f.Name, f.Kind, f.State, f.Size,
			f.CreatedAt.Format("2006-01-02 15:04"),
			f.ModTime.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
