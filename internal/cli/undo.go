package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydehq/showtitle"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Move files back to where they came from",
	Long: `Reads the undo log and restores every recorded move, most recent first.
Entries whose file is already back in place are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := []showtitle.Option{
			showtitle.WithConfig(cfg),
			showtitle.WithEvents(printEvent),
		}
		if flagDryRun {
			opts = append(opts, showtitle.WithDryRun())
		}

		ops, err := showtitle.Undo(cmd.Context(), opts...)
		printPlan(ops)
		if err != nil {
			return err
		}
		label := "Restored"
		if flagDryRun {
			label = "[DRY RUN] Would restore"
		}
		logger.Info(fmt.Sprintf("%s: %s", label, summarize(ops)))
		return nil
	},
}

func init() {
	undoCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "show what would be restored")
	RootCmd.AddCommand(undoCmd)
}
