package cli

import (
	"github.com/spf13/cobra"

	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or edit the config interactively",
	Long: `Walks through the output root, the naming preset, the reference lists
and the rename options, then writes the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, err = ui.RunSetupWizard(config.GlobalConfigPath(), cfg, flagDryRun)
		return err
	},
}

func init() {
	initCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "preview the config without writing it")
	RootCmd.AddCommand(initCmd)
}
