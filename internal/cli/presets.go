package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/types"
	"github.com/mydehq/showtitle/internal/ui"
)

var presetsCmd = &cobra.Command{
	Use:     "presets",
	Aliases: []string{"preset"},
	Short:   "List and manage naming presets",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		printPresets(cfg)
		return nil
	},
}

var presetsAddCmd = &cobra.Command{
	Use:   "add <name> <folder scheme> <filename scheme>",
	Short: "Add or replace a preset",
	Example: `  showtitle presets add ByVenue '%venue%' '%date% %artist%'
  showtitle presets add Flat '(Root)' '%artist% - %date%'`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updatePresets(func(cfg *types.GlobalConfig) error {
			return config.AddPreset(cfg, args[0], args[1], args[2])
		}, "Saved preset", args[0])
	},
}

var presetsRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a preset",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updatePresets(func(cfg *types.GlobalConfig) error {
			return config.RemovePreset(cfg, args[0])
		}, "Removed preset", args[0])
	},
}

var presetsUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a preset the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updatePresets(func(cfg *types.GlobalConfig) error {
			return config.UsePreset(cfg, args[0])
		}, "Active preset", args[0])
	},
}

func init() {
	presetsCmd.AddCommand(presetsAddCmd, presetsRemoveCmd, presetsUseCmd)
	RootCmd.AddCommand(presetsCmd)
}

func printPresets(cfg types.GlobalConfig) {
	for _, name := range config.PresetNames(cfg) {
		p := cfg.Presets[name]
		marker := " "
		if name == cfg.ActivePreset {
			marker = ui.StyleFlag.Render("*")
		}
		fmt.Printf("%s %s\n", marker, ui.StyleCommand.Render(name))
		fmt.Printf("    %s %s\n", ui.StyleDim.Render("folder:  "), ui.StylePattern.Render(p.Folder))
		fmt.Printf("    %s %s\n", ui.StyleDim.Render("filename:"), ui.StylePattern.Render(p.Filename))
	}
}

// updatePresets loads the config, applies fn and writes it back.
func updatePresets(fn func(*types.GlobalConfig) error, label, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := fn(&cfg); err != nil {
		return err
	}
	if err := config.Save(config.GlobalConfigPath(), cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	logger.Info(fmt.Sprintf("%s: %s", ui.StyleHeader.Render(label), ui.StyleCommand.Render(name)))
	return nil
}
