package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/scheme"
	"github.com/mydehq/showtitle/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [scheme...]",
	Short: "Validate naming schemes",
	Long: `Without arguments, validates the config file and every preset. With
arguments, validates each scheme and prints it evaluated for a sample show.`,
	Example: `  showtitle check
  showtitle check '$if($gt($len(%venue%),20),$left(%venue%,20),%venue%)'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runCheckConfig()
		}
		return runCheckSchemes(args)
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}

func runCheckConfig() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", ui.StyleHeader.Render("Config"), ui.StylePath.Render(config.GlobalConfigPath()))
	if err := config.Validate(cfg); err != nil {
		return err
	}
	for _, name := range config.PresetNames(cfg) {
		p := cfg.Presets[name]
		fmt.Printf(" %s %s\n", ui.StyleDim.Render("-"), ui.StyleCommand.Render(name))
		fmt.Printf("   %s %s\n", ui.StyleDim.Render("folder:  "), ui.StylePattern.Render(p.Folder))
		fmt.Printf("   %s %s\n", ui.StyleDim.Render("filename:"), ui.StylePattern.Render(p.Filename))
	}
	logger.Info(ui.StyleHeader.Render("All schemes are valid"))
	return nil
}

func runCheckSchemes(schemes []string) error {
	var errs []error
	for _, s := range schemes {
		if err := scheme.Validate(s); err != nil {
			logger.Error(err.Error())
			errs = append(errs, err)
			continue
		}
		fmt.Printf("%s\n %s %s\n", ui.StylePattern.Render(s), ui.StyleDim.Render("→"), ui.StyleCommand.Render(scheme.Evaluate(s, ui.SampleRecord)))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d schemes are invalid: %w", len(errs), len(schemes), errors.Join(errs...))
	}
	return nil
}
