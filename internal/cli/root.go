// Package cli implements the showtitle command line.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mydehq/showtitle"
	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/types"
	"github.com/mydehq/showtitle/internal/ui"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Level:           log.InfoLevel,
})

var (
	flagConfig  string
	flagVerbose bool
	flagQuiet   bool
	flagDryRun  bool
)

// RootCmd is the showtitle command.
var RootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Organize concert videos by artist, date, venue and city",
	Long: `showtitle reads the artist, show date, venue, city and format tags out of
concert video file names and files the videos into folders built from
naming templates such as "%artist%/$year(date)".`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional
		_ = godotenv.Load()

		switch {
		case flagVerbose:
			logger.SetLevel(log.DebugLevel)
		case flagQuiet:
			logger.SetLevel(log.ErrorLevel)
		}
		if flagConfig != "" {
			os.Setenv(config.EnvConfig, flagConfig)
		}

		showtitle.SetLogger(logger)
		ui.SetLogger(logger)
		ui.ConfigureLoggerStyles()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default $XDG_CONFIG_HOME/showtitle/config.yml)")
	RootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log inference decisions")
	RootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log errors")
	RootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// loadConfig loads the global config, failing when --config names a
// missing file.
func loadConfig() (types.GlobalConfig, error) {
	return config.Load(config.GlobalConfigPath(), flagConfig != "")
}
