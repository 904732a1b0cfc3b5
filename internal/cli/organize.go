package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/mydehq/showtitle"
	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/reference"
	"github.com/mydehq/showtitle/internal/types"
	"github.com/mydehq/showtitle/internal/ui"
)

var (
	flagNoReview bool
	flagPreset   string
	flagOutput   string
)

var organizeCmd = &cobra.Command{
	Use:     "organize [directory]",
	Aliases: []string{"rename"},
	Short:   "Infer metadata for every video in a directory and file them",
	Long: `Scans a directory for concert videos, infers their metadata, lets you
review and edit each record, then moves the files into the folder layout of
the active preset. Every applied move is appended to the undo log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		return runOrganize(cmd, path)
	},
}

func init() {
	organizeCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "show the plan without moving files")
	organizeCmd.Flags().BoolVarP(&flagNoReview, "yes", "y", false, "skip the interactive review")
	organizeCmd.Flags().StringVarP(&flagPreset, "preset", "p", "", "preset to organize with")
	organizeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output root to use instead of the configured one")
	RootCmd.AddCommand(organizeCmd)
}

func runOrganize(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := []showtitle.Option{
		showtitle.WithConfig(cfg),
		showtitle.WithEvents(printEvent),
	}
	if flagPreset != "" {
		opts = append(opts, showtitle.WithPreset(flagPreset))
	}
	if flagOutput != "" {
		opts = append(opts, showtitle.WithOutputRoot(flagOutput))
	}
	if flagDryRun {
		opts = append(opts, showtitle.WithDryRun())
	}

	var files []string
	var records []metadata.Record
	var inspectErr error
	err = spinner.New().
		Title(fmt.Sprintf("%s %s", ui.StyleDim.Render("Inferring metadata in"), ui.StyleCommand.Render(absPath))).
		Action(func() {
			files, records, inspectErr = showtitle.Inspect(absPath, opts...)
		}).
		Run()
	if err != nil {
		return fmt.Errorf("spinner failed: %w", err)
	}
	if inspectErr != nil {
		return inspectErr
	}
	if len(files) == 0 {
		return nil
	}

	if !flagNoReview {
		reviewer := &ui.Reviewer{
			Target:      targetPreview(opts),
			Suggestions: suggestions(cfg),
			DryRun:      flagDryRun,
		}
		records, err = reviewer.Review(ctx, files, records)
		if err != nil {
			if errors.Is(err, types.ErrUserBack) {
				logger.Info(ui.StyleDim.Render("Organize cancelled"))
				return nil
			}
			return err
		}
	}

	ops, err := showtitle.Apply(ctx, files, records, opts...)
	printPlan(ops)
	if err != nil {
		return err
	}

	label := "Done"
	if flagDryRun {
		label = "[DRY RUN] Plan"
	}
	logger.Info(fmt.Sprintf("%s: %s", ui.StyleHeader.Render(label), summarize(ops)))
	return nil
}

// targetPreview renders the target of a file for the review form.
func targetPreview(opts []showtitle.Option) func(string, metadata.Record) string {
	return func(source string, rec metadata.Record) string {
		if rec.Date == "" {
			return ""
		}
		dir, base, err := showtitle.Render(rec.WithFilename(metadata.BaseName(source)), opts...)
		if err != nil || base == "" {
			return ""
		}
		return filepath.Join(dir, base+filepath.Ext(source))
	}
}

// suggestions offers the reference lists as autocompletion.
func suggestions(cfg types.GlobalConfig) ui.Suggestions {
	refs, err := reference.LoadSet(config.ReferencePaths(cfg))
	if err != nil {
		logger.Debug("No reference suggestions", "err", err)
		return ui.Suggestions{}
	}
	return ui.Suggestions{
		Artists: refs.Artists.Values(),
		Venues:  refs.Venues.Values(),
		Cities:  refs.Cities.Values(),
	}
}
