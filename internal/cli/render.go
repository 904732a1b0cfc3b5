package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mydehq/showtitle"
	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/ui"
)

var (
	renderRecord   metadata.Record
	renderFolder   string
	renderFilename string
	renderPreset   string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Show where a file or a set of fields would be filed",
	Long: `Renders the folder and filename schemes. With a file argument the fields
are inferred from its name first; field flags override inferred values.`,
	Example: `  showtitle render "ph2023-07-14 MSG 1080p.mkv"
  showtitle render --artist Goose --date 2021-10-31 --filename-scheme '$upper(%artist%) %date%'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := ""
		if len(args) > 0 {
			source = args[0]
		}
		return runRender(cmd, source)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderRecord.Artist, "artist", "", "artist")
	f.StringVar(&renderRecord.Date, "date", "", "show date (YYYY-MM-DD)")
	f.StringVar(&renderRecord.Venue, "venue", "", "venue")
	f.StringVar(&renderRecord.City, "city", "", "city")
	f.StringVar(&renderRecord.Format, "format", "", "format keywords")
	f.StringVar(&renderRecord.Additional, "additional", "", "additional keywords")
	f.StringVar(&renderRecord.OutputFolder, "output-folder", "", "output folder overriding the root")
	f.StringVar(&renderFolder, "folder-scheme", "", "folder scheme to use instead of the configured one")
	f.StringVar(&renderFilename, "filename-scheme", "", "filename scheme to use instead of the configured one")
	f.StringVarP(&renderPreset, "preset", "p", "", "preset to render with")
	RootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, source string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if renderPreset != "" {
		if err := config.UsePreset(&cfg, renderPreset); err != nil {
			return err
		}
	}
	if renderFolder != "" || renderFilename != "" {
		folder, filename := cfg.Schemes()
		if renderFolder != "" {
			folder = renderFolder
		}
		if renderFilename != "" {
			filename = renderFilename
		}
		cfg.FolderScheme, cfg.FilenameScheme, cfg.ActivePreset = folder, filename, ""
	}
	opts := []showtitle.Option{showtitle.WithConfig(cfg)}

	rec := metadata.Record{}
	ext := ".mkv"
	if source != "" {
		if rec, err = showtitle.Infer(source, opts...); err != nil {
			return err
		}
		rec = rec.WithFilename(metadata.BaseName(source))
		ext = filepath.Ext(source)
	}
	rec = overrideFields(cmd, rec)

	dir, base, err := showtitle.Render(rec.WithDateParts(), opts...)
	if err != nil {
		return err
	}
	if base == "" {
		return fmt.Errorf("the filename scheme rendered an empty name")
	}
	fmt.Println(ui.StylePath.Render(filepath.Join(dir, base+ext)))
	return nil
}

// overrideFields copies the field flags that were set onto rec.
func overrideFields(cmd *cobra.Command, rec metadata.Record) metadata.Record {
	set := func(flag string, dst *string, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	set("artist", &rec.Artist, renderRecord.Artist)
	set("date", &rec.Date, renderRecord.Date)
	set("venue", &rec.Venue, renderRecord.Venue)
	set("city", &rec.City, renderRecord.City)
	set("format", &rec.Format, renderRecord.Format)
	set("additional", &rec.Additional, renderRecord.Additional)
	set("output-folder", &rec.OutputFolder, renderRecord.OutputFolder)
	if cmd.Flags().Changed("date") {
		rec.Year, rec.Month, rec.Day = "", "", ""
	}
	return rec
}
