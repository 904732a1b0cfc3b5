package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mydehq/showtitle"
	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/ui"
)

var flagInferYAML bool

var inferCmd = &cobra.Command{
	Use:   "infer [file or directory...]",
	Short: "Print the metadata inferred from file names",
	Long: `Infers artist, date, venue, city, format and additional tags from each
file name. A directory argument infers every video inside it. Arguments do
not need to exist: "showtitle infer 'Phish 2023-07-14 MSG.mkv'" works.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfer(args)
	},
}

func init() {
	inferCmd.Flags().BoolVar(&flagInferYAML, "yaml", false, "print records as YAML")
	RootCmd.AddCommand(inferCmd)
}

// inferredFile is the YAML shape of one inferred record.
type inferredFile struct {
	File            string `yaml:"file"`
	metadata.Record `yaml:",inline"`
}

func runInfer(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := []showtitle.Option{showtitle.WithConfig(cfg)}

	var files []string
	var records []metadata.Record
	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			f, r, err := showtitle.Inspect(arg, opts...)
			if err != nil {
				return err
			}
			files = append(files, f...)
			records = append(records, r...)
			continue
		}
		rec, err := showtitle.Infer(arg, opts...)
		if err != nil {
			return err
		}
		files = append(files, arg)
		records = append(records, rec)
	}

	if flagInferYAML {
		out := make([]inferredFile, len(files))
		for i, rec := range records {
			out[i] = inferredFile{File: baseName(files[i]), Record: rec}
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(out)
	}

	for i, rec := range records {
		fmt.Println(ui.StyleHeader.Render(baseName(files[i])))
		printRecord(rec)
		fmt.Println()
	}
	return nil
}

// printRecord prints the non-empty fields of rec.
func printRecord(rec metadata.Record) {
	for _, field := range []string{metadata.FieldArtist, metadata.FieldDate, metadata.FieldVenue, metadata.FieldCity, metadata.FieldFormat, metadata.FieldAdditional} {
		if v, _ := rec.Get(field); v != "" {
			fmt.Printf(" %s %-10s %s\n", ui.StyleDim.Render("-"), field, ui.StylePattern.Render(v))
		}
	}
	if rec.Date == "" {
		fmt.Printf(" %s %s\n", ui.StyleDim.Render("-"), ui.StyleDim.Render("no show date"))
	}
}

func baseName(path string) string {
	return filepath.Base(path)
}
