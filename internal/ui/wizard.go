package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/reference"
	"github.com/mydehq/showtitle/internal/types"
)

const (
	optSetMtime = "set_mtime"
	optTagMKV   = "tag_mkv"
	optProbe    = "probe"
	optPromote  = "promote"
)

// RunSetupWizard walks through the main settings and writes the config
// to path. output root → preset → reference lists → options → preview.
// It reports whether the config was written.
func RunSetupWizard(path string, cfg types.GlobalConfig, dryRun bool) (bool, error) {
	cfg = cfg.Clone()
	step := 0

	outputRoot := cfg.OutputRoot
	refDir := cfg.Reference.Dir
	formats := strings.Join(cfg.Formats, ", ")
	options := enabledOptions(cfg)

	for {
		ClearAndPrintBanner(dryRun)
		switch step {
		case 0:
			err := RunForm(huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Output root").
						Description("\nFolder that receives the organized shows\n").
						Value(&outputRoot).
						Validate(func(s string) error {
							if strings.TrimSpace(s) == "" {
								return fmt.Errorf("an output root is required")
							}
							return nil
						}),
				),
			))
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					// first step, so back means abort
					fmt.Println()
					if logger != nil {
						logger.Info(StyleDim.Render("Setup cancelled"))
					}
					return false, nil
				}
				return false, err
			}
			cfg.OutputRoot = strings.TrimSpace(outputRoot)
			step++

		case 1:
			name, err := selectPreset(&cfg)
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					step--
					continue
				}
				return false, err
			}
			if err := config.UsePreset(&cfg, name); err != nil {
				return false, err
			}
			step++

		case 2:
			err := RunForm(huh.NewForm(
				huh.NewGroup(
					huh.NewNote().
						Title("Reference lists").
						Description(fmt.Sprintf("\nKnown names are read from %s, %s, %s and %s.\nMissing files are created empty.",
							reference.ArtistsFile, reference.VenuesFile, reference.CitiesFile, reference.AliasesFile)),
					huh.NewInput().
						Title("Reference folder").
						Value(&refDir),
					huh.NewInput().
						Title("Video extensions").
						Description("\nComma-separated, without dots").
						Value(&formats).
						Validate(func(s string) error {
							if len(parseCommaSeparated(s)) == 0 {
								return fmt.Errorf("at least one extension is required")
							}
							return nil
						}),
				),
			))
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					step--
					continue
				}
				return false, err
			}
			cfg.Reference.Dir = strings.TrimSpace(refDir)
			cfg.Formats = parseCommaSeparated(formats)
			step++

		case 3:
			err := RunForm(huh.NewForm(
				huh.NewGroup(
					huh.NewMultiSelect[string]().
						Title("Rename options\n").
						Options(
							huh.NewOption("Set file date to the show date", optSetMtime).Selected(slices.Contains(options, optSetMtime)),
							huh.NewOption("Tag MKV files (mkvpropedit)", optTagMKV).Selected(slices.Contains(options, optTagMKV)),
							huh.NewOption("Read artist/date from embedded tags", optProbe).Selected(slices.Contains(options, optProbe)),
							huh.NewOption("Move used names to the top of the reference lists", optPromote).Selected(slices.Contains(options, optPromote)),
						).
						Value(&options),
				),
			))
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					step--
					continue
				}
				return false, err
			}
			applyOptions(&cfg, options)
			step++

		case 4:
			if err := config.Validate(cfg); err != nil {
				return false, err
			}
			confirmed, err := showPreviewAndConfirm(cfg, path)
			if err != nil {
				if errors.Is(HandleAbort(err), ErrUserBack) {
					step--
					continue
				}
				return false, err
			}
			if !confirmed {
				fmt.Println()
				if logger != nil {
					logger.Info(StyleDim.Render("Setup cancelled"))
				}
				return false, nil
			}

			if dryRun {
				if logger != nil {
					logger.Info(StyleDim.Render("[DRY RUN] Config not written"))
				}
				return false, nil
			}
			if err := config.Save(path, cfg); err != nil {
				return false, fmt.Errorf("failed to save config: %w", err)
			}
			if cfg.Reference.Dir != "" {
				dir := filepath.Dir(config.ReferencePaths(cfg).Artists)
				if err := reference.EnsureFiles(dir, reference.ArtistsFile, reference.VenuesFile, reference.CitiesFile); err != nil {
					return true, fmt.Errorf("failed to create reference lists: %w", err)
				}
			}
			if logger != nil {
				logger.Info(fmt.Sprintf("%s: %s", StyleHeader.Render("Created config"), StylePath.Render(path)))
			}
			return true, nil
		}
	}
}

// enabledOptions lists the option keys that are switched on in cfg.
func enabledOptions(cfg types.GlobalConfig) []string {
	var opts []string
	if cfg.Rename.SetMtime {
		opts = append(opts, optSetMtime)
	}
	if cfg.Rename.TagMKV {
		opts = append(opts, optTagMKV)
	}
	if cfg.Rename.Probe {
		opts = append(opts, optProbe)
	}
	if cfg.Reference.Promote {
		opts = append(opts, optPromote)
	}
	return opts
}

// applyOptions switches the rename options of cfg to match opts.
func applyOptions(cfg *types.GlobalConfig, opts []string) {
	cfg.Rename.SetMtime = slices.Contains(opts, optSetMtime)
	cfg.Rename.TagMKV = slices.Contains(opts, optTagMKV)
	cfg.Rename.Probe = slices.Contains(opts, optProbe)
	cfg.Reference.Promote = slices.Contains(opts, optPromote)
}
