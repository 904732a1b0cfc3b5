package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/renamer"
	"github.com/mydehq/showtitle/internal/scheme"
	"github.com/mydehq/showtitle/internal/types"
)

const customChoice = "__custom__"

// SampleRecord is the show used for scheme previews.
var SampleRecord = metadata.Record{
	Artist:     "Phish",
	Date:       "2023-07-14",
	Venue:      "Madison Square Garden",
	City:       "New York, NY",
	Format:     "2160p",
	Additional: "SBD",
}

// buildSchemePreview renders the sample show with the given schemes,
// relative to the output root.
func buildSchemePreview(folder, filename string) string {
	dir, base := renamer.Render(renamer.Layout{FolderScheme: folder, FilenameScheme: filename}, SampleRecord)
	return filepath.Join(dir, base+".mkv")
}

// selectPreset lets the user pick a stored preset or define a new one.
// It returns the chosen preset name.
func selectPreset(cfg *types.GlobalConfig) (string, error) {
	for {
		ClearAndPrintBanner(false)

		names := config.PresetNames(*cfg)
		opts := make([]huh.Option[string], 0, len(names)+1)
		for _, name := range names {
			p := cfg.Presets[name]
			label := fmt.Sprintf("%-10s %s", name, StyleDim.Render(buildSchemePreview(p.Folder, p.Filename)))
			opts = append(opts, huh.NewOption(label, name))
		}
		opts = append(opts, huh.NewOption("Custom...", customChoice))

		choice := cfg.ActivePreset
		err := RunForm(huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Naming preset\n").
					Description("A sample show is rendered with each preset\n").
					Options(opts...).
					Value(&choice),
			),
		))
		if err != nil {
			return "", err
		}
		if choice != customChoice {
			return choice, nil
		}

		name, err := promptCustomScheme(cfg)
		if err != nil {
			if errors.Is(HandleAbort(err), ErrUserBack) {
				continue
			}
			return "", err
		}
		return name, nil
	}
}

// promptCustomScheme asks for a preset name and its two schemes, shows a
// preview and stores the preset in cfg on confirmation.
func promptCustomScheme(cfg *types.GlobalConfig) (string, error) {
	name := ""
	folder := cfg.FolderScheme
	filename := cfg.FilenameScheme
	for {
		ClearAndPrintBanner(false)
		err := RunForm(huh.NewForm(
			huh.NewGroup(
				huh.NewNote().
					Title("Scheme Legend").
					Description("\n• %artist% %date% %venue% %city% %format% %additional%\n• %year% %month% %day% %filename%\n• $upper(x) $title(x) $left(x,n) $if(c,a,b) $year(date) ..."),
				huh.NewInput().
					Title("Preset name").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("a name is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("Folder scheme").
					Description("\nRelative to the output root. Empty or (Root) means the root itself").
					Value(&folder).
					Validate(scheme.Validate),
				huh.NewInput().
					Title("Filename scheme").
					Value(&filename).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("a filename scheme is required")
						}
						return scheme.Validate(s)
					}),
			),
		))
		if err != nil {
			return "", err
		}

		confirm := true
		err = RunForm(huh.NewForm(
			huh.NewGroup(
				huh.NewNote().
					Title("Example output").
					Description(fmt.Sprintf("\nWith these schemes, a show might be filed as:\n\n  %s", buildSchemePreview(folder, filename))),
				huh.NewConfirm().
					Title("Use this preset?").
					Value(&confirm),
			),
		))
		if err != nil {
			if errors.Is(HandleAbort(err), ErrUserBack) {
				continue
			}
			return "", err
		}
		if !confirm {
			continue
		}

		name = strings.TrimSpace(name)
		if err := config.AddPreset(cfg, name, folder, filename); err != nil {
			return "", err
		}
		return name, nil
	}
}

// showPreviewAndConfirm marshals the config to YAML and asks whether to write it.
func showPreviewAndConfirm(cfg types.GlobalConfig, path string) (bool, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return false, fmt.Errorf("failed to preview config: %w", err)
	}

	confirmed := true
	err = RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Config preview").
				Description(StyleDim.Render(path)+"\n\n"+string(data)),
			huh.NewConfirm().
				Title("Write config?").
				Value(&confirmed),
		),
	))
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// parseCommaSeparated splits a comma-separated string into trimmed, non-empty parts.
func parseCommaSeparated(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
