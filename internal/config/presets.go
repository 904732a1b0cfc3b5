package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mydehq/showtitle/internal/scheme"
	"github.com/mydehq/showtitle/internal/types"
)

// PresetNames returns the preset names, Default first and the rest sorted
func PresetNames(cfg types.GlobalConfig) []string {
	names := slices.Sorted(maps.Keys(cfg.Presets))
	if i := slices.Index(names, types.DefaultPreset); i > 0 {
		names = slices.Delete(names, i, i+1)
		names = slices.Insert(names, 0, types.DefaultPreset)
	}
	return names
}

// AddPreset stores a named scheme pair, replacing any preset of the same name
func AddPreset(cfg *types.GlobalConfig, name, folder, filename string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("preset name is empty")
	}
	for _, s := range []string{folder, filename} {
		if err := scheme.Validate(s); err != nil {
			return err
		}
	}
	if cfg.Presets == nil {
		cfg.Presets = map[string]types.Preset{}
	}
	cfg.Presets[name] = types.Preset{Folder: folder, Filename: filename}
	return nil
}

// RemovePreset deletes a preset. The Default preset cannot be removed and
// removing the active preset makes Default active.
func RemovePreset(cfg *types.GlobalConfig, name string) error {
	if name == types.DefaultPreset {
		return fmt.Errorf("the %s preset cannot be removed", types.DefaultPreset)
	}
	if _, ok := cfg.Presets[name]; !ok {
		return fmt.Errorf("preset %q does not exist", name)
	}
	delete(cfg.Presets, name)
	if cfg.ActivePreset == name {
		cfg.ActivePreset = types.DefaultPreset
	}
	return nil
}

// UsePreset makes name the active preset
func UsePreset(cfg *types.GlobalConfig, name string) error {
	p, ok := cfg.Presets[name]
	if !ok {
		return fmt.Errorf("preset %q does not exist", name)
	}
	cfg.ActivePreset = name
	cfg.FolderScheme = p.Folder
	cfg.FilenameScheme = p.Filename
	return nil
}
