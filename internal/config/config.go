// Package config loads, validates and saves the global showtitle configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/mydehq/showtitle/internal/matcher"
	"github.com/mydehq/showtitle/internal/reference"
	"github.com/mydehq/showtitle/internal/scheme"
	"github.com/mydehq/showtitle/internal/types"
)

const (
	// AppName names the config directory
	AppName = "showtitle"
	// ConfigFile is the global config file name
	ConfigFile = "config.yml"
	// EnvConfig overrides the global config path
	EnvConfig = "SHOWTITLE_CONFIG"

	DefaultFolderScheme   = "%artist%/$year(date)"
	DefaultFilenameScheme = "%artist% - %date% - %venue% - %city% [%format%] [%additional%]"
)

// DefaultFormats are the video extensions picked up by Scan
var DefaultFormats = []string{"mp4", "mkv", "mov", "m4v", "avi", "flv", "webm", "ts", "mpg", "mpeg"}

var logger = log.Default()

// SetLogger injects the application logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Dir returns the showtitle config directory
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", AppName)
}

// GlobalConfigPath returns the global config path, honouring SHOWTITLE_CONFIG
func GlobalConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(Dir(), ConfigFile)
}

// GetDefaults returns the built-in configuration
func GetDefaults() types.GlobalConfig {
	home, _ := os.UserHomeDir()
	return types.GlobalConfig{
		OutputRoot:     filepath.Join(home, "Videos", "Concerts"),
		FolderScheme:   DefaultFolderScheme,
		FilenameScheme: DefaultFilenameScheme,
		ActivePreset:   types.DefaultPreset,
		Presets: map[string]types.Preset{
			types.DefaultPreset: {Folder: DefaultFolderScheme, Filename: DefaultFilenameScheme},
		},
		Reference: types.ReferenceConfig{
			Dir:     filepath.Join(Dir(), "reference"),
			Promote: true,
		},
		Formats: slices.Clone(DefaultFormats),
		Keywords: types.KeywordConfig{
			Format:     slices.Clone(matcher.DefaultFormatKeywords),
			Additional: slices.Clone(matcher.DefaultAdditionalKeywords),
		},
		Rename: types.RenameConfig{
			UndoLog: filepath.Join(Dir(), "undo.csv"),
			Probe:   true,
		},
	}
}

// LoadGlobal loads the global config from GlobalConfigPath
func LoadGlobal() (types.GlobalConfig, error) {
	return Load(GlobalConfigPath(), false)
}

// Load reads the config at path on top of the defaults. A missing file
// yields the defaults unless required is set.
func Load(path string, required bool) (types.GlobalConfig, error) {
	cfg := GetDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return cfg, types.ErrConfigNotFound{Path: path}
			}
			logger.Debug("No global config, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GetDefaults(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	normalizeConfig(&cfg)
	logger.Debug("Loaded global config", "path", path)
	return cfg, nil
}

// Save writes cfg as YAML to path
func Save(path string, cfg types.GlobalConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	logger.Debug("Saved global config", "path", path)
	return nil
}

// Validate checks every scheme in cfg and the output root
func Validate(cfg types.GlobalConfig) error {
	var errs []error
	if strings.TrimSpace(cfg.OutputRoot) == "" {
		errs = append(errs, errors.New("output_root is empty"))
	}
	if strings.TrimSpace(cfg.FilenameScheme) == "" {
		errs = append(errs, errors.New("filename_scheme is empty"))
	}
	for _, s := range []string{cfg.FolderScheme, cfg.FilenameScheme} {
		if err := scheme.Validate(s); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range PresetNames(cfg) {
		p := cfg.Presets[name]
		for _, s := range []string{p.Folder, p.Filename} {
			if err := scheme.Validate(s); err != nil {
				errs = append(errs, fmt.Errorf("preset %s: %w", name, err))
			}
		}
	}
	if cfg.ActivePreset != "" {
		if _, ok := cfg.Presets[cfg.ActivePreset]; !ok {
			errs = append(errs, fmt.Errorf("active preset %q does not exist", cfg.ActivePreset))
		}
	}
	return errors.Join(errs...)
}

// ReferencePaths resolves the reference file locations of cfg
func ReferencePaths(cfg types.GlobalConfig) reference.Paths {
	p := reference.DefaultPaths(expandHome(cfg.Reference.Dir))
	override := func(dst *string, v string) {
		if v != "" {
			*dst = expandHome(v)
		}
	}
	override(&p.Artists, cfg.Reference.Artists)
	override(&p.Venues, cfg.Reference.Venues)
	override(&p.Cities, cfg.Reference.Cities)
	override(&p.Aliases, cfg.Reference.Aliases)
	return p
}

// OutputRoot returns the output root with ~ expanded
func OutputRoot(cfg types.GlobalConfig) string {
	return expandHome(cfg.OutputRoot)
}

// normalizeConfig repairs values that would make the config unusable.
func normalizeConfig(cfg *types.GlobalConfig) {
	if cfg.Presets == nil {
		cfg.Presets = map[string]types.Preset{}
	}
	if _, ok := cfg.Presets[types.DefaultPreset]; !ok {
		cfg.Presets[types.DefaultPreset] = types.Preset{Folder: DefaultFolderScheme, Filename: DefaultFilenameScheme}
	}
	for i, f := range cfg.Formats {
		cfg.Formats[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = slices.Clone(DefaultFormats)
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
