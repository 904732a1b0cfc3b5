package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/types"
)

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.Load(path, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FolderScheme != config.DefaultFolderScheme {
		t.Errorf("FolderScheme = %q; want %q", cfg.FolderScheme, config.DefaultFolderScheme)
	}

	_, err = config.Load(path, true)
	var notFound types.ErrConfigNotFound
	if !errors.As(err, &notFound) || notFound.Path != path {
		t.Errorf("Load(required) error = %v; want ErrConfigNotFound{%q}", err, path)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `output_root: /srv/concerts
filename_scheme: "%artist% - %date%"
formats: [".MKV", mp4]
presets:
  Flat:
    folder: "(Root)"
    filename: "%date% %artist%"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputRoot != "/srv/concerts" {
		t.Errorf("OutputRoot = %q", cfg.OutputRoot)
	}
	if cfg.FolderScheme != config.DefaultFolderScheme {
		t.Errorf("FolderScheme = %q; want default", cfg.FolderScheme)
	}
	if want := []string{"mkv", "mp4"}; !reflect.DeepEqual(cfg.Formats, want) {
		t.Errorf("Formats = %v; want %v", cfg.Formats, want)
	}
	if _, ok := cfg.Presets[types.DefaultPreset]; !ok {
		t.Error("Default preset missing after load")
	}
	if _, ok := cfg.Presets["Flat"]; !ok {
		t.Error("Flat preset missing after load")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("formats: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path, false); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := config.GetDefaults()
	cfg.OutputRoot = "/media/shows"
	cfg.Rename.UndoLog = "/tmp/undo.csv"

	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := config.Load(path, true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("Load() = %+v; want %+v", got, cfg)
	}
}

func TestGlobalConfigPathEnv(t *testing.T) {
	t.Setenv(config.EnvConfig, "/etc/showtitle.yml")
	if got := config.GlobalConfigPath(); got != "/etc/showtitle.yml" {
		t.Errorf("GlobalConfigPath() = %q", got)
	}

	t.Setenv(config.EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got, want := config.GlobalConfigPath(), filepath.Join("/xdg", "showtitle", "config.yml"); got != want {
		t.Errorf("GlobalConfigPath() = %q; want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*types.GlobalConfig)
		wantErr bool
	}{
		{"Defaults", func(*types.GlobalConfig) {}, false},
		{"Bad folder scheme", func(c *types.GlobalConfig) { c.FolderScheme = "$year(date" }, true},
		{"Empty filename scheme", func(c *types.GlobalConfig) { c.FilenameScheme = "" }, true},
		{"Empty output root", func(c *types.GlobalConfig) { c.OutputRoot = " " }, true},
		{"Bad preset", func(c *types.GlobalConfig) { c.Presets["X"] = types.Preset{Filename: "$nope()"} }, true},
		{"Missing active preset", func(c *types.GlobalConfig) { c.ActivePreset = "Gone" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaults()
			tt.modify(&cfg)
			if err := config.Validate(cfg); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	cfg := config.GetDefaults()

	if err := config.AddPreset(&cfg, "ByVenue", "%venue%", "%date% %artist%"); err != nil {
		t.Fatalf("AddPreset() error = %v", err)
	}
	if err := config.AddPreset(&cfg, "Broken", "$upper(", "%artist%"); err == nil {
		t.Error("AddPreset() accepted an invalid scheme")
	}
	if err := config.AddPreset(&cfg, "Archive", "%year%", "%artist%"); err != nil {
		t.Fatalf("AddPreset() error = %v", err)
	}

	want := []string{"Default", "Archive", "ByVenue"}
	if got := config.PresetNames(cfg); !reflect.DeepEqual(got, want) {
		t.Errorf("PresetNames() = %v; want %v", got, want)
	}

	if err := config.UsePreset(&cfg, "ByVenue"); err != nil {
		t.Fatalf("UsePreset() error = %v", err)
	}
	if folder, file := cfg.Schemes(); folder != "%venue%" || file != "%date% %artist%" {
		t.Errorf("Schemes() = %q, %q", folder, file)
	}

	if err := config.RemovePreset(&cfg, types.DefaultPreset); err == nil {
		t.Error("RemovePreset(Default) succeeded")
	}
	if err := config.RemovePreset(&cfg, "ByVenue"); err != nil {
		t.Fatalf("RemovePreset() error = %v", err)
	}
	if cfg.ActivePreset != types.DefaultPreset {
		t.Errorf("ActivePreset = %q; want Default", cfg.ActivePreset)
	}
	if err := config.UsePreset(&cfg, "ByVenue"); err == nil {
		t.Error("UsePreset() accepted a removed preset")
	}
}

func TestClone(t *testing.T) {
	cfg := config.GetDefaults()
	clone := cfg.Clone()

	clone.Formats[0] = "changed"
	clone.Keywords.Format[0] = "changed"
	clone.Presets["New"] = types.Preset{}

	if cfg.Formats[0] == "changed" || cfg.Keywords.Format[0] == "changed" {
		t.Error("Clone() shares slices with the original")
	}
	if _, ok := cfg.Presets["New"]; ok {
		t.Error("Clone() shares the presets map with the original")
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Phish - 2023-07-14 - MSG.mp4",
		"Goose live.MKV",
		"notes.txt",
		"cover.jpg",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "extras.mp4"), 0755); err != nil {
		t.Fatal(err)
	}

	res, err := config.Scan(dir, config.DefaultFormats)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "Goose live.MKV"),
		filepath.Join(dir, "Phish - 2023-07-14 - MSG.mp4"),
	}
	if !reflect.DeepEqual(res.Files, want) {
		t.Errorf("Files = %v; want %v", res.Files, want)
	}
	if res.TotalFiles != 5 {
		t.Errorf("TotalFiles = %d; want 5", res.TotalFiles)
	}
	if res.Undated != 1 {
		t.Errorf("Undated = %d; want 1", res.Undated)
	}
	if !res.HasMedia() {
		t.Error("HasMedia() = false")
	}

	if _, err := config.Scan(filepath.Join(dir, "missing"), config.DefaultFormats); err == nil {
		t.Error("Scan() expected error for missing directory")
	}
}
