package types

import "maps"

// DefaultPreset is the name of the preset that always exists
const DefaultPreset = "Default"

// RootFolder is the output_folder value that means "use the output root"
const RootFolder = "(Root)"

// GlobalConfig represents the global configuration file (~/.config/showtitle/config.yml)
type GlobalConfig struct {
	OutputRoot     string            `yaml:"output_root"`
	FolderScheme   string            `yaml:"folder_scheme"`
	FilenameScheme string            `yaml:"filename_scheme"`
	ActivePreset   string            `yaml:"active_preset,omitempty"`
	Presets        map[string]Preset `yaml:"presets,omitempty"`
	Reference      ReferenceConfig   `yaml:"reference"`
	Formats        []string          `yaml:"formats,flow"` // Video extensions without the dot
	Keywords       KeywordConfig     `yaml:"keywords"`
	Rename         RenameConfig      `yaml:"rename"`
}

// Preset is a named folder/filename scheme pair
type Preset struct {
	Folder   string `yaml:"folder"`
	Filename string `yaml:"filename"`
}

// ReferenceConfig locates the reference lists used by the matcher
type ReferenceConfig struct {
	Dir     string `yaml:"dir"`
	Artists string `yaml:"artists,omitempty"` // Overrides <dir>/Artists.txt
	Venues  string `yaml:"venues,omitempty"`
	Cities  string `yaml:"cities,omitempty"`
	Aliases string `yaml:"aliases,omitempty"`
	Promote bool   `yaml:"promote"` // Move confirmed names to the top of their list
}

// KeywordConfig holds the token vocabularies used for format classification
type KeywordConfig struct {
	Format     []string `yaml:"format,flow"`
	Additional []string `yaml:"additional,flow"`
}

// RenameConfig controls how planned renames are applied
type RenameConfig struct {
	UndoLog  string `yaml:"undo_log,omitempty"` // CSV file receiving every applied move
	SetMtime bool   `yaml:"set_mtime"`          // Set file mtime to the show date
	TagMKV   bool   `yaml:"tag_mkv"`            // Write artist/venue/date tags with mkvpropedit
	Probe    bool   `yaml:"probe"`              // Fill missing artist/date from embedded tags
}

// Clone returns a deep copy of the global configuration
func (g *GlobalConfig) Clone() GlobalConfig {
	res := *g
	if g.Presets != nil {
		res.Presets = maps.Clone(g.Presets)
	}
	if len(g.Formats) > 0 {
		res.Formats = make([]string, len(g.Formats))
		copy(res.Formats, g.Formats)
	}
	res.Keywords = g.Keywords.Clone()
	return res
}

// Clone returns a deep copy of the keyword lists
func (k KeywordConfig) Clone() KeywordConfig {
	res := k
	if len(k.Format) > 0 {
		res.Format = make([]string, len(k.Format))
		copy(res.Format, k.Format)
	}
	if len(k.Additional) > 0 {
		res.Additional = make([]string, len(k.Additional))
		copy(res.Additional, k.Additional)
	}
	return res
}

// Schemes returns the folder and filename schemes in effect. A known
// active preset overrides the top-level schemes.
func (g *GlobalConfig) Schemes() (folder, filename string) {
	if p, ok := g.Presets[g.ActivePreset]; ok && g.ActivePreset != "" {
		return p.Folder, p.Filename
	}
	return g.FolderScheme, g.FilenameScheme
}
