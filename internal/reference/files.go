package reference

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Default reference file names inside the reference directory.
const (
	ArtistsFile = "Artists.txt"
	VenuesFile  = "Venues.txt"
	CitiesFile  = "Cities.txt"
	AliasesFile = "artist_aliases.json"
)

var logger = log.Default()

// SetLogger injects the application logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Set bundles the three reference dictionaries and the alias table used
// by the filename matcher.
type Set struct {
	Artists *Dictionary
	Venues  *Dictionary
	Cities  *Dictionary
	Aliases *Dictionary
}

// Paths locates the reference files on disk.
type Paths struct {
	Artists string `yaml:"artists"`
	Venues  string `yaml:"venues"`
	Cities  string `yaml:"cities"`
	Aliases string `yaml:"aliases"`
}

// DefaultPaths returns the standard file names under dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		Artists: filepath.Join(dir, ArtistsFile),
		Venues:  filepath.Join(dir, VenuesFile),
		Cities:  filepath.Join(dir, CitiesFile),
		Aliases: filepath.Join(dir, AliasesFile),
	}
}

// LoadSet reads every reference file named in p. Missing files yield empty
// dictionaries.
func LoadSet(p Paths) (*Set, error) {
	artists, err := LoadList(p.Artists)
	if err != nil {
		return nil, err
	}
	venues, err := LoadList(p.Venues)
	if err != nil {
		return nil, err
	}
	cities, err := LoadList(p.Cities)
	if err != nil {
		return nil, err
	}
	aliases, err := LoadAliases(p.Aliases)
	if err != nil {
		return nil, err
	}
	return &Set{
		Artists: artists,
		Venues:  venues,
		Cities:  cities,
		Aliases: FromAliases(aliases),
	}, nil
}

// LoadList reads a newline separated reference file. A missing file is not
// an error and produces an empty dictionary.
func LoadList(path string) (*Dictionary, error) {
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Reference list not found", "path", path)
			return New(), nil
		}
		return nil, fmt.Errorf("failed to open reference list: %w", err)
	}
	defer f.Close()

	d, err := ReadList(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	logger.Debug("Loaded reference list", "path", path, "entries", d.Len())
	return d, nil
}

// ReadList builds a dictionary from one entry per line.
func ReadList(r io.Reader) (*Dictionary, error) {
	d := New()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		d.Add(sc.Text())
	}
	return d, sc.Err()
}

// LoadAliases reads the alias → canonical artist JSON object. A missing
// file yields an empty map.
func LoadAliases(path string) (map[string]string, error) {
	aliases := map[string]string{}
	if path == "" {
		return aliases, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return aliases, nil
		}
		return nil, fmt.Errorf("failed to read aliases: %w", err)
	}
	if err := json.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("failed to parse aliases %s: %w", path, err)
	}
	logger.Debug("Loaded artist aliases", "path", path, "entries", len(aliases))
	return aliases, nil
}

// SaveAliases writes the alias table as indented JSON, keeping non-ASCII
// names readable.
func SaveAliases(path string, aliases map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(aliases); err != nil {
		return fmt.Errorf("failed to encode aliases: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Promote moves value to the top of the reference file at path, removing
// any case-insensitive duplicate, and records it in d.
func Promote(path string, d *Dictionary, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	var lines []string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		for _, ln := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			ln = strings.TrimRight(ln, "\r")
			if ln == "" || strings.EqualFold(strings.TrimSpace(ln), value) {
				continue
			}
			lines = append(lines, ln)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines = append([]string{value}, lines...)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if d != nil {
		d.Add(value)
	}
	logger.Debug("Promoted reference entry", "path", filepath.Base(path), "value", value)
	return nil
}

// EnsureFiles creates any missing reference files under dir as empty files.
func EnsureFiles(dir string, names ...string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		content := []byte{}
		if strings.HasSuffix(name, ".json") {
			content = []byte("{}\n")
		}
		if err := os.WriteFile(path, content, 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		logger.Info("Created reference file", "path", path)
	}
	return nil
}
