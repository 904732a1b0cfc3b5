package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mydehq/showtitle"
	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/metadata"
)

// Walks a directory and prints, for every video, the inferred record and
// where the active preset would file it.
func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	cfg, err := config.LoadGlobal()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !config.IsVideo(d.Name(), cfg.Formats) {
			return nil
		}

		rec, err := showtitle.Infer(path, showtitle.WithConfig(cfg))
		if err != nil {
			return err
		}
		fmt.Printf("File:   %s\n", d.Name())
		fmt.Printf("Record: %+v\n", rec)
		if rec.Date == "" {
			fmt.Print("Target: (skipped, no show date)\n\n")
			return nil
		}
		dir, base, err := showtitle.Render(rec.WithFilename(metadata.BaseName(path)), showtitle.WithConfig(cfg))
		if err != nil {
			return err
		}
		fmt.Printf("Target: %s\n\n", filepath.Join(dir, base+filepath.Ext(path)))
		return nil
	})

	if err != nil {
		fmt.Printf("Error walking path: %v\n", err)
	}
}
