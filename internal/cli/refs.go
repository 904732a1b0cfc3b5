package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/reference"
	"github.com/mydehq/showtitle/internal/ui"
)

var refsCmd = &cobra.Command{
	Use:     "refs",
	Aliases: []string{"ref"},
	Short:   "Show and edit the reference lists",
	Long: `Shows where the artist, venue and city lists and the alias table are read
from, with the number of entries in each.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		paths := config.ReferencePaths(cfg)
		refs, err := reference.LoadSet(paths)
		if err != nil {
			return err
		}
		for _, row := range []struct {
			kind string
			path string
			d    *reference.Dictionary
		}{
			{"artists", paths.Artists, refs.Artists},
			{"venues", paths.Venues, refs.Venues},
			{"cities", paths.Cities, refs.Cities},
			{"aliases", paths.Aliases, refs.Aliases},
		} {
			fmt.Printf("%-8s %5d  %s\n", ui.StyleCommand.Render(row.kind), row.d.Len(), ui.StylePath.Render(row.path))
		}
		return nil
	},
}

var refsAddCmd = &cobra.Command{
	Use:   "add <artists|venues|cities> <name>",
	Short: "Put a name at the top of a reference list",
	Example: `  showtitle refs add venues "Red Rocks Amphitheatre"
  showtitle refs add cities "Morrison, CO"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		paths := config.ReferencePaths(cfg)
		var path string
		switch strings.ToLower(args[0]) {
		case "artists", "artist":
			path = paths.Artists
		case "venues", "venue":
			path = paths.Venues
		case "cities", "city":
			path = paths.Cities
		default:
			return fmt.Errorf("unknown reference list %q (want artists, venues or cities)", args[0])
		}
		name := strings.Join(args[1:], " ")
		if err := reference.Promote(path, nil, name); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("%s: %s", ui.StyleHeader.Render("Added"), ui.StyleCommand.Render(name)), "file", path)
		return nil
	},
}

var refsAliasCmd = &cobra.Command{
	Use:   "alias [alias] [artist]",
	Short: "List or add artist aliases",
	Long: `Without arguments, lists the alias table. With two arguments, maps an
alias to the artist name it stands for.`,
	Example: `  showtitle refs alias
  showtitle refs alias ph Phish`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := config.ReferencePaths(cfg).Aliases
		aliases, err := reference.LoadAliases(path)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			for _, k := range slices.Sorted(maps.Keys(aliases)) {
				fmt.Printf("%-16s %s %s\n", ui.StylePattern.Render(k), ui.StyleDim.Render("→"), aliases[k])
			}
			return nil
		}

		alias, artist := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
		if alias == "" || artist == "" {
			return fmt.Errorf("alias and artist must not be empty")
		}
		if aliases == nil {
			aliases = map[string]string{}
		}
		aliases[alias] = artist
		if err := reference.SaveAliases(path, aliases); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("%s: %s → %s", ui.StyleHeader.Render("Alias"), ui.StylePattern.Render(alias), ui.StyleCommand.Render(artist)))
		return nil
	},
}

func init() {
	refsCmd.AddCommand(refsAddCmd, refsAliasCmd)
	RootCmd.AddCommand(refsCmd)
}
