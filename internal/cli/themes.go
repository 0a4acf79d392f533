package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sia/pkg/theme"
)

// themesCommand creates the themes command.
func (c *CLI) themesCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List available colour themes",
		Long: `List the built-in themes and those defined in the config file.

Each usable theme is shown with a swatch of its background and text colour.
Themes that declare no background or text colour cannot be rendered without
--bg-color and --fg-color; they are hidden unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			set, err := cfg.themeSet()
			if err != nil {
				return err
			}
			defaultName := cfg.Theme
			if defaultName == "" {
				defaultName = theme.DefaultName
			}
			listThemes(set, defaultName, all)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "also list themes without background or text colour")
	return cmd
}

// listThemes prints one line per theme, marking the default.
func listThemes(set *theme.Set, defaultName string, all bool) {
	var usable, incomplete int
	for _, name := range set.Names() {
		style, _ := set.Lookup(name)
		th, err := theme.FromStyle(style, theme.Overrides{})
		if err != nil {
			incomplete++
			if all {
				fmt.Fprintf(stdout, "  %s %s\n", StyleDim.Render(name), StyleWarning.Render("(incomplete)"))
			}
			continue
		}
		usable++
		marker := " "
		if name == defaultName {
			marker = StyleHighlight.Render(iconDefault)
		}
		fmt.Fprintf(stdout, "%s %s %s\n", marker, swatch(th.Background, th.Foreground), name)
	}

	fmt.Fprintln(stdout)
	printDetail("%d themes, default %s", usable, defaultName)
	if incomplete > 0 && !all {
		printDetail("%d incomplete themes hidden (use --all)", incomplete)
	}
}
