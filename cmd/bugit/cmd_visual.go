package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/canonical/bugit-v2/internal/core"
	"github.com/canonical/bugit-v2/internal/styles"
	"github.com/canonical/bugit-v2/internal/tui"
	"github.com/canonical/bugit-v2/internal/visual"
)

var visualConfigTheme string

var visualConfigCmd = &cobra.Command{
	Use:   "visual-config",
	Short: "Customize how bugit looks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := visual.LoadConfig(core.VisualConfigFile())
		if err != nil {
			cfg = visual.DefaultConfig()
		}

		switch {
		case visualConfigTheme != "":
			cfg.Theme = visualConfigTheme
		case term.IsTerminal(int(os.Stdin.Fd())):
			chosen, err := tui.RunThemePicker(cfg.Theme)
			if err != nil {
				return err
			}
			cfg.Theme = chosen
		default:
			return fmt.Errorf("no terminal; use --theme with one of: %s",
				strings.Join(visual.ThemeNames(), ", "))
		}

		if err := visual.SaveConfig(core.VisualConfigFile(), cfg); err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", styles.KEY("Theme"), styles.VALUE(cfg.Theme))
		return nil
	},
}

func init() {
	visualConfigCmd.Flags().StringVar(&visualConfigTheme, "theme", "",
		"Set the theme without the interactive picker")
	rootCmd.AddCommand(visualConfigCmd)
}
