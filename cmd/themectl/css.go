package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themectl/internal/theme"
)

var cssOpts struct {
	dir      string
	embedded bool
}

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the toggle stylesheet",
	Long: `Print the stylesheet for the theme toggle and the auto helper classes.

A toggle.css in ~/.config/themectl/themes overrides the built-in one;
@import statements are inlined.`,
	Args: cobra.NoArgs,
	RunE: runCSS,
}

func init() {
	rootCmd.AddCommand(cssCmd)

	cssCmd.Flags().StringVar(&cssOpts.dir, "dir", "",
		"Directory containing toggle.css (default: ~/.config/themectl/themes)")
	cssCmd.Flags().BoolVar(&cssOpts.embedded, "embedded", false,
		"Print the built-in stylesheet, ignoring overrides")
}

func runCSS(cmd *cobra.Command, args []string) error {
	sheet := theme.EmbeddedStylesheet()
	if !cssOpts.embedded {
		var err error
		if sheet, err = theme.LoadStylesheet(cssOpts.dir); err != nil {
			return fmt.Errorf("failed to load stylesheet: %w", err)
		}
	}
	if sheet.Path != "" {
		logger.Debug("using stylesheet override", "path", sheet.Path)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), sheet.CSS)
	return err
}
