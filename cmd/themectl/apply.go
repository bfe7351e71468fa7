package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themectl/internal/controller"
	"github.com/jmylchreest/themectl/internal/daemon"
)

var applyOpts struct {
	output  string
	inPlace bool
}

var applyCmd = &cobra.Command{
	Use:   "apply <page.html>",
	Short: "Render the theme toggle into a page",
	Long: `Render the stored preference into an HTML page once: set the root
data-theme attribute and auto helper classes, update the theme-color meta
tag and add the toggle to the navigation container.

Without -o the page is written to stdout.

Examples:
  themectl apply index.html -o public/index.html
  themectl apply --in-place index.html`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyOpts.output, "output", "o", "",
		"Write the page to this file instead of stdout")
	applyCmd.Flags().BoolVarP(&applyOpts.inPlace, "in-place", "i", false,
		"Replace the input page")
}

func runApply(cmd *cobra.Command, args []string) error {
	if applyOpts.inPlace && applyOpts.output != "" {
		return fmt.Errorf("--in-place and --output are mutually exclusive")
	}

	doc, err := loadPage(args[0])
	if err != nil {
		return err
	}

	sig, release, err := newSignal()
	if err != nil {
		return err
	}
	defer release()

	ctrl := newController(doc, sig, controller.IgnoreChanges)
	ctrl.Init()
	if !ctrl.HasWidget() {
		logger.Warn("page has no navigation container, toggle not added", "nav_class", cfg.Document.NavClass)
	}

	out := applyOpts.output
	if applyOpts.inPlace {
		out = args[0]
	}
	if out == "" {
		return doc.Render(os.Stdout)
	}
	if err := daemon.WriteFileAtomic(out, []byte(doc.String())); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	logger.Debug("page written", "path", out, "theme", ctrl.CurrentTheme())
	return nil
}
