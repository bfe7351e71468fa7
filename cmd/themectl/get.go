package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themectl/internal/adapter/output"
	"github.com/jmylchreest/themectl/internal/controller"
	"github.com/jmylchreest/themectl/internal/document"
	"github.com/jmylchreest/themectl/internal/store"
	"github.com/jmylchreest/themectl/internal/theme"
)

// blankPage is rendered when a command needs the controller but no page.
const blankPage = `<!DOCTYPE html><html><head></head><body></body></html>`

var getOpts struct {
	format   string
	template string
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the theme preference and effective appearance",
	Long: `Show the stored theme preference for the origin, the appearance it
resolves to and the theme-color a page would advertise.

Examples:
  # Human readable summary
  themectl get

  # Only the effective appearance, for scripts
  themectl get --template '{{.Effective}}'

  # Machine readable
  themectl get --format json`,
	Args: cobra.NoArgs,
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	getCmd.Flags().StringVar(&getOpts.template, "template", "",
		"Custom Go template for plain output")
}

func runGet(cmd *cobra.Command, args []string) error {
	formatter, err := output.NewFormatter(output.FormatType(getOpts.format), output.FormatterOptions{
		Template: getOpts.template,
	})
	if err != nil {
		return err
	}

	sig, release, err := newSignal()
	if err != nil {
		return err
	}
	defer release()

	doc, err := document.ParseString(blankPage)
	if err != nil {
		return err
	}
	ctrl := newController(doc, sig, controller.IgnoreChanges)
	ctrl.Init()

	return formatter.Format(os.Stdout, buildStatus(ctrl, prefStore, sig.PrefersDark()))
}

// buildStatus reports the state an initialized controller rendered.
func buildStatus(ctrl *controller.Controller, fs *store.FileStore, systemDark bool) output.Status {
	s := output.Status{
		Preference:        ctrl.CurrentTheme().String(),
		Effective:         renderedAppearance(ctrl.Document()),
		SystemPrefersDark: systemDark,
		Degraded:          ctrl.Degraded(),
	}
	if meta := ctrl.Document().FindMeta(theme.MetaThemeColor); meta != nil {
		s.ThemeColor, _ = meta.Attr("content")
	}

	if fs == nil {
		return s
	}
	s.StorePath = fs.Path()
	if entry, ok, err := fs.Entry(store.KeyTheme); err == nil && ok {
		t := entry.UpdatedAt
		s.UpdatedAt = &t
	}
	if v, ok, err := fs.Get(store.KeyHasUsedDarkMode); err == nil && ok {
		s.HasUsedDarkMode = v == "true"
	}
	return s
}

// renderedAppearance reads the appearance a page root carries.
func renderedAppearance(doc *document.Document) string {
	root := doc.Root()
	if root == nil {
		return theme.Light.String()
	}
	if v, _ := root.Attr(theme.AttrTheme); v == theme.Dark.String() || root.HasClass(theme.ClassAutoDark) {
		return theme.Dark.String()
	}
	return theme.Light.String()
}
