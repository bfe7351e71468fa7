package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themectl/internal/controller"
	"github.com/jmylchreest/themectl/internal/document"
	"github.com/jmylchreest/themectl/internal/theme"
)

var setCmd = &cobra.Command{
	Use:   "set <auto|light|dark>",
	Short: "Store the theme preference",
	Long: `Store the theme preference for the origin.

Pages kept in sync by "themectl watch" pick up the change immediately.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{theme.Auto.String(), theme.Light.String(), theme.Dark.String()},
	RunE:      runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	p, err := theme.ParsePreference(args[0])
	if err != nil {
		return err
	}

	doc, err := document.ParseString(blankPage)
	if err != nil {
		return err
	}
	// The stored preference does not depend on the OS appearance.
	ctrl := newController(doc, nil, controller.IgnoreChanges)
	ctrl.Init()
	ctrl.SetPreference(p.String())

	if ctrl.Degraded() {
		return fmt.Errorf("failed to store preference in %s", prefStore.Path())
	}
	logger.Debug("preference stored", "theme", p, "path", prefStore.Path())
	return nil
}
