package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themectl/internal/daemon"
	"github.com/jmylchreest/themectl/internal/document"
	"github.com/jmylchreest/themectl/internal/store"
	"github.com/jmylchreest/themectl/internal/theme"
	"github.com/jmylchreest/themectl/internal/tui"
)

// demoPage is used when the TUI is started without a page.
const demoPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>themectl</title></head>
<body><nav><ul class="` + theme.DefaultNavClass + `"><li><a href="/">Home</a></li></ul></nav></body>
</html>`

var tuiOpts struct {
	output string
}

var tuiCmd = &cobra.Command{
	Use:   "tui [page.html]",
	Short: "Launch the interactive theme toggle",
	Long: `Launch the terminal theme toggle.

With a page argument the page is rewritten on every change (or written to
-o). Without one a built-in demo page is used and nothing is written.

Key bindings:
  enter/space  Open the dropdown, select the highlighted option
  ↑/↓, k/j     Move within the dropdown
  esc          Close the dropdown
  a/l/d        Switch to auto, light or dark directly
  ?            Show help
  q            Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVarP(&tuiOpts.output, "output", "o", "",
		"Write the page to this file instead of the input")
}

func runTUI(cmd *cobra.Command, args []string) error {
	var (
		doc *document.Document
		err error
		out string
	)
	if len(args) > 0 {
		if doc, err = loadPage(args[0]); err != nil {
			return err
		}
		out = args[0]
	} else if doc, err = document.ParseString(demoPage); err != nil {
		return err
	}
	if tuiOpts.output != "" {
		out = tuiOpts.output
	}

	sig, release, err := newSignal()
	if err != nil {
		return err
	}
	defer release()

	dispatcher := tui.NewDispatcher()
	ctrl := newController(doc, sig, dispatcher.Post)
	ctrl.Init()

	var onChange func()
	if out != "" {
		writer := daemon.NewPageWriter(out, doc, logger)
		writer.Flush()
		onChange = writer.Flush
	}

	watcher, err := store.NewFileWatcher(prefStore.Path(), func() {
		dispatcher.Post(ctrl.HandleStoreChange)
	}, logger)
	if err != nil {
		logger.Warn("failed to watch preference store", "error", err)
	} else if err := watcher.Start(); err != nil {
		logger.Warn("failed to watch preference store", "error", err)
	} else {
		defer watcher.Stop()
	}

	return tui.Run(tui.New(ctrl, tui.Options{
		Dispatcher: dispatcher,
		OnChange:   onChange,
		ShowHelp:   cfg.TUI.ShowHelp,
	}))
}
