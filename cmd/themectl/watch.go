package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themectl/internal/daemon"
	"github.com/jmylchreest/themectl/internal/store"
)

var watchOpts struct {
	output string
}

var watchCmd = &cobra.Command{
	Use:   "watch <page.html>",
	Short: "Keep a page in sync with the preference and OS appearance",
	Long: `Render the theme into a page and keep rewriting it as the OS colour
scheme changes or the preference is changed by another process (for
example "themectl set dark").

The page is rewritten in place unless -o is given. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.output, "output", "o", "",
		"Write the page to this file instead of the input")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := loadPage(args[0])
	if err != nil {
		return err
	}

	sig, release, err := newSignal()
	if err != nil {
		return err
	}
	defer release()

	loop := daemon.NewEventLoop(logger)
	ctrl := newController(doc, sig, loop.Post)
	ctrl.Init()

	out := watchOpts.output
	if out == "" {
		out = args[0]
	}
	writer := daemon.NewPageWriter(out, doc, logger)
	if _, err := writer.Write(); err != nil {
		return err
	}
	loop.SetAfterEach(writer.Flush)

	watcher, err := store.NewFileWatcher(prefStore.Path(), func() {
		loop.Post(ctrl.HandleStoreChange)
	}, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	logger.Info("watching", "page", out, "store", prefStore.Path(), "theme", ctrl.CurrentTheme())

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
