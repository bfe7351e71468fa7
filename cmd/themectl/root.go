// Package main provides the CLI entrypoint for themectl.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themectl/internal/appearance"
	"github.com/jmylchreest/themectl/internal/config"
	"github.com/jmylchreest/themectl/internal/controller"
	"github.com/jmylchreest/themectl/internal/document"
	"github.com/jmylchreest/themectl/internal/store"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		origin     string
		appearance string
	}
	logger *slog.Logger

	// prefStore is the per-origin preference store
	prefStore *store.FileStore
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "themectl",
	Short: "Auto/light/dark theme toggle for HTML pages",
	Long: `themectl manages a three-way theme preference (auto, light, dark) and
renders it into HTML pages: the root data-theme attribute, the auto helper
classes, the theme-color meta tag and a dropdown toggle in the page
navigation.

In auto mode the page follows the desktop colour scheme, read from the
freedesktop settings portal or the terminal background.

Running themectl without a subcommand launches the interactive TUI.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Flags override the config file
		if globalOpts.origin != "" {
			cfg.Store.Origin = globalOpts.origin
			cfg.Store.Path = ""
		}
		if globalOpts.appearance != "" {
			cfg.Appearance.Source = globalOpts.appearance
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		storePath, err := cfg.StorePath()
		if err != nil {
			return err
		}
		prefStore = store.NewFileStore(storePath, cfg.Store.Origin)
		logger.Debug("using preference store", "path", storePath, "origin", cfg.Store.Origin)

		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/themectl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.origin, "origin", "",
		"Site origin the preference is scoped to (default: localhost)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.appearance, "appearance", "",
		"OS appearance source (auto, portal, terminal, light, dark)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newSignal returns the configured appearance signal and a func releasing it.
func newSignal() (appearance.Signal, func(), error) {
	sig, err := appearance.Detect(cfg.Appearance.Source, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read OS appearance: %w", err)
	}
	release := func() {}
	if p, ok := sig.(*appearance.Portal); ok {
		release = p.Close
	}
	return sig, release, nil
}

// newController builds a controller for doc from the global configuration.
func newController(doc *document.Document, sig appearance.Signal, dispatch func(func())) *controller.Controller {
	return controller.New(controller.Options{
		Document:             doc,
		Store:                prefStore,
		Signal:               sig,
		Logger:               logger,
		NavClass:             cfg.Document.NavClass,
		ForceDarkOnLightAuto: cfg.Compat.ForceDarkOnLightAuto,
		Dispatch:             dispatch,
	})
}

// loadPage parses the HTML page at path.
func loadPage(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := document.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
