package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollisk/paperwright/internal/app"
	"github.com/hollisk/paperwright/internal/config"
	"github.com/hollisk/paperwright/internal/core/power"
	"github.com/hollisk/paperwright/internal/input"
	"github.com/hollisk/paperwright/internal/lifecycle"
	"github.com/hollisk/paperwright/internal/render"
	"github.com/hollisk/paperwright/internal/storage"
	"github.com/hollisk/paperwright/internal/util"
)

var (
	// Logging related
	debug bool

	// Paths
	projectsDir string
	configPath  string

	// Display geometry
	displayCols int
	displayRows int

	// Timers (seconds, matching the config file)
	autosaveIdleSec int
	shutdownIdleSec int
	sessionGapSec   int

	timezone   string
	noPowerOff bool

	rootCmd = &cobra.Command{
		Use:   "paperwright [flags]",
		Short: "Distraction-free writing appliance",
		Long: `paperwright is the writing application of a single-user e-paper
writing device: a daily journal, a set of project files, and nothing else.

It renders the e-paper panel on an ANSI terminal, autosaves the open
buffer after a short idle gap, and powers the device off after a long one.

Examples:
  paperwright                                  # Run with default settings
  paperwright --projects-dir ~/writing         # Use another projects directory
  paperwright --no-poweroff                    # Development host: never power off
  paperwright consolidate                      # Fold elapsed months into bundles
  paperwright consolidate 2024-03              # Fold one specific month
  paperwright files                            # List files and lifecycle states`,
		RunE: runAppliance,
	}
)

const (
	defaultLogFile     = "~/.paperwright/logs/app.log"
	defaultProjectsDir = "~/paperwright/projects"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&projectsDir, "projects-dir", defaultProjectsDir,
		"Projects directory path")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (JSON)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone setting (e.g., Europe/Berlin, UTC)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.Flags().IntVar(&displayCols, "cols", 0,
		"Display width in text cells (0 = config default)")
	rootCmd.Flags().IntVar(&displayRows, "rows", 0,
		"Display height in text cells (0 = config default)")
	rootCmd.Flags().IntVar(&autosaveIdleSec, "autosave-idle", 0,
		"Seconds of idle before a dirty buffer is persisted")
	rootCmd.Flags().IntVar(&shutdownIdleSec, "shutdown-idle", 0,
		"Seconds of idle before the device powers off")
	rootCmd.Flags().IntVar(&sessionGapSec, "session-gap", 0,
		"Journal idle gap in seconds that starts a new session marker")
	rootCmd.Flags().BoolVar(&noPowerOff, "no-poweroff", false,
		"Log the shutdown instead of powering off (development hosts)")
}

// setup loads the configuration, applies flag overrides, and initializes
// the global logger and time provider. Every subcommand starts here.
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(expandPath(configPath))
	if err != nil {
		return nil, err
	}

	if cfg.ProjectsDir == config.Default().ProjectsDir || cmd.Flags().Changed("projects-dir") {
		cfg.ProjectsDir = projectsDir
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	if displayCols > 0 {
		cfg.DisplayCols = displayCols
	}
	if displayRows > 0 {
		cfg.DisplayRows = displayRows
	}
	if autosaveIdleSec > 0 {
		cfg.AutosaveIdle = time.Duration(autosaveIdleSec) * time.Second
	}
	if shutdownIdleSec > 0 {
		cfg.ShutdownIdle = time.Duration(shutdownIdleSec) * time.Second
	}
	if sessionGapSec > 0 {
		cfg.SessionGap = time.Duration(sessionGapSec) * time.Second
	}
	cfg.ProjectsDir = expandPath(cfg.ProjectsDir)
	cfg.Debug = debug

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = expandPath(defaultLogFile)
	}
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, cfg.LogFormat, debug)

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize timezone: %w", err)
	}

	if err := ensureDir(cfg.ProjectsDir); err != nil {
		return nil, fmt.Errorf("failed to create projects directory: %w", err)
	}
	return cfg, nil
}

func runAppliance(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := storage.NewLocal(cfg.ProjectsDir)
	if err != nil {
		return fmt.Errorf("failed to open projects directory: %w", err)
	}
	manager := lifecycle.NewManager(store, cfg.SessionGap)

	reader, err := input.NewTerminalReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	defer reader.Close()

	target := render.NewTerminal(cfg.DisplayCols, cfg.DisplayRows)

	var platform power.Platform = power.SystemPlatform{}
	if noPowerOff {
		platform = power.SimulatedPlatform{}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return app.New(cfg, manager, target, reader.Events(), platform).Run(ctx)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
