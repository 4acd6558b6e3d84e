// Root command for the registrar CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/internal/paths"
	"github.com/mesh-intelligence/registrar/pkg/store"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagBackend   string
	flagJSON      bool
	flagVerbose   bool
)

// Values loaded from config.yaml by PersistentPreRunE.
var (
	configDataDir string
	configBackend string
)

// reg is the store every subcommand runs against, opened by
// PersistentPreRunE and closed by PersistentPostRunE.
var reg types.Store

var rootCmd = &cobra.Command{
	Use:     "registrar",
	Short:   "Registrar manages university records",
	Version: Version,
	Long: `Registrar is a console manager for university records: students,
teachers, faculties, courses, enrollments, grades, fees, and salaries.
Records persist in a SQLite database, CSV files, or memory, selected by
the backend configuration key.`,
	PersistentPreRunE:  openStore,
	PersistentPostRunE: closeStore,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.registrar-db)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite, memory, or csv (default: sqlite)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(facultyCmd)
	rootCmd.AddCommand(studentCmd)
	rootCmd.AddCommand(teacherCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(enrollCmd)
	rootCmd.AddCommand(unenrollCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(feeCmd)
	rootCmd.AddCommand(salaryCmd)
}

// skipStore lists commands that run without an open store.
func skipStore(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore loads config.yaml and opens the configured backend.
func openStore(cmd *cobra.Command, args []string) error {
	if skipStore(cmd) {
		return nil
	}

	configDir, err := resolveConfigDir()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	configDataDir = cfg.GetString(cfgKeyDataDir)
	configBackend = cfg.GetString(cfgKeyBackend)

	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	backend := configBackend
	if flagBackend != "" {
		backend = flagBackend
	}

	s, err := store.Open(types.Config{Backend: backend, DataDir: dataDir}, newLogger())
	if err != nil {
		return err
	}
	reg = s
	return nil
}

// closeStore releases the store opened by openStore.
func closeStore(cmd *cobra.Command, args []string) error {
	if reg == nil {
		return nil
	}
	err := reg.Close()
	reg = nil
	return err
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > REGISTRAR_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > REGISTRAR_DATA_DIR env >
// default $(CWD)/.registrar-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
