package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexchase32/lessbuilder/internal/config"
	"github.com/alexchase32/lessbuilder/internal/logging"
	"github.com/alexchase32/lessbuilder/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "lessbuilder",
	Short:        "Spanish lesson player",
	Long:         "lessbuilder plays a daily Spanish lesson of interactive exercise blocks in the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, "")
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (overrides LESSBUILDER_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LESSBUILDER_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what every command that touches the database needs.
type env struct {
	cfg   *config.Config
	log   *logging.Logger
	store *store.Store
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	e.log.Sync()
}

// setup loads the config, opens the log file and the store.
func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(logging.Options{Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		log = logging.Nop()
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("store opened", "path", dbPath, "command", cmd.CommandPath())
	return &env{cfg: cfg, log: log, store: st}, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LESSBUILDER_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
