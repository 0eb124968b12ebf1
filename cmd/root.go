package cmd

import (
	"fmt"

	"github.com/abhisek/lingodrill/internal/config"
	"github.com/abhisek/lingodrill/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lingodrill",
	Short: "Spaced-repetition vocabulary drills in the terminal",
	Long: `lingodrill drills a vocabulary corpus of characters, words and sentences
with multiple choice, dictation, speaking and handwriting rounds, and
schedules reviews with a Leitner-style interval.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGODRILL_DB)")
	rootCmd.PersistentFlags().String("sheet", "", "Path to an xlsx corpus (overrides LINGODRILL_SHEET)")
	rootCmd.PersistentFlags().String("backend", "", "Corpus backend: sqlite or xlsx (overrides LINGODRILL_BACKEND)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before reading settings")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the env file and LINGODRILL_* variables, then applies
// the persistent flags, which win over both.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, fmt.Errorf("read settings: %w", err)
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("sheet"); v != "" {
		cfg.SheetPath = v
		// A sheet on the command line implies the xlsx backend unless one
		// is named explicitly.
		if !cmd.Flags().Changed("backend") {
			cfg.Backend = config.BackendXLSX
		}
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Backend = config.Backend(v)
	}

	dbPath, err := resolveDBPath(cfg.DBPath)
	if err != nil {
		return cfg, fmt.Errorf("resolve DB path: %w", err)
	}
	cfg.DBPath = dbPath

	return cfg, cfg.Validate()
}

// resolveDBPath returns the configured path, or the default XDG path.
func resolveDBPath(p string) (string, error) {
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
