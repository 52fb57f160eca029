package cmd

import (
	"github.com/abhisek/kotoba/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kotoba",
	Short: "Latihan bahasa Jepang di terminal",
	Long:  "Kotoba is a terminal app for practising Japanese with quizzes and timed tryouts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KOTOBA_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./kotoba.yaml or $XDG_CONFIG_HOME/kotoba/kotoba.yaml)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(tryoutCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(particlesCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KOTOBA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
