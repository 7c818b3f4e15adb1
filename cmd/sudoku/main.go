package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sudoku",
	Short: "Play, generate, and serve 9x9 sudoku puzzles",
	Long: `sudoku is a terminal sudoku game and the backend that powers it.

Run it with no arguments to play in the terminal. The serve, generate,
and solve subcommands cover the HTTP API and batch tooling.`,
	Run: runPlay,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
