// cmd/sudoku/cmd_play.go
//
// The interactive terminal game. This is also the root command's default
// action, so plain `sudoku` drops straight into it.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/numgrid/sudoku/internal/game"
	"github.com/numgrid/sudoku/internal/tui"
)

var playSavePath string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play sudoku in the terminal",
	Long: `Starts the full-screen terminal game. An unfinished game is saved on
quit and offered for resume on the next run.`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playSavePath, "save", "", "save file path (default ~/.sudoku-save.json)")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	path := playSavePath
	if path == "" {
		var err error
		if path, err = game.DefaultSavePath(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot locate save file: %v\n", err)
			os.Exit(1)
		}
	}
	if err := tui.Run(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
