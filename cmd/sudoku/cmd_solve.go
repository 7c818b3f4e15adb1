// cmd/sudoku/cmd_solve.go
//
// Solve a grid from the command line. The grid is 81 characters with '0'
// or '.' for empty cells; whitespace and box-drawing characters are
// ignored, so copy-pasted layouts work too.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/numgrid/sudoku/internal/sudoku"
)

var solveFile string

var solveCmd = &cobra.Command{
	Use:   "solve [grid]",
	Short: "Solve an 81-character grid",
	Long: `Solves the given grid and prints the completed board. Warns when the
grid admits more than one solution, and fails when it admits none.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "read the grid from a file (- for stdin)")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) {
	raw, err := readGrid(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	board, err := sudoku.Parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch sudoku.CountSolutions(board, 2) {
	case 0:
		fmt.Fprintln(os.Stderr, "Error: the grid has no solution")
		os.Exit(1)
	case 1:
	default:
		fmt.Fprintln(os.Stderr, "Warning: more than one solution; printing the first found")
	}
	solved, ok := sudoku.Solve(board)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: the grid has no solution")
		os.Exit(1)
	}
	fmt.Println(solved.String())
}

// readGrid takes the grid from the argument, a file, or stdin.
func readGrid(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	var r io.Reader
	switch solveFile {
	case "":
		return "", fmt.Errorf("pass the grid as an argument or via --file")
	case "-":
		r = os.Stdin
	default:
		f, err := os.Open(solveFile)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
