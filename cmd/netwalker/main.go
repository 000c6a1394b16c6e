// Command-line solver for toroidal Netwalk puzzles.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vlolteanu/netwalker/puzzle"
)

// exit codes for the different failure families
const (
	exitSolved = iota
	exitUnsolvable
	exitBadInput
	exitExhausted
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: netwalker <width> <height> <puzzle>")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run does the whole job against explicit streams so it can be
// exercised by tests.
func run(args []string, out, errw io.Writer) int {
	if len(args) != 3 {
		usage(errw)
		return exitBadInput
	}
	width, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(errw, "netwalker: width %q is not a number\n", args[0])
		return exitBadInput
	}
	height, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(errw, "netwalker: height %q is not a number\n", args[1])
		return exitBadInput
	}

	board, err := puzzle.New(&puzzle.Summary{Width: width, Height: height, Pipes: args[2]})
	if err != nil {
		fmt.Fprintf(errw, "netwalker: %v\n", err)
		if puzzle.IsBadInput(err) {
			return exitBadInput
		}
		return exitUnsolvable
	}

	switch err := board.Solve(puzzle.DefaultMaxDepth); {
	case err == nil:
		fmt.Fprint(out, board)
		return exitSolved
	case puzzle.IsExhausted(err):
		// show whatever the solver did pin down
		fmt.Fprint(out, board)
		fmt.Fprintf(errw, "netwalker: %v\n", err)
		return exitExhausted
	default:
		fmt.Fprintf(errw, "netwalker: %v\n", err)
		return exitUnsolvable
	}
}
