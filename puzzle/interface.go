// Package puzzle provides a model for toroidal Netwalk puzzles
// and a solver for them.
//
// A puzzle is a grid of pipe pieces — deadends, lines, elbows
// and tees — on a torus: the top row wraps to the bottom and the
// left column to the right.  A solution rotates every piece so
// that each stub meets a matching stub across its edge and the
// non-empty pieces form one connected network.
//
// For each cell the implementation maintains the set of
// rotations the piece can still take, together with per-edge
// stake counts that summarize how many candidates keep each edge
// open.  Constraint propagation drives the stake counts to a
// fixed point; when propagation stalls, the solver runs
// speculative trials on cloned boards and applies the
// contrapositive of every hypothesis that ends in contradiction.
package puzzle

/*

Exported construction and transport types

*/

// A Summary is the compact, serializable description of a
// puzzle: its dimensions and its pipe string, one hex digit per
// cell in reading order.
type Summary struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pipes  string `json:"pipes"`
}

// The State of a board gives its summary data, solving progress,
// and the rendered diagram, ready for JSON transport.
type State struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Pipes    string  `json:"pipes"`
	Solved   bool    `json:"solved"`
	Unsolved int     `json:"unsolved"`
	Diagram  string  `json:"diagram"`
	Errors   []Error `json:"errors,omitempty"`
}

// New builds a board from a summary.  The dimensions must be
// positive and the pipe string must decode to width*height
// pieces.  Construction already runs a full propagation pass and
// the reachability check, so a board that these two already
// refute fails here with an unsolvable Error.  Boards that only
// the search can refute build fine and fail later, in Solve.
func New(summary *Summary) (*Board, error) {
	if summary.Width < 1 {
		return nil, argumentError(WidthAttribute, summary.Width, TooSmallCondition, 1)
	}
	if summary.Height < 1 {
		return nil, argumentError(HeightAttribute, summary.Height, TooSmallCondition, 1)
	}
	kinds, err := decodePipes(summary.Width, summary.Height, summary.Pipes)
	if err != nil {
		return nil, err
	}
	return newBoard(summary.Width, summary.Height, summary.Pipes, kinds)
}

// Summary returns the serializable description of the board.
func (b *Board) Summary() *Summary {
	return &Summary{Width: b.width, Height: b.height, Pipes: b.pipes}
}

// State returns the current solving state of the board.
func (b *Board) State() *State {
	return &State{
		Width:    b.width,
		Height:   b.height,
		Pipes:    b.pipes,
		Solved:   b.Solved(),
		Unsolved: len(b.unsolved),
		Diagram:  b.String(),
	}
}
