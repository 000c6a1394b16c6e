package puzzle

/*

Netwalk board solver

Propagation alone decides many boards, but not all.  For the
rest the solver runs iterative-deepening speculative trials: it
assumes a state for one undetermined edge, plays the assumption
out on a clone of the board, and if the clone runs into a
contradiction asserts the opposite state on the real board.  A
clone that merely survives proves nothing, so nothing is
asserted; a clone that comes out fully solved IS a solution, and
is handed back up the call stack for the driver to adopt.

At each depth bound the scan visits the unsolved cells in
reading order and probes the west and south edges, closed then
open.  North and east probes would be redundant: a constraint on
one side of an edge is the same constraint on the other side,
and the scan visits both cells.  Any progress restarts the scan
at depth one, since a cheap deduction may now exist.

*/

// DefaultMaxDepth is the trial depth bound used when the caller
// doesn't pick one.  Trials multiply under nesting, so real
// puzzles resolve well before this.
const DefaultMaxDepth = 32

// trialProbes is the fixed probe sequence for each unsolved
// cell.
var trialProbes = [4]struct {
	dir  Direction
	open bool
}{
	{West, false},
	{West, true},
	{South, false},
	{South, true},
}

// Solve runs the solver with the given trial depth bound.  On
// success the board holds a solution.  The error is unsolvable
// if a contradiction was derived for the board itself, or
// exhausted if the bound was reached with unsolved cells
// remaining; in the latter case the board keeps whatever partial
// progress was made.
func (b *Board) Solve(maxDepth int) error {
	solved, err := b.solve(maxDepth)
	if err != nil {
		return err
	}
	if solved == nil {
		return exhaustedError(maxDepth)
	}
	if solved != b {
		*b = *solved
	}
	return nil
}

// solve scans for profitable trials up to the given depth bound.
// Returns the solved board (the receiver, or a trial clone that
// reached a solution) if one was found, nil if the bound was
// exhausted without one.  The error return reports a
// contradiction on the receiver itself.
func (b *Board) solve(maxDepth int) (*Board, error) {
again:
	for depth := 1; depth <= maxDepth; depth++ {
		idle := true
		for idx := range b.cells {
			if b.cells[idx].solved() {
				continue
			}
			idle = false
			for _, pr := range trialProbes {
				progress, solved, err := b.attempt(depth, idx, pr.dir, pr.open)
				if err != nil {
					return nil, err
				}
				if solved != nil {
					return solved, nil
				}
				if progress {
					goto again
				}
			}
		}
		if idle {
			return b, nil
		}
	}
	return nil, nil
}

// attempt plays out one hypothesis about one edge on a clone of
// the board.  Skipped if the edge is already determined.  If the
// clone reaches a contradiction the hypothesis is refuted and
// the opposite state is forced on the real board (progress); if
// the clone's own scan finds a solution that solution is
// returned; if the clone survives inconclusively nothing can be
// asserted.  At depth one the clone gets no scan of its own, so a
// clone that propagation alone solves counts as inconclusive.
func (b *Board) attempt(depth, idx int, d Direction, open bool) (progress bool, solved *Board, err error) {
	if b.cells[idx].edgeDecided(d) {
		return false, nil, nil
	}

	trial := b.copy()
	changed, terr := trial.forceEdge(idx, d, open)
	if terr == nil && changed {
		terr = trial.checkReachability()
	}
	if terr == nil {
		solved, terr = trial.solve(depth - 1)
		if solved != nil {
			return false, solved, nil
		}
	}
	if terr == nil {
		return false, nil, nil
	}
	if !IsUnsolvable(terr) {
		return false, nil, terr
	}

	// the hypothesis is refuted, so its negation holds here
	changed, err = b.forceEdge(idx, d, !open)
	if err != nil {
		return false, nil, err
	}
	if changed {
		if err = b.checkReachability(); err != nil {
			return false, nil, err
		}
	}
	return true, nil, nil
}
