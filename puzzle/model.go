package puzzle

/*

Netwalk board representation

*/

/*

Cells

A cell holds the set of still-possible rotations for its piece
and, for each direction, the stake: the number of candidates
that put a stub on that edge.  A stake of zero means the edge is
certainly closed, a stake equal to the candidate count means it
is certainly open, and anything in between leaves the edge
undetermined.

*/

type cell struct {
	kind       Kind
	candidates pieceSet
	stakes     [directionCount]int
}

// newCell populates a cell with the full rotation orbit for its
// kind and refreshes the stakes.
func newCell(k Kind) cell {
	c := cell{kind: k, candidates: rotations(k)}
	c.refreshStakes()
	return c
}

// refreshStakes recomputes the stakes from the candidate set.
// Must be called after any candidate removal.
func (c *cell) refreshStakes() {
	c.stakes = [directionCount]int{}
	for _, p := range c.candidates {
		for d := North; d < directionCount; d++ {
			if p.Stub(d) {
				c.stakes[d]++
			}
		}
	}
}

// restrict retains the candidates whose stub on direction d
// matches the requested state, refreshing the stakes.  Returns
// the number of candidates removed.
func (c *cell) restrict(d Direction, open bool) int {
	removed := c.candidates.retain(d, open)
	if removed > 0 {
		c.refreshStakes()
	}
	return removed
}

// solved: a cell with a single candidate is decided.
func (c *cell) solved() bool {
	return len(c.candidates) == 1
}

// edgeDecided reports whether the edge on direction d is
// certainly closed or certainly open.
func (c *cell) edgeDecided(d Direction) bool {
	return c.stakes[d] == 0 || c.stakes[d] == len(c.candidates)
}

/*

Boards

*/

// A Board is a toroidal grid of cells under solution.  The
// non-empty set is fixed at construction; the unsolved set and
// the per-cell candidate sets only ever shrink.
type Board struct {
	width  int
	height int
	pipes  string
	cells  []cell

	nonEmpty intset
	unsolved intset
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Solved reports whether every non-empty cell is decided.
func (b *Board) Solved() bool { return len(b.unsolved) == 0 }

// newBoard builds a board from decoded piece kinds, runs the
// initial propagation pass over every cell, and checks
// reachability.  The kinds slice must have width*height entries.
func newBoard(width, height int, pipes string, kinds []Kind) (*Board, error) {
	b := &Board{
		width:  width,
		height: height,
		pipes:  pipes,
		cells:  make([]cell, len(kinds)),
	}
	work := make(intset, 0, len(kinds))
	for i, k := range kinds {
		b.cells[i] = newCell(k)
		if k != Empty {
			b.nonEmpty.insert(i)
			b.unsolved.insert(i)
		}
		work = append(work, i)
	}
	if err := b.propagate(work); err != nil {
		return nil, err
	}
	if err := b.checkReachability(); err != nil {
		return nil, err
	}
	return b, nil
}

/*

Propagation

The propagator maintains one contract: whenever a cell's stake
on some direction is zero or equal to its candidate count, the
neighbor across that edge must agree.  Work runs as an explicit
queue of dirty cells rather than recursion, so deep cascades on
large boards cannot grow the stack.  Every enqueue follows a
strict shrink of some candidate set, which bounds the total work
at four edge-forcings per cell.

*/

// propagate drains the matching-stub rule to a fixed point
// starting from the given dirty cells.  The slice is consumed.
func (b *Board) propagate(work intset) error {
	for len(work) > 0 {
		idx := work[len(work)-1]
		work = work[:len(work)-1]
		c := &b.cells[idx]
		for d := North; d < directionCount; d++ {
			var open bool
			switch c.stakes[d] {
			case 0:
				open = false
			case len(c.candidates):
				open = true
			default:
				continue
			}
			ni := b.neighbor(idx, d)
			changed, err := b.tighten(ni, d.Opposite(), open)
			if err != nil {
				return err
			}
			if changed {
				work = append(work, ni)
			}
		}
	}
	return nil
}

// tighten requires the given state on one edge of one cell,
// without propagating.  A no-op if the edge already agrees; an
// unsolvable Error if it already contradicts; otherwise the
// disagreeing candidates are removed and the cell is reported
// changed so the caller can enqueue it.
func (b *Board) tighten(idx int, d Direction, open bool) (bool, error) {
	c := &b.cells[idx]
	if c.stakes[d] == 0 {
		if !open {
			return false, nil
		}
		return false, contradictionError(idx, d)
	}
	if c.stakes[d] == len(c.candidates) {
		if open {
			return false, nil
		}
		return false, contradictionError(idx, d)
	}
	c.restrict(d, open)
	if c.solved() {
		b.unsolved.remove(idx)
	}
	return true, nil
}

// forceEdge requires the given state on one edge of one cell and
// propagates the consequences.  This is both the inner move of
// every speculative trial and the contrapositive applied after a
// refuted one.  Returns whether anything changed.
func (b *Board) forceEdge(idx int, d Direction, open bool) (bool, error) {
	changed, err := b.tighten(idx, d, open)
	if err != nil || !changed {
		return changed, err
	}
	return true, b.propagate(intset{idx})
}

/*

Reachability

*/

// checkReachability traverses the graph whose vertices are the
// non-empty cells and whose edges are the still-possible
// connections (stake above zero).  If the traversal does not
// span the non-empty cells, no rotation assignment can connect
// the network and the board is unsolvable.  Possible edges, not
// certain ones: requiring certainty here would reject valid
// boards mid-propagation.
func (b *Board) checkReachability() error {
	if len(b.nonEmpty) == 0 {
		return nil
	}
	unvisited := newIntsetCopy(b.nonEmpty)
	toVisit := intset{unvisited[0]}
	unvisited.remove(toVisit[0])
	for len(toVisit) > 0 {
		idx := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]
		c := &b.cells[idx]
		for d := North; d < directionCount; d++ {
			if c.stakes[d] == 0 {
				continue
			}
			ni := b.neighbor(idx, d)
			if !unvisited.remove(ni) {
				continue
			}
			toVisit = append(toVisit, ni)
		}
	}
	if len(unvisited) > 0 {
		return disconnectedError()
	}
	return nil
}

/*

Copying

*/

// copy returns a deep copy of a board.  Trial mutations on the
// copy cannot reach the original: candidate sets and the
// unsolved set get fresh storage.  The non-empty set is fixed
// after construction and is shared.
func (b *Board) copy() *Board {
	c := &Board{
		width:    b.width,
		height:   b.height,
		pipes:    b.pipes,
		cells:    make([]cell, len(b.cells)),
		nonEmpty: b.nonEmpty,
		unsolved: newIntsetCopy(b.unsolved),
	}
	for i := range b.cells {
		c.cells[i] = cell{
			kind:       b.cells[i].kind,
			candidates: newPieceSetCopy(b.cells[i].candidates),
			stakes:     b.cells[i].stakes,
		}
	}
	return c
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	return b.copy()
}

/*

Integer sets

An intset is a set of cell indices, represented as a sorted
slice.  We use intsets for the non-empty set, the unsolved set,
and propagation work lists.

*/

type intset []int

// newIntsetCopy: make a copy of an intset.
func newIntsetCopy(in intset) intset {
	if in == nil {
		return nil
	}
	out := make(intset, len(in))
	copy(out, in)
	return out
}

// find value v, returning where it should be in the intset and
// whether it was found there.
func (is *intset) find(v int) (int, bool) {
	end := len(*is)
	where := end
	for i := 0; i < end; i++ {
		if (*is)[i] == v {
			return i, true
		}
		if (*is)[i] > v {
			where = i
			break
		}
	}
	return where, false
}

// insert value v, returning whether it was there already.
func (is *intset) insert(v int) bool {
	end := len(*is)
	where, found := is.find(v)
	if found {
		return true
	}
	*is = append(*is, v)
	if where < end {
		copy((*is)[where+1:], (*is)[where:])
		(*is)[where] = v
	}
	return false
}

// remove value v, returning whether it was there.
func (is *intset) remove(v int) bool {
	where, found := is.find(v)
	if !found {
		return false
	}
	copy((*is)[where:], (*is)[where+1:])
	*is = (*is)[:len(*is)-1]
	return true
}

// contains reports membership without modifying the set.
func (is intset) contains(v int) bool {
	_, found := is.find(v)
	return found
}
