package puzzle

import (
	"reflect"
	"testing"
)

/*

piece catalog

*/

type rotationsTestcase struct {
	kind     Kind
	expected pieceSet
}

func TestRotations(t *testing.T) {
	tcs := []rotationsTestcase{
		{Empty, pieceSet{0}},
		{Deadend, pieceSet{1, 2, 4, 8}},
		{Line, pieceSet{5, 10}},
		{Elbow, pieceSet{3, 6, 9, 12}},
		{Tee, pieceSet{7, 11, 13, 14}},
	}
	for i, tc := range tcs {
		got := rotations(tc.kind)
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("case %d: rotations(%v) = %v (expected %v)",
				i+1, tc.kind, got, tc.expected)
		}
	}
}

func TestPieceClockwise(t *testing.T) {
	// a north deadend walks the compass one step per rotation
	p := Piece(1 << North)
	for _, want := range []Direction{East, South, West, North} {
		p = p.Clockwise()
		if !p.Stub(want) || p.Stubs() != 1 {
			t.Errorf("rotation toward %v gave piece %04b", want, p)
		}
	}
}

/*

cells

*/

func TestNewCellStakes(t *testing.T) {
	stakes := map[Kind][directionCount]int{
		Empty:   {0, 0, 0, 0},
		Deadend: {1, 1, 1, 1},
		Line:    {1, 1, 1, 1},
		Elbow:   {2, 2, 2, 2},
		Tee:     {3, 3, 3, 3},
	}
	for k, want := range stakes {
		c := newCell(k)
		if c.stakes != want {
			t.Errorf("%v stakes are %v (expected %v)", k, c.stakes, want)
		}
	}
}

func TestCellRestrict(t *testing.T) {
	c := newCell(Deadend)
	if removed := c.restrict(West, false); removed != 1 {
		t.Errorf("closing west removed %d candidates (expected 1)", removed)
	}
	if !reflect.DeepEqual(c.candidates, pieceSet{1, 2, 4}) {
		t.Errorf("candidates after closing west: %v", c.candidates)
	}
	if want := [directionCount]int{1, 1, 1, 0}; c.stakes != want {
		t.Errorf("stakes after closing west: %v (expected %v)", c.stakes, want)
	}
	if removed := c.restrict(North, true); removed != 2 {
		t.Errorf("opening north removed %d candidates (expected 2)", removed)
	}
	if !c.solved() {
		t.Errorf("deadend not solved after two restrictions: %v", c.candidates)
	}
}

/*

board construction

*/

type badSummaryTestcase struct {
	summary Summary
}

func TestNewBadInput(t *testing.T) {
	tcs := []badSummaryTestcase{
		{Summary{Width: 0, Height: 1, Pipes: ""}},
		{Summary{Width: 1, Height: 0, Pipes: ""}},
		{Summary{Width: 2, Height: 2, Pipes: "111"}},
		{Summary{Width: 1, Height: 1, Pipes: "g"}},
		{Summary{Width: 1, Height: 1, Pipes: "f"}}, // four stubs
	}
	for i, tc := range tcs {
		b, e := New(&tc.summary)
		if e == nil {
			t.Errorf("case %d: New(%+v) succeeded: %v", i+1, tc.summary, b)
			continue
		}
		if !IsBadInput(e) {
			t.Errorf("case %d: error is not bad input: %v", i+1, e)
		}
	}
}

func TestNewUnsolvableAtConstruction(t *testing.T) {
	// a lone deadend among empties: its neighbors close all four
	// of its edges, leaving nowhere for the stub
	_, e := New(&Summary{Width: 3, Height: 3, Pipes: "100000000"})
	if e == nil {
		t.Fatalf("lone deadend board was created")
	}
	if !IsUnsolvable(e) {
		t.Errorf("lone deadend error is not unsolvable: %v", e)
	}
}

func TestNewEmptyBoard(t *testing.T) {
	b, e := New(&Summary{Width: 1, Height: 1, Pipes: "0"})
	if e != nil {
		t.Fatalf("Failed to create empty board: %v", e)
	}
	if !b.Solved() {
		t.Errorf("empty board is not solved")
	}
	if len(b.nonEmpty) != 0 {
		t.Errorf("empty board has non-empty cells: %v", b.nonEmpty)
	}
}

/*

invariants

*/

// checkInvariants verifies the stake counts against the
// candidate sets and the agreement of decided edges across every
// adjacent pair.
func checkInvariants(t *testing.T, b *Board, label string) {
	t.Helper()
	for idx := range b.cells {
		c := &b.cells[idx]
		if len(c.candidates) < 1 {
			t.Errorf("%s: cell %d has no candidates", label, idx)
		}
		recount := cell{kind: c.kind, candidates: c.candidates}
		recount.refreshStakes()
		if recount.stakes != c.stakes {
			t.Errorf("%s: cell %d stakes %v (recomputed %v)",
				label, idx, c.stakes, recount.stakes)
		}
		for d := North; d < directionCount; d++ {
			n := &b.cells[b.neighbor(idx, d)]
			o := d.Opposite()
			if c.stakes[d] == 0 && n.stakes[o] != 0 {
				t.Errorf("%s: cell %d closes %v but neighbor holds stake %d",
					label, idx, d, n.stakes[o])
			}
			if c.stakes[d] == len(c.candidates) && n.stakes[o] != len(n.candidates) {
				t.Errorf("%s: cell %d opens %v but neighbor is undecided",
					label, idx, d)
			}
		}
		unsolved := b.unsolved.contains(idx)
		if want := c.kind != Empty && len(c.candidates) > 1; unsolved != want {
			t.Errorf("%s: cell %d unsolved=%v (expected %v)", label, idx, unsolved, want)
		}
	}
}

func TestConstructionInvariants(t *testing.T) {
	summaries := []Summary{
		{Width: 2, Height: 2, Pipes: "9999"},
		{Width: 2, Height: 1, Pipes: "11"},
		{Width: 3, Height: 3, Pipes: "555555555"},
		{Width: 3, Height: 1, Pipes: "110"},
	}
	for i, s := range summaries {
		b, e := New(&s)
		if e != nil {
			t.Fatalf("case %d: Failed to create board: %v", i+1, e)
		}
		checkInvariants(t, b, s.Pipes)
	}
}

/*

copying

*/

func TestCopyIndependence(t *testing.T) {
	b, e := New(&Summary{Width: 2, Height: 2, Pipes: "9999"})
	if e != nil {
		t.Fatalf("Failed to create board: %v", e)
	}
	before := b.State()
	c := b.Copy()
	if _, e := c.forceEdge(0, West, false); e != nil {
		t.Fatalf("forceEdge on copy failed: %v", e)
	}
	if reflect.DeepEqual(c.State(), before) {
		t.Errorf("forceEdge did not change the copy")
	}
	if got := b.State(); !reflect.DeepEqual(got, before) {
		t.Errorf("mutating the copy changed the original:\n%v\n%v", got, before)
	}
	checkInvariants(t, c, "forced copy")
}

/*

propagation

*/

func TestForceEdgeContradiction(t *testing.T) {
	b, e := New(&Summary{Width: 2, Height: 1, Pipes: "11"})
	if e != nil {
		t.Fatalf("Failed to create board: %v", e)
	}
	// a deadend pointing south on a single row meets itself
	// coming back north
	if _, e := b.forceEdge(0, South, true); e == nil {
		t.Fatalf("south-open deadend on a single row did not contradict")
	} else if !IsUnsolvable(e) {
		t.Errorf("contradiction error is not unsolvable: %v", e)
	}
}

func TestForceEdgeNoop(t *testing.T) {
	b, e := New(&Summary{Width: 1, Height: 1, Pipes: "0"})
	if e != nil {
		t.Fatalf("Failed to create board: %v", e)
	}
	changed, e := b.forceEdge(0, North, false)
	if e != nil || changed {
		t.Errorf("closing a closed edge: changed=%v err=%v", changed, e)
	}
	if _, e := b.forceEdge(0, North, true); e == nil {
		t.Errorf("opening an empty cell's edge did not contradict")
	}
}
