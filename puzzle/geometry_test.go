package puzzle

import (
	"testing"
)

func TestDirectionAlgebra(t *testing.T) {
	opposites := map[Direction]Direction{
		North: South, East: West, South: North, West: East,
	}
	for d, want := range opposites {
		if got := d.Opposite(); got != want {
			t.Errorf("Opposite of %v is %v (expected %v)", d, got, want)
		}
	}
	clockwise := map[Direction]Direction{
		North: East, East: South, South: West, West: North,
	}
	for d, want := range clockwise {
		if got := d.Clockwise(); got != want {
			t.Errorf("Clockwise of %v is %v (expected %v)", d, got, want)
		}
	}
}

type neighborTestcase struct {
	width, height int
	pipes         string
	idx           int
	dir           Direction
	expected      int
}

func TestNeighborWrap(t *testing.T) {
	tcs := []neighborTestcase{
		// a single cell is its own neighbor in every direction
		{1, 1, "0", 0, North, 0},
		{1, 1, "0", 0, East, 0},
		{1, 1, "0", 0, South, 0},
		{1, 1, "0", 0, West, 0},
		// single-row boards wrap vertically onto themselves
		{3, 1, "000", 0, North, 0},
		{3, 1, "000", 0, South, 0},
		{3, 1, "000", 0, West, 2},
		{3, 1, "000", 2, East, 0},
		// 2x2 wraps in both axes
		{2, 2, "0000", 0, North, 2},
		{2, 2, "0000", 0, South, 2},
		{2, 2, "0000", 0, East, 1},
		{2, 2, "0000", 0, West, 1},
		{2, 2, "0000", 3, East, 2},
		{2, 2, "0000", 3, South, 1},
	}
	for i, tc := range tcs {
		b, e := New(&Summary{Width: tc.width, Height: tc.height, Pipes: tc.pipes})
		if e != nil {
			t.Fatalf("case %d: Failed to create board: %v", i+1, e)
		}
		if got := b.neighbor(tc.idx, tc.dir); got != tc.expected {
			t.Errorf("case %d: neighbor(%d, %v) is %d (expected %d)",
				i+1, tc.idx, tc.dir, got, tc.expected)
		}
	}
}
