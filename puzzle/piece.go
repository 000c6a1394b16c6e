package puzzle

import (
	"math/bits"
)

/*

Piece catalog

*/

// A Piece is one concrete rotation of a pipe piece: a vector of
// stubs over the four directions, packed as a bitmask so whole
// candidate sets stay cheap to copy during speculative trials.
type Piece uint8

// Stub reports whether the piece has a stub on direction d.
func (p Piece) Stub(d Direction) bool {
	return p&(1<<uint(d)) != 0
}

// Clockwise returns the piece rotated 90 degrees clockwise.
func (p Piece) Clockwise() Piece {
	return (p<<1 | p>>3) & 0xf
}

// Stubs returns the number of stubs on the piece.
func (p Piece) Stubs() int {
	return bits.OnesCount8(uint8(p))
}

// A Kind classifies pipe pieces by shape, independent of
// rotation.
type Kind int

// The piece kinds.
const (
	Empty Kind = iota
	Deadend
	Line
	Elbow
	Tee
)

// Kinds implement Stringer.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Deadend:
		return "deadend"
	case Line:
		return "line"
	case Elbow:
		return "elbow"
	case Tee:
		return "tee"
	}
	return "<bad kind>"
}

// canonicalPieces maps each kind to its canonical rotation.
var canonicalPieces = map[Kind]Piece{
	Empty:   0,
	Deadend: 1 << North,
	Line:    1<<North | 1<<South,
	Elbow:   1<<North | 1<<East,
	Tee:     1<<North | 1<<East | 1<<South,
}

// rotations returns the orbit of a kind's canonical piece under
// clockwise rotation, deduplicated, in ascending piece order.
// The line orbit collapses to two entries, the empty orbit to
// one.
func rotations(k Kind) pieceSet {
	var ps pieceSet
	p := canonicalPieces[k]
	for i := 0; i < directionCount; i++ {
		ps.insert(p)
		p = p.Clockwise()
	}
	return ps
}

/*

Piece sets

A pieceSet is a small sorted set of pieces.  Candidate sets hold
at most four pieces, so linear operations are fine.

*/

type pieceSet []Piece

// newPieceSetCopy makes a copy of a pieceSet.
func newPieceSetCopy(in pieceSet) pieceSet {
	if in == nil {
		return nil
	}
	out := make(pieceSet, len(in))
	copy(out, in)
	return out
}

// insert adds a piece in sorted position, returning whether it
// was there already.
func (ps *pieceSet) insert(p Piece) bool {
	end := len(*ps)
	where := end
	for i := 0; i < end; i++ {
		if (*ps)[i] == p {
			return true
		}
		if (*ps)[i] > p {
			where = i
			break
		}
	}
	*ps = append(*ps, p)
	if where < end {
		copy((*ps)[where+1:], (*ps)[where:])
		(*ps)[where] = p
	}
	return false
}

// retain keeps only the pieces whose stub on direction d matches
// the requested state, returning the number removed.
func (ps *pieceSet) retain(d Direction, open bool) int {
	kept := (*ps)[:0]
	for _, p := range *ps {
		if p.Stub(d) == open {
			kept = append(kept, p)
		}
	}
	removed := len(*ps) - len(kept)
	*ps = kept
	return removed
}
