package puzzle

import (
	"strings"
)

/*

Pipe string decoding

Each input character is a hex digit describing one cell: bit 0
is a north stub, bit 1 east, bit 2 south, bit 3 west.  Only the
shape matters — the solver considers every rotation — so the
decoder classifies by stub count, with the one refinement that
two opposite stubs make a line rather than an elbow.

*/

// decodeKind classifies a single pipe character.
func decodeKind(ch byte) (Kind, error) {
	var v Piece
	switch {
	case ch >= '0' && ch <= '9':
		v = Piece(ch - '0')
	case ch >= 'a' && ch <= 'f':
		v = Piece(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		v = Piece(ch-'A') + 10
	default:
		return Empty, inputError(CharacterAttribute, BadCharacterCondition, string(ch))
	}
	switch v.Stubs() {
	case 0:
		return Empty, nil
	case 1:
		return Deadend, nil
	case 2:
		if v.Stub(North) == v.Stub(South) {
			return Line, nil
		}
		return Elbow, nil
	case 3:
		return Tee, nil
	}
	return Empty, inputError(CharacterAttribute, FourStubsCondition, string(ch))
}

// decodePipes decodes a whole pipe string, read row by row.
func decodePipes(width, height int, pipes string) ([]Kind, error) {
	if len(pipes) != width*height {
		return nil, inputError(PipesAttribute, WrongLengthCondition, pipes, width*height)
	}
	kinds := make([]Kind, len(pipes))
	for i := 0; i < len(pipes); i++ {
		k, err := decodeKind(pipes[i])
		if err != nil {
			return nil, err
		}
		kinds[i] = k
	}
	return kinds, nil
}

/*

Pretty-printed boards

Each board row prints as three text lines.  Cells are three
characters wide: the top line shows the north edge, the middle
line the west and east edges around a "+" hub, the bottom line
the south edge.  A space is a certainly closed edge, "|" or "-"
a certainly open one, "?" an edge the solver has not decided.

*/

// edgeChar encodes the state of one edge of one cell.
func edgeChar(c *cell, d Direction) byte {
	if c.stakes[d] == 0 {
		return ' '
	}
	if c.stakes[d] != len(c.candidates) {
		return '?'
	}
	if d == North || d == South {
		return '|'
	}
	return '-'
}

// String gives the pretty-printed view of a board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.height * (3*b.width + 1) * 3)
	for row := 0; row < b.height; row++ {
		cells := b.cells[row*b.width : (row+1)*b.width]
		for i := range cells {
			sb.WriteByte(' ')
			sb.WriteByte(edgeChar(&cells[i], North))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
		for i := range cells {
			sb.WriteByte(edgeChar(&cells[i], West))
			sb.WriteByte('+')
			sb.WriteByte(edgeChar(&cells[i], East))
		}
		sb.WriteByte('\n')
		for i := range cells {
			sb.WriteByte(' ')
			sb.WriteByte(edgeChar(&cells[i], South))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Markdown returns the pretty-printed view wrapped in a fenced
// code block, for documentation and chat-friendly output.
func (b *Board) Markdown() string {
	return "```\n" + b.String() + "```\n"
}
