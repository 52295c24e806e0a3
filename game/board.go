package game

import (
	"fmt"
	"strings"
)

// lines lists the 8 winning triplets of a 3x3 grid in row-major order:
// rows, columns, then diagonals.
var lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// SubBoard is a single 3x3 grid of cells in row-major order, so cell 0 is
// the top-left corner and cell 4 is the center. It is the whole board in the
// classic variant and one of nine boards in the ultimate variant.
type SubBoard [9]Player

// Status returns the outcome of the grid. A full grid with no three-in-a-row
// is drawn.
func (b *SubBoard) Status() Status {
	for _, ln := range lines {
		p := b[ln[0]]
		if p != NoPlayer && b[ln[1]] == p && b[ln[2]] == p {
			return WonBy(p)
		}
	}
	for _, p := range b {
		if p == NoPlayer {
			return StatusOngoing
		}
	}
	return StatusDrawn
}

// Variant identifies which game is being played.
type Variant uint8

const (
	VariantClassic Variant = iota
	VariantUltimate
)

// String returns the string representation of the variant.
func (v Variant) String() string {
	switch v {
	case VariantUltimate:
		return "ultimate"
	default:
		return "classic"
	}
}

// ParseVariant parses "classic" or "ultimate".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "classic":
		return VariantClassic, nil
	case "ultimate":
		return VariantUltimate, nil
	default:
		return VariantClassic, fmt.Errorf("invalid variant: %q", s)
	}
}

// Board is a position of either variant. The two implementations are
// ClassicBoard and UltimateBoard; the unexported methods keep the set closed.
type Board interface {
	// Variant returns which variant this board plays.
	Variant() Variant
	// Turn returns the player to move. It stays on the losing side once the
	// board is terminal.
	Turn() Player
	// Status returns the outcome of the board so far.
	Status() Status
	// LegalMoves returns every legal move in ascending (sub-board, cell)
	// order. It returns nil on a terminal board.
	LegalMoves() []Move
	// Apply validates and plays a move for the player whose turn it is. It
	// returns ErrIllegalMove and leaves the board untouched if the move is
	// not legal.
	Apply(m Move) error
	// Undo reverts the most recent move, or returns ErrNoHistory if no moves
	// were made.
	Undo() error
	// History returns the moves played so far, oldest first.
	History() []Move
	// MoveCount returns the number of moves played so far.
	MoveCount() int
	// Clone returns a deep copy sharing no state with the receiver.
	Clone() Board
	// Notation returns a compact single-line encoding of the position that
	// ParseNotation accepts.
	Notation() string

	// evaluate scores the position from p's point of view.
	evaluate(p Player, w *Weights) int
	// play makes a move without validating it.
	play(m Move)
	// unplay reverts the last move without checking history.
	unplay()
}
