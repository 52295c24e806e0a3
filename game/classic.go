package game

// ClassicBoard is a single 3x3 Tic-Tac-Toe board.
type ClassicBoard struct {
	cells SubBoard
	first Player
	base  int // marks already on the board when it was set up
	hist  []Move
}

var _ Board = (*ClassicBoard)(nil)

// NewClassicBoard returns an empty classic board where first moves first.
// NoPlayer defaults to PlayerX.
func NewClassicBoard(first Player) *ClassicBoard {
	if first == NoPlayer {
		first = PlayerX
	}
	return &ClassicBoard{first: first}
}

// Variant returns VariantClassic.
func (b *ClassicBoard) Variant() Variant { return VariantClassic }

// Turn returns the player to move.
func (b *ClassicBoard) Turn() Player {
	if b.MoveCount()%2 == 0 {
		return b.first
	}
	return b.first.Opponent()
}

// Status returns the outcome of the board so far.
func (b *ClassicBoard) Status() Status { return b.cells.Status() }

// Cells returns a copy of the grid for rendering.
func (b *ClassicBoard) Cells() SubBoard { return b.cells }

// LegalMoves returns every empty cell in ascending order, or nil once the
// board is terminal.
func (b *ClassicBoard) LegalMoves() []Move {
	if b.Status().Terminal() {
		return nil
	}
	moves := make([]Move, 0, 9-b.MoveCount())
	for i, p := range b.cells {
		if p == NoPlayer {
			moves = append(moves, Move{Cell: uint8(i)})
		}
	}
	return moves
}

func (b *ClassicBoard) legal(m Move) bool {
	return m.Sub == 0 && m.Cell < 9 &&
		b.cells[m.Cell] == NoPlayer &&
		!b.Status().Terminal()
}

// Apply validates and plays a move for the player whose turn it is.
func (b *ClassicBoard) Apply(m Move) error {
	if !b.legal(m) {
		return ErrIllegalMove
	}
	b.play(m)
	return nil
}

func (b *ClassicBoard) play(m Move) {
	b.cells[m.Cell] = b.Turn()
	b.hist = append(b.hist, m)
}

// Undo reverts the most recent move.
func (b *ClassicBoard) Undo() error {
	if len(b.hist) == 0 {
		return ErrNoHistory
	}
	b.unplay()
	return nil
}

func (b *ClassicBoard) unplay() {
	m := b.hist[len(b.hist)-1]
	b.cells[m.Cell] = NoPlayer
	b.hist = b.hist[:len(b.hist)-1]
}

// History returns the moves played on this board, oldest first. Marks that
// were part of a position set up from notation have no history.
func (b *ClassicBoard) History() []Move {
	return append([]Move(nil), b.hist...)
}

// MoveCount returns the number of marks on the board.
func (b *ClassicBoard) MoveCount() int { return b.base + len(b.hist) }

// Clone returns a deep copy sharing no state with the receiver.
func (b *ClassicBoard) Clone() Board {
	c := *b
	c.hist = append([]Move(nil), b.hist...)
	return &c
}

// String returns the board in the notation form.
func (b *ClassicBoard) String() string { return b.Notation() }
