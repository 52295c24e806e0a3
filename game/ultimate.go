package game

// anySub marks the active sub-board selector as unconstrained.
const anySub int8 = -1

// ultimateRecord is one history entry, carrying enough state to undo the
// move exactly.
type ultimateRecord struct {
	move       Move
	prevStatus Status // status of the target sub-board before the move
	prevActive int8
}

// UltimateBoard is a 3x3 grid of sub-boards. A move in cell c of any
// sub-board sends the opponent to sub-board c, unless that sub-board is
// already decided, in which case they may play anywhere open.
type UltimateBoard struct {
	subs   [9]SubBoard
	meta   [9]Status // cached Status of each sub-board
	active int8      // sub-board the next move must land in, or anySub
	first  Player
	base   int // marks already on the board when it was set up
	hist   []ultimateRecord
}

var _ Board = (*UltimateBoard)(nil)

// NewUltimateBoard returns an empty ultimate board where first moves first.
// NoPlayer defaults to PlayerX.
func NewUltimateBoard(first Player) *UltimateBoard {
	if first == NoPlayer {
		first = PlayerX
	}
	return &UltimateBoard{first: first, active: anySub}
}

// Variant returns VariantUltimate.
func (b *UltimateBoard) Variant() Variant { return VariantUltimate }

// Turn returns the player to move.
func (b *UltimateBoard) Turn() Player {
	if b.MoveCount()%2 == 0 {
		return b.first
	}
	return b.first.Opponent()
}

// SubBoard returns a copy of sub-board i for rendering.
func (b *UltimateBoard) SubBoard(i int) SubBoard { return b.subs[i] }

// SubStatus returns the cached outcome of sub-board i.
func (b *UltimateBoard) SubStatus(i int) Status { return b.meta[i] }

// ActiveSub returns the sub-board the next move must land in. ok is false
// when the mover may pick any open sub-board.
func (b *UltimateBoard) ActiveSub() (int, bool) {
	a := b.activeConstraint()
	return int(a), a != anySub
}

// activeConstraint relaxes the selector to anySub when it points at a
// decided sub-board, e.g. on a position set up from notation.
func (b *UltimateBoard) activeConstraint() int8 {
	if b.active != anySub && b.meta[b.active].Terminal() {
		return anySub
	}
	return b.active
}

// Status returns the outcome of the whole board. The meta-board treats each
// won sub-board as a mark of its winner; drawn sub-boards count for neither
// side. The game is drawn once every sub-board is decided with no
// three-in-a-row of wins.
func (b *UltimateBoard) Status() Status {
	for _, ln := range lines {
		s := b.meta[ln[0]]
		if (s == StatusXWon || s == StatusOWon) && b.meta[ln[1]] == s && b.meta[ln[2]] == s {
			return s
		}
	}
	for _, s := range b.meta {
		if s == StatusOngoing {
			return StatusOngoing
		}
	}
	return StatusDrawn
}

// LegalMoves returns every legal move in ascending (sub-board, cell) order,
// or nil once the board is terminal.
func (b *UltimateBoard) LegalMoves() []Move {
	if b.Status().Terminal() {
		return nil
	}
	moves := make([]Move, 0, 81-b.MoveCount())
	if a := b.activeConstraint(); a != anySub {
		b.appendSubMoves(&moves, int(a))
		return moves
	}
	for s := range b.subs {
		if b.meta[s] == StatusOngoing {
			b.appendSubMoves(&moves, s)
		}
	}
	return moves
}

func (b *UltimateBoard) appendSubMoves(moves *[]Move, s int) {
	for c, p := range b.subs[s] {
		if p == NoPlayer {
			*moves = append(*moves, Move{Sub: uint8(s), Cell: uint8(c)})
		}
	}
}

func (b *UltimateBoard) legal(m Move) bool {
	if m.Sub > 8 || m.Cell > 8 || b.Status().Terminal() {
		return false
	}
	if b.meta[m.Sub] != StatusOngoing || b.subs[m.Sub][m.Cell] != NoPlayer {
		return false
	}
	a := b.activeConstraint()
	return a == anySub || a == int8(m.Sub)
}

// Apply validates and plays a move for the player whose turn it is.
func (b *UltimateBoard) Apply(m Move) error {
	if !b.legal(m) {
		return ErrIllegalMove
	}
	b.play(m)
	return nil
}

func (b *UltimateBoard) play(m Move) {
	mover := b.Turn()
	b.hist = append(b.hist, ultimateRecord{
		move:       m,
		prevStatus: b.meta[m.Sub],
		prevActive: b.active,
	})
	b.subs[m.Sub][m.Cell] = mover
	b.meta[m.Sub] = b.subs[m.Sub].Status()

	// The cell played decides where the opponent goes next.
	next := int8(m.Cell)
	if b.meta[next].Terminal() {
		next = anySub
	}
	b.active = next
}

// Undo reverts the most recent move.
func (b *UltimateBoard) Undo() error {
	if len(b.hist) == 0 {
		return ErrNoHistory
	}
	b.unplay()
	return nil
}

func (b *UltimateBoard) unplay() {
	rec := b.hist[len(b.hist)-1]
	b.hist = b.hist[:len(b.hist)-1]
	b.subs[rec.move.Sub][rec.move.Cell] = NoPlayer
	b.meta[rec.move.Sub] = rec.prevStatus
	b.active = rec.prevActive
}

// History returns the moves played on this board, oldest first. Marks that
// were part of a position set up from notation have no history.
func (b *UltimateBoard) History() []Move {
	moves := make([]Move, len(b.hist))
	for i, rec := range b.hist {
		moves[i] = rec.move
	}
	return moves
}

// MoveCount returns the number of marks on the board.
func (b *UltimateBoard) MoveCount() int { return b.base + len(b.hist) }

// Clone returns a deep copy sharing no state with the receiver.
func (b *UltimateBoard) Clone() Board {
	c := *b
	c.hist = append([]ultimateRecord(nil), b.hist...)
	return &c
}

// String returns the board in the notation form.
func (b *UltimateBoard) String() string { return b.Notation() }
