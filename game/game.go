// Package game implements classic and ultimate Tic-Tac-Toe: board state for
// both variants, legal-move generation, win detection, a positional
// evaluator and an alpha-beta engine.
package game

import "errors"

var (
	// ErrIllegalMove is returned when a move does not satisfy the rules of
	// the board it is applied to.
	ErrIllegalMove = errors.New("illegal move")
	// ErrNoHistory is returned by Undo on a board with no moves to revert.
	ErrNoHistory = errors.New("no moves to undo")
	// ErrTerminalPosition is returned when a search is asked for a move on a
	// finished game.
	ErrTerminalPosition = errors.New("game is already over")
	// ErrNoLegalMoves is returned when a search finds no moves to choose
	// from.
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrNotYourTurn is returned when a player acts out of turn.
	ErrNotYourTurn = errors.New("not your turn")
)

// Game is a running game of either variant.
type Game struct {
	Board
}

// NewGame returns a new game of the given variant where first moves first.
// NoPlayer defaults to PlayerX.
func NewGame(v Variant, first Player) *Game {
	switch v {
	case VariantUltimate:
		return &Game{Board: NewUltimateBoard(first)}
	default:
		return &Game{Board: NewClassicBoard(first)}
	}
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	return &Game{Board: g.Board.Clone()}
}

// String returns the game position in the notation form.
func (g *Game) String() string {
	return g.Board.Notation()
}
