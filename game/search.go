package game

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// WinScore is the score of a win at the root. Wins found deeper in the
	// tree score lower by one per ply, so the engine prefers the shortest
	// forced win and postpones a forced loss as long as possible.
	WinScore = 1_000_000
	// scoreInf bounds the search window. No reachable score can hit it.
	scoreInf = WinScore + 1
)

// SearchOptions configures BestMoveOptions.
type SearchOptions struct {
	// Depth is the maximum search depth in plies. Values below 1 are
	// treated as 1.
	Depth int
	// Workers caps the number of root moves searched concurrently. 0 means
	// GOMAXPROCS; 1 searches sequentially. The chosen move is the same
	// either way.
	Workers int
	// Weights overrides the evaluator weights. Nil means DefaultWeights.
	Weights *Weights
}

// BestMove returns the best move for p on b, searching depth plies with all
// available CPUs.
func BestMove(b Board, p Player, depth int) (Move, error) {
	m, _, err := BestMoveOptions(b, p, SearchOptions{Depth: depth})
	return m, err
}

// BestMoveOptions returns the best move for p on b along with its score from
// p's point of view.
//
// It returns ErrTerminalPosition if the game is over, ErrNotYourTurn if it
// is not p's turn, and ErrNoLegalMoves if no move exists. The result is
// deterministic: among equal scores, the first move in ascending (sub-board,
// cell) order wins, regardless of how many workers searched.
func BestMoveOptions(b Board, p Player, opts SearchOptions) (Move, int, error) {
	if b.Status().Terminal() {
		return Move{}, 0, ErrTerminalPosition
	}
	if b.Turn() != p {
		return Move{}, 0, ErrNotYourTurn
	}
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return Move{}, 0, ErrNoLegalMoves
	}

	depth := max(opts.Depth, 1)
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	weights := opts.Weights
	if weights == nil {
		w := DefaultWeights()
		weights = &w
	}

	// Each root move gets its own score slot. Workers never share a board
	// and never touch each other's slots.
	scores := make([]int, len(moves))
	search := func(i int) {
		child := b.Clone()
		child.play(moves[i])
		scores[i] = -negamax(child, depth-1, -scoreInf, scoreInf, 1, weights)
	}
	if workers > 1 && len(moves) > 1 {
		var group errgroup.Group
		group.SetLimit(workers)
		for i := range moves {
			group.Go(func() error {
				search(i)
				return nil
			})
		}
		// Join barrier: the reduction below must not start before every
		// slot is filled.
		_ = group.Wait()
	} else {
		for i := range moves {
			search(i)
		}
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		// Strictly greater, so the earliest of equal moves is kept.
		if scores[i] > scores[best] {
			best = i
		}
	}
	return moves[best], scores[best], nil
}

// negamax runs a fail-soft alpha-beta search and returns the score of b from
// the point of view of the player to move. ply is the distance from the
// root, used to prefer faster wins.
func negamax(b Board, depth, alpha, beta, ply int, w *Weights) int {
	if st := b.Status(); st.Terminal() {
		if winner := st.Winner(); winner != NoPlayer {
			if winner == b.Turn() {
				return WinScore - ply
			}
			return ply - WinScore
		}
		return 0
	}
	if depth == 0 {
		return b.evaluate(b.Turn(), w)
	}

	best := -scoreInf
	for _, m := range b.LegalMoves() {
		b.play(m)
		score := -negamax(b, depth-1, -beta, -alpha, ply+1, w)
		b.unplay()
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
