package game

// Weights tunes the positional evaluator. All terms are symmetric: whatever
// a configuration is worth for one player, the mirrored configuration is
// worth the negated amount for the opponent.
type Weights struct {
	// NearWin is awarded per line holding two own marks and an empty third
	// cell.
	NearWin int
	// Center and Corner are awarded per own mark on the center or a corner
	// cell of a grid.
	Center int
	Corner int

	// SubWon is awarded per sub-board owned on an ultimate board.
	SubWon int
	// MetaNearWin is awarded per meta-board line holding two own sub-board
	// wins and a third sub-board that is still winnable. A drawn sub-board
	// kills the line for both sides.
	MetaNearWin int
	// SubCenter and SubCorner are awarded on top of SubWon for owning the
	// center or a corner sub-board.
	SubCenter int
	SubCorner int
}

// DefaultWeights returns the weights the engine searches with. The maximum
// reachable magnitude stays far below WinScore minus the longest game, so a
// heuristic score can never be mistaken for a forced result.
func DefaultWeights() Weights {
	return Weights{
		NearWin:     12,
		Center:      4,
		Corner:      2,
		SubWon:      48,
		MetaNearWin: 60,
		SubCenter:   16,
		SubCorner:   8,
	}
}

// gridScore scores one 3x3 grid from p's point of view: near-win lines plus
// center and corner occupancy.
func gridScore(cells *SubBoard, p Player, w *Weights) int {
	opp := p.Opponent()
	score := 0
	for _, ln := range lines {
		var mine, theirs int
		for _, i := range ln {
			switch cells[i] {
			case p:
				mine++
			case opp:
				theirs++
			}
		}
		switch {
		case mine == 2 && theirs == 0:
			score += w.NearWin
		case theirs == 2 && mine == 0:
			score -= w.NearWin
		}
	}
	switch cells[4] {
	case p:
		score += w.Center
	case opp:
		score -= w.Center
	}
	for _, i := range [...]int{0, 2, 6, 8} {
		switch cells[i] {
		case p:
			score += w.Corner
		case opp:
			score -= w.Corner
		}
	}
	return score
}

func (b *ClassicBoard) evaluate(p Player, w *Weights) int {
	return gridScore(&b.cells, p, w)
}

func (b *UltimateBoard) evaluate(p Player, w *Weights) int {
	opp := p.Opponent()
	score := 0
	for _, ln := range lines {
		var mine, theirs, dead int
		for _, i := range ln {
			switch b.meta[i] {
			case WonBy(p):
				mine++
			case WonBy(opp):
				theirs++
			case StatusDrawn:
				dead++
			}
		}
		switch {
		case mine == 2 && theirs == 0 && dead == 0:
			score += w.MetaNearWin
		case theirs == 2 && mine == 0 && dead == 0:
			score -= w.MetaNearWin
		}
	}
	for i := range b.subs {
		switch b.meta[i] {
		case WonBy(p):
			score += w.SubWon + subWeight(i, w)
		case WonBy(opp):
			score -= w.SubWon + subWeight(i, w)
		case StatusOngoing:
			score += gridScore(&b.subs[i], p, w)
		}
	}
	return score
}

// subWeight is the positional bonus for owning sub-board i.
func subWeight(i int, w *Weights) int {
	switch i {
	case 4:
		return w.SubCenter
	case 0, 2, 6, 8:
		return w.SubCorner
	default:
		return 0
	}
}
