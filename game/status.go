package game

// Status describes the outcome of a board, or of a single sub-board in the
// ultimate variant.
type Status uint8

const (
	StatusOngoing Status = iota
	StatusXWon
	StatusOWon
	StatusDrawn
)

// WonBy returns the winning status for the given player.
func WonBy(p Player) Status {
	switch p {
	case PlayerX:
		return StatusXWon
	case PlayerO:
		return StatusOWon
	default:
		return StatusOngoing
	}
}

// Winner returns the winning player, or NoPlayer for ongoing and drawn
// boards.
func (s Status) Winner() Player {
	switch s {
	case StatusXWon:
		return PlayerX
	case StatusOWon:
		return PlayerO
	default:
		return NoPlayer
	}
}

// Terminal reports whether the board is finished.
func (s Status) Terminal() bool {
	return s != StatusOngoing
}

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusXWon:
		return "X won"
	case StatusOWon:
		return "O won"
	case StatusDrawn:
		return "drawn"
	default:
		return "unknown"
	}
}
