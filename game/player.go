package game

import (
	"fmt"
	"strings"
)

// Player represents a player mark.
type Player uint8

const (
	NoPlayer Player = iota
	PlayerX
	PlayerO
)

// String returns the string representation of the player.
func (p Player) String() string {
	switch p {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the opponent of the player.
func (p Player) Opponent() Player {
	switch p {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoPlayer
	}
}

// ParsePlayer parses "x" or "o" in either case.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(s) {
	case "x":
		return PlayerX, nil
	case "o":
		return PlayerO, nil
	default:
		return NoPlayer, fmt.Errorf("invalid player: %q", s)
	}
}
