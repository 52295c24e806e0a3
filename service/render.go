package service

import (
	"fmt"
	"strings"

	"github.com/twipi/twipi/proto/out/twismsproto"
	"github.com/twipi/twipi/twisms"
	"github.com/twipi/twuttt/game"
)

var playerEmoji = map[game.Player]string{
	game.PlayerX:  "❌",
	game.PlayerO:  "⭕",
	game.NoPlayer: "⬜",
}

func drawBoardMessage(prefix string, rg *runningGame) *twismsproto.MessageBody {
	var s strings.Builder
	if prefix != "" {
		s.WriteString(prefix)
		s.WriteString("\n\n")
	}
	s.WriteString(boardText(rg))
	return twisms.NewTextBody(s.String())
}

func boardText(rg *runningGame) string {
	var s strings.Builder
	switch b := rg.Game.Board.(type) {
	case *game.ClassicBoard:
		writeClassicGrid(&s, b)
	case *game.UltimateBoard:
		writeUltimateGrid(&s, b)
	}
	fmt.Fprintf(&s, "%s is your piece.\n", playerEmoji[rg.Human])
	fmt.Fprintf(&s, "%s is the AI's piece.", playerEmoji[rg.Human.Opponent()])
	return s.String()
}

func writeClassicGrid(s *strings.Builder, b *game.ClassicBoard) {
	cells := b.Cells()
	for r := range 3 {
		for c := range 3 {
			s.WriteString(playerEmoji[cells[3*r+c]])
		}
		s.WriteString("\n")
	}
}

func writeUltimateGrid(s *strings.Builder, b *game.UltimateBoard) {
	for band := range 3 {
		if band > 0 {
			s.WriteString("\n")
		}
		for row := range 3 {
			for sub := 3 * band; sub < 3*band+3; sub++ {
				if sub > 3*band {
					s.WriteString(" ")
				}
				cells := b.SubBoard(sub)
				for c := 3 * row; c < 3*row+3; c++ {
					s.WriteString(playerEmoji[cells[c]])
				}
			}
			s.WriteString("\n")
		}
	}
	writeMetaSummary(s, b)
	if active, ok := b.ActiveSub(); ok {
		fmt.Fprintf(s, "Next move goes to board %d.\n", active+1)
	} else if !b.Status().Terminal() {
		s.WriteString("Next move goes to any open board.\n")
	}
}

// writeMetaSummary shows who owns which sub-board. It only appears once a
// sub-board has been decided; drawn sub-boards stay blank.
func writeMetaSummary(s *strings.Builder, b *game.UltimateBoard) {
	decided := false
	for i := range 9 {
		if b.SubStatus(i).Terminal() {
			decided = true
			break
		}
	}
	if !decided {
		return
	}
	s.WriteString("Boards won:\n")
	for r := range 3 {
		for c := range 3 {
			s.WriteString(playerEmoji[b.SubStatus(3*r+c).Winner()])
		}
		s.WriteString("\n")
	}
}
