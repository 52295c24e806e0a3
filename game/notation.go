package game

import (
	"fmt"
	"strings"
)

// The notation is a FEN-like single-line position encoding. Each 3x3 grid
// becomes one group of 'x', 'o' and empty-run digits in row-major order, so
// an untouched grid is "9". A classic board is one group followed by the
// side to move:
//
//	xo7 x
//
// An ultimate board is nine '/'-separated groups (sub-boards 0-8), the side
// to move, and the active sub-board constraint ('-' when the next move may
// go anywhere):
//
//	4o4/9/9/9/x8/9/9/9/9 x 4

// Notation returns the board as a classic notation line.
func (b *ClassicBoard) Notation() string {
	var sb strings.Builder
	writeGridNotation(&sb, &b.cells)
	sb.WriteByte(' ')
	sb.WriteByte(playerLetter(b.Turn()))
	return sb.String()
}

// Notation returns the board as an ultimate notation line.
func (b *UltimateBoard) Notation() string {
	var sb strings.Builder
	for i := range b.subs {
		if i > 0 {
			sb.WriteByte('/')
		}
		writeGridNotation(&sb, &b.subs[i])
	}
	sb.WriteByte(' ')
	sb.WriteByte(playerLetter(b.Turn()))
	sb.WriteByte(' ')
	if a := b.activeConstraint(); a == anySub {
		sb.WriteByte('-')
	} else {
		sb.WriteByte('0' + byte(a))
	}
	return sb.String()
}

// ParseNotation parses a notation line of either variant. The returned board
// starts with an empty move history, so Undo cannot revert past the parsed
// position.
func ParseNotation(s string) (Board, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty notation")
	}
	if strings.Contains(fields[0], "/") {
		return parseUltimateNotation(fields)
	}
	return parseClassicNotation(fields)
}

func parseClassicNotation(fields []string) (*ClassicBoard, error) {
	if len(fields) != 2 {
		return nil, fmt.Errorf("classic notation needs 2 fields, got %d", len(fields))
	}
	cells, err := parseGridNotation(fields[0])
	if err != nil {
		return nil, err
	}
	side, err := ParsePlayer(fields[1])
	if err != nil {
		return nil, err
	}
	base := countMarks(&cells)
	return &ClassicBoard{
		cells: cells,
		first: startingPlayer(side, base),
		base:  base,
	}, nil
}

func parseUltimateNotation(fields []string) (*UltimateBoard, error) {
	if len(fields) != 3 {
		return nil, fmt.Errorf("ultimate notation needs 3 fields, got %d", len(fields))
	}
	groups := strings.Split(fields[0], "/")
	if len(groups) != 9 {
		return nil, fmt.Errorf("ultimate notation needs 9 sub-boards, got %d", len(groups))
	}

	b := &UltimateBoard{active: anySub}
	base := 0
	for i, group := range groups {
		cells, err := parseGridNotation(group)
		if err != nil {
			return nil, fmt.Errorf("sub-board %d: %w", i, err)
		}
		b.subs[i] = cells
		b.meta[i] = cells.Status()
		base += countMarks(&cells)
	}

	side, err := ParsePlayer(fields[1])
	if err != nil {
		return nil, err
	}
	b.first = startingPlayer(side, base)
	b.base = base

	switch active := fields[2]; {
	case active == "-":
		b.active = anySub
	case len(active) == 1 && active[0] >= '0' && active[0] <= '8':
		b.active = int8(active[0] - '0')
		// A constraint pointing at a decided sub-board means "play
		// anywhere".
		b.active = b.activeConstraint()
	default:
		return nil, fmt.Errorf("invalid active sub-board: %q", active)
	}
	return b, nil
}

// parseGridNotation decodes one RLE group into a 3x3 grid.
func parseGridNotation(s string) (SubBoard, error) {
	var cells SubBoard
	i := 0
	for _, r := range s {
		switch {
		case r >= '1' && r <= '9':
			i += int(r - '0')
			if i > 9 {
				return cells, fmt.Errorf("group %q overflows the grid", s)
			}
		case r == 'x' || r == 'X', r == 'o' || r == 'O':
			if i > 8 {
				return cells, fmt.Errorf("group %q overflows the grid", s)
			}
			if r == 'x' || r == 'X' {
				cells[i] = PlayerX
			} else {
				cells[i] = PlayerO
			}
			i++
		default:
			return cells, fmt.Errorf("invalid character %q in group %q", r, s)
		}
	}
	if i != 9 {
		return cells, fmt.Errorf("group %q describes %d cells, want 9", s, i)
	}
	return cells, nil
}

func writeGridNotation(sb *strings.Builder, cells *SubBoard) {
	run := 0
	for _, p := range cells {
		if p == NoPlayer {
			run++
			continue
		}
		if run > 0 {
			sb.WriteByte('0' + byte(run))
			run = 0
		}
		sb.WriteByte(playerLetter(p))
	}
	if run > 0 {
		sb.WriteByte('0' + byte(run))
	}
}

func playerLetter(p Player) byte {
	if p == PlayerO {
		return 'o'
	}
	return 'x'
}

func countMarks(cells *SubBoard) int {
	n := 0
	for _, p := range cells {
		if p != NoPlayer {
			n++
		}
	}
	return n
}

// startingPlayer works back from the side to move and the number of marks
// already placed.
func startingPlayer(side Player, marks int) Player {
	if marks%2 == 0 {
		return side
	}
	return side.Opponent()
}
