package game

import (
	"errors"
	"fmt"
	"testing"
)

func TestSubBoardStatus(t *testing.T) {
	tests := []struct {
		name  string
		cells SubBoard
		want  Status
	}{
		{
			name: "empty",
			want: StatusOngoing,
		},
		{
			name:  "top row",
			cells: SubBoard{PlayerX, PlayerX, PlayerX},
			want:  StatusXWon,
		},
		{
			name: "middle column",
			cells: SubBoard{
				NoPlayer, PlayerO, NoPlayer,
				NoPlayer, PlayerO, NoPlayer,
				NoPlayer, PlayerO, NoPlayer,
			},
			want: StatusOWon,
		},
		{
			name: "diagonal",
			cells: SubBoard{
				PlayerX, NoPlayer, NoPlayer,
				NoPlayer, PlayerX, NoPlayer,
				NoPlayer, NoPlayer, PlayerX,
			},
			want: StatusXWon,
		},
		{
			name: "anti-diagonal",
			cells: SubBoard{
				NoPlayer, NoPlayer, PlayerO,
				NoPlayer, PlayerO, NoPlayer,
				PlayerO, NoPlayer, NoPlayer,
			},
			want: StatusOWon,
		},
		{
			name: "full without line",
			cells: SubBoard{
				PlayerX, PlayerO, PlayerX,
				PlayerX, PlayerO, PlayerO,
				PlayerO, PlayerX, PlayerX,
			},
			want: StatusDrawn,
		},
		{
			name: "in progress",
			cells: SubBoard{
				PlayerX, PlayerO, NoPlayer,
				NoPlayer, PlayerX, NoPlayer,
				NoPlayer, NoPlayer, NoPlayer,
			},
			want: StatusOngoing,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.cells.Status(); got != test.want {
				t.Errorf("got %v, want %v", got, test.want)
			}
		})
	}
}

func TestClassicBoard(t *testing.T) {
	t.Run("turns alternate", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		for i, want := range []Player{PlayerX, PlayerO, PlayerX} {
			if got := b.Turn(); got != want {
				t.Fatalf("move %d: turn is %v, want %v", i, got, want)
			}
			if err := b.Apply(Move{Cell: uint8(i)}); err != nil {
				t.Fatalf("move %d: %v", i, err)
			}
		}
	})

	t.Run("O can move first", func(t *testing.T) {
		b := NewClassicBoard(PlayerO)
		if err := b.Apply(Move{Cell: 4}); err != nil {
			t.Fatal(err)
		}
		if got := b.Cells()[4]; got != PlayerO {
			t.Errorf("cell 4 is %v, want %v", got, PlayerO)
		}
	})

	t.Run("occupied cell is illegal", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		if err := b.Apply(Move{Cell: 4}); err != nil {
			t.Fatal(err)
		}
		if err := b.Apply(Move{Cell: 4}); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("got %v, want %v", err, ErrIllegalMove)
		}
		if b.MoveCount() != 1 {
			t.Errorf("illegal move changed the board")
		}
	})

	t.Run("out of range is illegal", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		for _, m := range []Move{{Cell: 9}, {Sub: 1, Cell: 0}} {
			if err := b.Apply(m); !errors.Is(err, ErrIllegalMove) {
				t.Errorf("Apply(%v) = %v, want %v", m, err, ErrIllegalMove)
			}
		}
	})

	t.Run("legal moves are ascending", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		mustApply(t, b, Move{Cell: 4}, Move{Cell: 0})
		want := []Move{{Cell: 1}, {Cell: 2}, {Cell: 3}, {Cell: 5}, {Cell: 6}, {Cell: 7}, {Cell: 8}}
		got := b.LegalMoves()
		if len(got) != len(want) {
			t.Fatalf("got %d moves, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("move %d: got %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("moves from a parsed position", func(t *testing.T) {
		// X on 0 and 4, O on 8, O to move.
		b, err := ParseNotation("x3x3o o")
		if err != nil {
			t.Fatal(err)
		}
		if got := b.Status(); got != StatusOngoing {
			t.Fatalf("status is %v, want %v", got, StatusOngoing)
		}
		moves := b.LegalMoves()
		if len(moves) != 6 {
			t.Fatalf("got %d legal moves, want 6", len(moves))
		}
		for _, m := range moves {
			if m.Cell == 0 || m.Cell == 4 || m.Cell == 8 {
				t.Errorf("move %v targets an occupied cell", m)
			}
		}
	})

	t.Run("win ends the game", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		// X takes the top row while O idles on the bottom.
		mustApply(t, b,
			Move{Cell: 0}, Move{Cell: 6},
			Move{Cell: 1}, Move{Cell: 7},
			Move{Cell: 2},
		)
		if got := b.Status(); got != StatusXWon {
			t.Fatalf("status is %v, want %v", got, StatusXWon)
		}
		if moves := b.LegalMoves(); moves != nil {
			t.Errorf("terminal board has %d legal moves", len(moves))
		}
		if err := b.Apply(Move{Cell: 8}); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("Apply after the game = %v, want %v", err, ErrIllegalMove)
		}
	})

	t.Run("draw", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		// X O X / X O O / O X X cell by cell.
		mustApply(t, b,
			Move{Cell: 0}, Move{Cell: 1},
			Move{Cell: 2}, Move{Cell: 4},
			Move{Cell: 3}, Move{Cell: 5},
			Move{Cell: 7}, Move{Cell: 6},
			Move{Cell: 8},
		)
		if got := b.Status(); got != StatusDrawn {
			t.Errorf("status is %v, want %v", got, StatusDrawn)
		}
	})

	t.Run("undo", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		mustApply(t, b, Move{Cell: 4}, Move{Cell: 0})
		if err := b.Undo(); err != nil {
			t.Fatal(err)
		}
		if got := b.Cells()[0]; got != NoPlayer {
			t.Errorf("cell 0 is %v after undo, want empty", got)
		}
		if got := b.Turn(); got != PlayerO {
			t.Errorf("turn is %v after undo, want %v", got, PlayerO)
		}
		if err := b.Undo(); err != nil {
			t.Fatal(err)
		}
		if err := b.Undo(); !errors.Is(err, ErrNoHistory) {
			t.Errorf("Undo on empty board = %v, want %v", err, ErrNoHistory)
		}
	})

	t.Run("undo reopens a finished game", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		mustApply(t, b,
			Move{Cell: 0}, Move{Cell: 6},
			Move{Cell: 1}, Move{Cell: 7},
			Move{Cell: 2},
		)
		if err := b.Undo(); err != nil {
			t.Fatal(err)
		}
		if got := b.Status(); got != StatusOngoing {
			t.Errorf("status is %v after undo, want %v", got, StatusOngoing)
		}
		if got := b.Turn(); got != PlayerX {
			t.Errorf("turn is %v after undo, want %v", got, PlayerX)
		}
	})

	t.Run("clone is independent", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		mustApply(t, b, Move{Cell: 4})
		c := b.Clone()
		if err := c.Apply(Move{Cell: 0}); err != nil {
			t.Fatal(err)
		}
		if b.MoveCount() != 1 {
			t.Errorf("clone mutated the original")
		}
		if err := b.Apply(Move{Cell: 0}); err != nil {
			t.Errorf("original rejects a move made on the clone: %v", err)
		}
	})

	t.Run("history", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		moves := []Move{{Cell: 4}, {Cell: 0}, {Cell: 8}}
		mustApply(t, b, moves...)
		hist := b.History()
		if len(hist) != len(moves) {
			t.Fatalf("history has %d moves, want %d", len(hist), len(moves))
		}
		for i := range moves {
			if hist[i] != moves[i] {
				t.Errorf("history[%d] = %v, want %v", i, hist[i], moves[i])
			}
		}
	})
}

func TestParsePlayer(t *testing.T) {
	for _, s := range []string{"x", "X"} {
		p, err := ParsePlayer(s)
		if err != nil || p != PlayerX {
			t.Errorf("ParsePlayer(%q) = %v, %v", s, p, err)
		}
	}
	if _, err := ParsePlayer("z"); err == nil {
		t.Error("ParsePlayer(z) should fail")
	}
}

func TestParseVariant(t *testing.T) {
	for s, want := range map[string]Variant{
		"classic":  VariantClassic,
		"Ultimate": VariantUltimate,
	} {
		v, err := ParseVariant(s)
		if err != nil || v != want {
			t.Errorf("ParseVariant(%q) = %v, %v", s, v, err)
		}
	}
	if _, err := ParseVariant("3d"); err == nil {
		t.Error("ParseVariant(3d) should fail")
	}
}

// mustApply plays moves in order, failing the test on the first illegal one.
func mustApply(t *testing.T, b Board, moves ...Move) {
	t.Helper()
	for i, m := range moves {
		if err := b.Apply(m); err != nil {
			t.Fatalf("move %d (%v): %v", i, m, err)
		}
	}
}

func ExampleClassicBoard_Notation() {
	b := NewClassicBoard(PlayerX)
	b.Apply(Move{Cell: 4})
	b.Apply(Move{Cell: 0})
	fmt.Println(b.Notation())
	// Output: o3x4 x
}
