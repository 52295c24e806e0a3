package game

import "testing"

func TestEvaluateClassic(t *testing.T) {
	w := DefaultWeights()

	t.Run("empty board is neutral", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		if got := b.evaluate(PlayerX, &w); got != 0 {
			t.Errorf("empty board scores %d for X, want 0", got)
		}
	})

	t.Run("scores are symmetric", func(t *testing.T) {
		b := NewClassicBoard(PlayerX)
		mustApply(t, b, Move{Cell: 4}, Move{Cell: 0}, Move{Cell: 8})
		x := b.evaluate(PlayerX, &w)
		o := b.evaluate(PlayerO, &w)
		if x != -o {
			t.Errorf("X scores %d but O scores %d, want negations", x, o)
		}
	})

	t.Run("center beats corner beats edge", func(t *testing.T) {
		score := func(cell uint8) int {
			b := NewClassicBoard(PlayerX)
			mustApply(t, b, Move{Cell: cell})
			return b.evaluate(PlayerX, &w)
		}
		center, corner, edge := score(4), score(0), score(1)
		if center <= corner || corner <= edge {
			t.Errorf("center %d, corner %d, edge %d: want center > corner > edge",
				center, corner, edge)
		}
	})

	t.Run("near-win lines count once per line", func(t *testing.T) {
		iso := Weights{NearWin: 1}
		b, err := ParseNotation("xx6o o")
		if err != nil {
			t.Fatal(err)
		}
		if got := b.evaluate(PlayerX, &iso); got != 1 {
			t.Errorf("one near-win line scores %d, want 1", got)
		}

		// X on 0 and 4 threatens only the diagonal through 8.
		b, err = ParseNotation("xo2x4 o")
		if err != nil {
			t.Fatal(err)
		}
		if got := b.evaluate(PlayerX, &iso); got != 1 {
			t.Errorf("diagonal near-win scores %d, want 1", got)
		}
	})

	t.Run("blocked line is not a near-win", func(t *testing.T) {
		iso := Weights{NearWin: 1}
		b, err := ParseNotation("xxo6 o")
		if err != nil {
			t.Fatal(err)
		}
		if got := b.evaluate(PlayerX, &iso); got != 0 {
			t.Errorf("blocked line scores %d, want 0", got)
		}
	})
}

func TestEvaluateUltimate(t *testing.T) {
	t.Run("owned sub-boards dominate cell positions", func(t *testing.T) {
		w := DefaultWeights()
		b, err := ParseNotation("xxx6/9/9/9/oo7/9/9/9/9 o -")
		if err != nil {
			t.Fatal(err)
		}
		if got := b.evaluate(PlayerX, &w); got <= 0 {
			t.Errorf("a captured sub-board scores %d for X, want > 0", got)
		}
	})

	t.Run("meta near-win needs a live third sub-board", func(t *testing.T) {
		iso := Weights{MetaNearWin: 1}

		b, err := ParseNotation("xxx6/xxx6/9/oo7/oo7/oo7/9/9/9 x -")
		if err != nil {
			t.Fatal(err)
		}
		if got := b.evaluate(PlayerX, &iso); got != 1 {
			t.Errorf("open meta line scores %d, want 1", got)
		}

		// Same wins, but the third sub-board of the line is drawn.
		b, err = ParseNotation("xxx6/xxx6/oxooxxxoo/oo7/oo7/oo7/9/9/9 x -")
		if err != nil {
			t.Fatal(err)
		}
		if got := b.evaluate(PlayerX, &iso); got != 0 {
			t.Errorf("dead meta line scores %d, want 0", got)
		}
	})

	t.Run("scores are symmetric", func(t *testing.T) {
		w := DefaultWeights()
		b, err := ParseNotation("xxx6/oo7/9/9/x8/9/9/9/oo7 x -")
		if err != nil {
			t.Fatal(err)
		}
		x := b.evaluate(PlayerX, &w)
		o := b.evaluate(PlayerO, &w)
		if x != -o {
			t.Errorf("X scores %d but O scores %d, want negations", x, o)
		}
	})

	t.Run("heuristics stay clear of forced-result scores", func(t *testing.T) {
		w := DefaultWeights()
		// X owns three corner sub-boards with two open meta lines; about
		// as lopsided as a live position gets.
		b, err := ParseNotation("xxx6/oo7/xxx6/oo7/oxooxxxoo/oo7/xxx6/oo7/x1x1o1oox x -")
		if err != nil {
			t.Fatal(err)
		}
		got := b.evaluate(PlayerX, &w)
		if got <= 0 {
			t.Errorf("lopsided position scores %d for X, want > 0", got)
		}
		if got >= WinScore-81 {
			t.Errorf("heuristic %d reaches the forced-win range", got)
		}
	})
}
