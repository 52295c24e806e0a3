package game

import "testing"

func TestNewGame(t *testing.T) {
	t.Run("classic", func(t *testing.T) {
		g := NewGame(VariantClassic, NoPlayer)
		if got := g.Variant(); got != VariantClassic {
			t.Errorf("Variant = %v, want %v", got, VariantClassic)
		}
		if got := g.Turn(); got != PlayerX {
			t.Errorf("Turn = %v, want %v (default first player)", got, PlayerX)
		}
	})

	t.Run("ultimate", func(t *testing.T) {
		g := NewGame(VariantUltimate, PlayerO)
		if got := g.Variant(); got != VariantUltimate {
			t.Errorf("Variant = %v, want %v", got, VariantUltimate)
		}
		if got := g.Turn(); got != PlayerO {
			t.Errorf("Turn = %v, want %v", got, PlayerO)
		}
	})
}

func TestGameClone(t *testing.T) {
	g := NewGame(VariantUltimate, PlayerX)
	if err := g.Apply(Move{Sub: 4, Cell: 4}); err != nil {
		t.Fatal(err)
	}

	c := g.Clone()
	if err := c.Apply(Move{Sub: 4, Cell: 0}); err != nil {
		t.Fatal(err)
	}

	if g.MoveCount() != 1 {
		t.Errorf("clone mutated the original, MoveCount = %d", g.MoveCount())
	}
	if c.MoveCount() != 2 {
		t.Errorf("clone MoveCount = %d, want 2", c.MoveCount())
	}
	if g.String() == c.String() {
		t.Errorf("clone and original render identically after diverging")
	}
}
