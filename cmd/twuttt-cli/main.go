// Command twuttt-cli plays Tic-tac-toe against the engine in a terminal.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/twipi/twuttt/game"
)

var (
	variantName = "classic"
	difficulty  = "normal"
	depth       = 0
	workers     = 0
	shapeName   = "x"
	aiFirst     = false
)

func init() {
	pflag.StringVarP(&variantName, "variant", "v", variantName, "game variant: classic or ultimate")
	pflag.StringVarP(&difficulty, "difficulty", "d", difficulty, "AI difficulty: easy, normal or hard")
	pflag.IntVar(&depth, "depth", depth, "override the AI search depth (0 picks one by difficulty)")
	pflag.IntVar(&workers, "workers", workers, "cap the AI search workers (0 uses all CPUs)")
	pflag.StringVar(&shapeName, "shape", shapeName, "your piece: x or o")
	pflag.BoolVar(&aiFirst, "ai-first", aiFirst, "let the AI move first")
	pflag.Parse()
}

var profile = termenv.ColorProfile()

func styleX(s string) string {
	return termenv.String(s).Foreground(profile.Color("1")).Bold().String()
}

func styleO(s string) string {
	return termenv.String(s).Foreground(profile.Color("4")).Bold().String()
}

func styleActive(s string) string {
	return termenv.String(s).Foreground(profile.Color("3")).String()
}

func styleFaint(s string) string {
	return termenv.String(s).Faint().String()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	variant, err := game.ParseVariant(variantName)
	if err != nil {
		return err
	}
	human, err := game.ParsePlayer(shapeName)
	if err != nil {
		return err
	}
	if depth == 0 {
		depth = defaultDepth(variant, strings.ToLower(difficulty))
	}

	c := &client{
		variant: variant,
		human:   human,
		opts:    game.SearchOptions{Depth: depth, Workers: workers},
	}
	c.printHelp()
	c.newGame()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		switch input := strings.TrimSpace(strings.ToLower(scanner.Text())); input {
		case "":
		case "q", "quit", "exit":
			return nil
		case "n", "new":
			c.newGame()
		case "b", "board":
			c.printBoard()
		case "u", "undo":
			c.undo()
		case "h", "help", "?":
			c.printHelp()
		default:
			c.playerMove(input)
		}
	}
}

// defaultDepth mirrors how the SMS service picks a depth: classic games are
// searched to the end, ultimate games by difficulty.
func defaultDepth(v game.Variant, difficulty string) int {
	if v == game.VariantClassic {
		return 9
	}
	switch difficulty {
	case "easy":
		return 2
	case "hard":
		return 6
	default:
		return 4
	}
}

type client struct {
	game    *game.Game
	variant game.Variant
	human   game.Player
	opts    game.SearchOptions
}

func (c *client) newGame() {
	first := c.human
	if aiFirst {
		first = c.human.Opponent()
	}
	c.game = game.NewGame(c.variant, first)

	fmt.Printf("New %s game. You play %s.\n", c.variant, strings.ToUpper(c.human.String()))
	if c.game.Turn() != c.human {
		c.aiMove()
	} else {
		c.printBoard()
	}
}

func (c *client) printHelp() {
	if c.variant == game.VariantUltimate {
		fmt.Println("Moves: a board digit then a cell digit, both 1-9, e.g. 57.")
	} else {
		fmt.Println("Moves: a cell number 1-9.")
	}
	fmt.Println("Commands: (u)ndo, (b)oard, (n)ew, (h)elp, (q)uit")
}

func (c *client) playerMove(input string) {
	if c.game.Status().Terminal() {
		fmt.Println("The game is over. Type n for a new one.")
		return
	}
	move, err := c.parseMove(input)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := c.game.Apply(move); err != nil {
		fmt.Println(c.illegalMoveHint())
		return
	}
	c.printBoard()
	if c.finishIfOver() {
		return
	}
	c.aiMove()
}

func (c *client) aiMove() {
	move, score, err := game.BestMoveOptions(c.game.Board, c.human.Opponent(), c.opts)
	if err != nil {
		fmt.Println("AI error:", err)
		return
	}
	if err := c.game.Apply(move); err != nil {
		fmt.Println("AI error:", err)
		return
	}
	fmt.Printf("AI plays %s (eval %+d).\n", c.describeMove(move), score)
	c.printBoard()
	c.finishIfOver()
}

func (c *client) undo() {
	// Before your first move there is nothing of yours to take back, even
	// when the AI has already opened.
	if c.game.MoveCount() == 0 || (c.game.MoveCount() == 1 && c.game.Turn() == c.human) {
		fmt.Println("Nothing to undo.")
		return
	}
	if err := c.game.Undo(); err != nil {
		fmt.Println("Nothing to undo.")
		return
	}
	for c.game.Turn() != c.human {
		if err := c.game.Undo(); err != nil {
			break
		}
	}
	fmt.Println("Rolled back.")
	c.printBoard()
}

func (c *client) parseMove(input string) (game.Move, error) {
	var digits []uint8
	for _, r := range input {
		switch {
		case r >= '1' && r <= '9':
			digits = append(digits, uint8(r-'1'))
		case r == ' ' || r == ',' || r == '-' || r == '.':
			// separator
		default:
			return game.Move{}, fmt.Errorf("cannot read %q as a move, type h for help", input)
		}
	}
	switch {
	case c.variant == game.VariantClassic && len(digits) == 1:
		return game.Move{Cell: digits[0]}, nil
	case c.variant == game.VariantUltimate && len(digits) == 2:
		return game.Move{Sub: digits[0], Cell: digits[1]}, nil
	}
	return game.Move{}, fmt.Errorf("cannot read %q as a move, type h for help", input)
}

func (c *client) describeMove(m game.Move) string {
	if c.variant == game.VariantUltimate {
		return fmt.Sprintf("board %d, cell %d", m.Sub+1, m.Cell+1)
	}
	return strconv.Itoa(int(m.Cell) + 1)
}

func (c *client) illegalMoveHint() string {
	if b, ok := c.game.Board.(*game.UltimateBoard); ok {
		if active, constrained := b.ActiveSub(); constrained {
			return fmt.Sprintf("Illegal move. You must play in board %d.", active+1)
		}
	}
	return "Illegal move. That cell is taken or out of play."
}

func (c *client) finishIfOver() bool {
	st := c.game.Status()
	if !st.Terminal() {
		return false
	}
	switch st.Winner() {
	case c.human:
		fmt.Println("You win! Type n for a rematch.")
	case game.NoPlayer:
		fmt.Println("It's a draw. Type n for a rematch.")
	default:
		fmt.Println("The AI wins. Type n for a rematch.")
	}
	return true
}

func (c *client) printBoard() {
	switch b := c.game.Board.(type) {
	case *game.ClassicBoard:
		c.printClassic(b)
	case *game.UltimateBoard:
		c.printUltimate(b)
	}
}

func (c *client) printClassic(b *game.ClassicBoard) {
	cells := b.Cells()
	for r := range 3 {
		if r > 0 {
			fmt.Println("---+---+---")
		}
		row := make([]string, 3)
		for col := range 3 {
			i := 3*r + col
			row[col] = " " + c.classicCell(cells[i], i) + " "
		}
		fmt.Println(strings.Join(row, "|"))
	}
}

func (c *client) classicCell(p game.Player, i int) string {
	switch p {
	case game.PlayerX:
		return styleX("X")
	case game.PlayerO:
		return styleO("O")
	default:
		return styleFaint(strconv.Itoa(i + 1))
	}
}

func (c *client) printUltimate(b *game.UltimateBoard) {
	active, constrained := b.ActiveSub()
	terminal := b.Status().Terminal()
	isActive := func(sub int) bool {
		if terminal {
			return false
		}
		if constrained {
			return sub == active
		}
		return b.SubStatus(sub) == game.StatusOngoing
	}

	for band := range 3 {
		if band > 0 {
			fmt.Println("------+-------+------")
		}
		for row := range 3 {
			parts := make([]string, 3)
			for si := range 3 {
				sub := 3*band + si
				cells := b.SubBoard(sub)
				cs := make([]string, 3)
				for col := range 3 {
					i := 3*row + col
					cs[col] = c.ultimateCell(cells[i], i, isActive(sub))
				}
				parts[si] = strings.Join(cs, " ")
			}
			fmt.Println(strings.Join(parts, " | "))
		}
	}

	switch {
	case terminal:
	case constrained:
		fmt.Printf("Next move goes to board %d.\n", active+1)
	default:
		fmt.Println("Next move goes to any open board.")
	}
}

func (c *client) ultimateCell(p game.Player, i int, active bool) string {
	switch p {
	case game.PlayerX:
		return styleX("x")
	case game.PlayerO:
		return styleO("o")
	default:
		if active {
			return styleActive(strconv.Itoa(i + 1))
		}
		return styleFaint("·")
	}
}
