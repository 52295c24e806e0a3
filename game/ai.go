package game

// AI plays one side of a game using the alpha-beta engine.
type AI struct {
	game   *Game
	player Player
	opts   SearchOptions
}

// NewAI creates an AI that plays as the given player, searching depth plies
// per move.
func NewAI(game *Game, player Player, depth int) *AI {
	return NewAIOptions(game, player, SearchOptions{Depth: depth})
}

// NewAIOptions creates an AI with full control over the search options.
func NewAIOptions(game *Game, player Player, opts SearchOptions) *AI {
	return &AI{
		game:   game,
		player: player,
		opts:   opts,
	}
}

// Player returns the side the AI plays.
func (ai *AI) Player() Player { return ai.player }

// NextMove returns the move the AI would play without making it.
func (ai *AI) NextMove() (Move, error) {
	m, _, err := BestMoveOptions(ai.game.Board, ai.player, ai.opts)
	return m, err
}

// MakeMove searches for the best move and plays it on the game.
func (ai *AI) MakeMove() error {
	m, err := ai.NextMove()
	if err != nil {
		return err
	}
	return ai.game.Apply(m)
}
