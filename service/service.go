package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "embed"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/twipi/pubsub"
	"github.com/twipi/twipi/proto/out/twicmdproto"
	"github.com/twipi/twipi/proto/out/twismsproto"
	"github.com/twipi/twipi/twicmd"
	"github.com/twipi/twipi/twisms"
	"github.com/twipi/twuttt/game"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/encoding/prototext"
)

//go:embed service.txtpb
var servicePrototext []byte

var service = (func() *twicmdproto.Service {
	service := new(twicmdproto.Service)
	if err := prototext.Unmarshal(servicePrototext, service); err != nil {
		panic(fmt.Sprintf("failed to unmarshal service proto: %v", err))
	}
	return service
})()

const gameExpiry = 24 * time.Hour

type runningGame struct {
	*game.Game
	ID        string
	AI        *game.AI
	Human     game.Player
	StartedAt time.Time
}

// Service is the main running Tic-tac-toe Twicmd service.
type Service struct {
	sendCh  chan *twismsproto.Message
	sendSub pubsub.Subscriber[*twismsproto.Message]
	games   *xsync.MapOf[string, *runningGame]
	prefs   *PrefsStore
	logger  *slog.Logger
}

var (
	_ twicmd.Service           = (*Service)(nil)
	_ twisms.MessageSubscriber = (*Service)(nil)
)

func NewService(prefs *PrefsStore, logger *slog.Logger) *Service {
	return &Service{
		sendCh: make(chan *twismsproto.Message),
		games:  xsync.NewMapOf[string, *runningGame](),
		prefs:  prefs,
		logger: logger,
	}
}

// Name implements [twicmd.Service].
func (s *Service) Name() string {
	return service.Name
}

// Service implements [twicmd.Service].
func (s *Service) Service(ctx context.Context) (*twicmdproto.Service, error) {
	return service, nil
}

// Execute implements [twicmd.Service].
func (s *Service) Execute(ctx context.Context, req *twicmdproto.ExecuteRequest) (*twicmdproto.ExecuteResponse, error) {
	switch req.Command.Command {
	case "start":
		return s.cmdStart(req)
	case "place":
		return s.cmdPlace(req)
	case "undo":
		return s.cmdUndo(req)
	case "board":
		return s.cmdBoard(req)
	case "config":
		return s.cmdConfig(req)
	default:
		return nil, fmt.Errorf("unknown command: %q", req.Command.Command)
	}
}

func (s *Service) cmdStart(req *twicmdproto.ExecuteRequest) (*twicmdproto.ExecuteResponse, error) {
	args := twicmd.MapArguments(req.Command.Arguments)
	prefs := s.prefs.Get(req.Message.From)

	variantName := strings.ToLower(args["variant"])
	if variantName == "" {
		variantName = prefs.Variant
	}
	variant, err := game.ParseVariant(variantName)
	if err != nil {
		return twicmd.StatusResponse(`Unknown variant. Play "classic" or "ultimate".`), nil
	}

	difficulty, err := pickDifficulty(prefs, args["difficulty"])
	if err != nil {
		return twicmd.StatusResponse(`Unknown difficulty. Pick "easy", "normal" or "hard".`), nil
	}

	human, err := game.ParsePlayer(prefs.PlayerShape)
	if err != nil {
		human = game.PlayerX
	}
	first := human
	if !prefs.PlayerFirst {
		first = human.Opponent()
	}

	gm := game.NewGame(variant, first)
	rg := &runningGame{
		Game:      gm,
		ID:        uuid.NewString(),
		AI:        game.NewAI(gm, human.Opponent(), searchDepth(variant, difficulty)),
		Human:     human,
		StartedAt: time.Now(),
	}

	s.logger.Debug(
		"starting new game",
		"phone_number", req.Message.From,
		"game_id", rg.ID,
		"variant", variant,
		"difficulty", difficulty,
		"ai_plays", rg.AI.Player())

	_, overridden := s.games.LoadAndStore(req.Message.From, rg)

	if overridden {
		s.sendCh <- twisms.NewReplyingMessage(req.Message, twisms.NewTextBody(fmt.Sprintf(
			"An existing game was overridden. A new %s game has started.", variant,
		)))
	} else {
		s.sendCh <- twisms.NewReplyingMessage(req.Message, twisms.NewTextBody(fmt.Sprintf(
			"A new %s game has started.", variant,
		)))
	}

	if gm.Turn() != rg.Human {
		if err := rg.AI.MakeMove(); err != nil {
			return nil, fmt.Errorf("AI opening move: %w", err)
		}
		s.sendCh <- twisms.NewReplyingMessage(req.Message, drawBoardMessage("The AI opened:", rg))
	} else {
		s.sendCh <- twisms.NewReplyingMessage(req.Message, drawBoardMessage("It is now your turn.", rg))
	}
	return nil, nil
}

func (s *Service) cmdPlace(req *twicmdproto.ExecuteRequest) (*twicmdproto.ExecuteResponse, error) {
	args := twicmd.MapArguments(req.Command.Arguments)
	s.logger.Debug(
		"placing piece",
		"phone_number", req.Message.From,
		"position", args["position"])

	rg, ok := s.games.Load(req.Message.From)
	if !ok {
		return twicmd.StatusResponse("No game found. Please start a new game."), nil
	}

	move, err := parsePosition(rg.Variant(), args["position"])
	if err != nil {
		return twicmd.StatusResponse(positionHelp(rg.Variant())), nil
	}

	if err := rg.Apply(move); err != nil {
		// The board is untouched on an illegal move.
		return twicmd.StatusResponse(illegalMoveText(rg)), nil
	}
	s.sendCh <- twisms.NewReplyingMessage(req.Message, drawBoardMessage("You just placed:", rg))
	if resp, over := s.finishIfOver(req, rg); over {
		return resp, nil
	}

	if err := rg.AI.MakeMove(); err != nil {
		return nil, fmt.Errorf("AI move: %w", err)
	}
	s.sendCh <- twisms.NewReplyingMessage(req.Message, drawBoardMessage("In return, the AI placed:", rg))
	if resp, over := s.finishIfOver(req, rg); over {
		return resp, nil
	}
	return nil, nil
}

func (s *Service) cmdUndo(req *twicmdproto.ExecuteRequest) (*twicmdproto.ExecuteResponse, error) {
	rg, ok := s.games.Load(req.Message.From)
	if !ok {
		return twicmd.StatusResponse("No game found. Please start a new game."), nil
	}

	s.logger.Debug(
		"undoing moves",
		"phone_number", req.Message.From,
		"game_id", rg.ID)

	if !rg.undoRound() {
		return twicmd.StatusResponse("There is nothing to undo yet."), nil
	}

	s.sendCh <- twisms.NewReplyingMessage(req.Message, drawBoardMessage("Rolled back. It is your turn again.", rg))
	return nil, nil
}

// undoRound takes back plies until it is the player's turn again, at least
// one, so one undo retracts the AI's reply along with the player's own
// move. It reports false when the player has not moved yet: the AI's
// opening move alone is not undoable.
func (rg *runningGame) undoRound() bool {
	if rg.MoveCount() == 0 || (rg.MoveCount() == 1 && rg.Turn() == rg.Human) {
		return false
	}
	if err := rg.Undo(); err != nil {
		return false
	}
	for rg.Turn() != rg.Human {
		if err := rg.Undo(); err != nil {
			break
		}
	}
	return true
}

func (s *Service) cmdBoard(req *twicmdproto.ExecuteRequest) (*twicmdproto.ExecuteResponse, error) {
	rg, ok := s.games.Load(req.Message.From)
	if !ok {
		return twicmd.StatusResponse("No game found. Please start a new game."), nil
	}
	s.sendCh <- twisms.NewReplyingMessage(req.Message, drawBoardMessage("Current board:", rg))
	return nil, nil
}

func (s *Service) cmdConfig(req *twicmdproto.ExecuteRequest) (*twicmdproto.ExecuteResponse, error) {
	args := twicmd.MapArguments(req.Command.Arguments)
	prefs := s.prefs.Get(req.Message.From)

	changed := false
	if v := strings.ToLower(args["variant"]); v != "" {
		variant, err := game.ParseVariant(v)
		if err != nil {
			return twicmd.StatusResponse(`Unknown variant. Play "classic" or "ultimate".`), nil
		}
		prefs.Variant = variant.String()
		changed = true
	}
	if d := strings.ToLower(args["difficulty"]); d != "" {
		if !validDifficulty(d) {
			return twicmd.StatusResponse(`Unknown difficulty. Pick "easy", "normal" or "hard".`), nil
		}
		prefs.Difficulty = d
		changed = true
	}
	if sh := strings.ToLower(args["shape"]); sh != "" {
		shape, err := game.ParsePlayer(sh)
		if err != nil {
			return twicmd.StatusResponse(`Unknown shape. Pick "x" or "o".`), nil
		}
		prefs.PlayerShape = strings.ToLower(shape.String())
		changed = true
	}
	if f := strings.ToLower(args["first"]); f != "" {
		switch f {
		case "me":
			prefs.PlayerFirst = true
		case "ai":
			prefs.PlayerFirst = false
		default:
			return twicmd.StatusResponse(`Unknown first player. Pick "me" or "ai".`), nil
		}
		changed = true
	}

	if changed {
		s.prefs.Put(req.Message.From, prefs)
		s.logger.Debug(
			"updated preferences",
			"phone_number", req.Message.From,
			"variant", prefs.Variant,
			"difficulty", prefs.Difficulty)
	}

	first := "you"
	if !prefs.PlayerFirst {
		first = "the AI"
	}
	summary := fmt.Sprintf(
		"Variant: %s. Difficulty: %s. You play %s and %s moves first. Changes apply to your next game.",
		prefs.Variant, prefs.Difficulty, strings.ToUpper(prefs.PlayerShape), first,
	)
	return twicmd.TextResponse(summary), nil
}

// finishIfOver builds the game-over response once the board is terminal.
func (s *Service) finishIfOver(req *twicmdproto.ExecuteRequest, rg *runningGame) (*twicmdproto.ExecuteResponse, bool) {
	st := rg.Status()
	if !st.Terminal() {
		return nil, false
	}

	s.logger.Debug(
		"game over",
		"phone_number", req.Message.From,
		"game_id", rg.ID,
		"status", st,
		"moves", rg.MoveCount())
	s.games.Delete(req.Message.From)

	if winner := st.Winner(); winner != game.NoPlayer {
		return twicmd.TextResponse(fmt.Sprintf("The game is over. %s wins!", playerEmoji[winner])), true
	}
	return twicmd.TextResponse("The game is over. It's a draw!"), true
}

func illegalMoveText(rg *runningGame) string {
	if b, ok := rg.Game.Board.(*game.UltimateBoard); ok {
		if active, constrained := b.ActiveSub(); constrained {
			return fmt.Sprintf("Invalid move. You must play in board %d.", active+1)
		}
	}
	return "Invalid move. That cell is taken or out of play."
}

// parsePosition reads a player-facing 1-based position: one digit for
// classic, board digit then cell digit for ultimate. Spaces and common
// separators between the digits are ignored.
func parsePosition(v game.Variant, s string) (game.Move, error) {
	digits := make([]uint8, 0, 2)
	for _, r := range s {
		switch {
		case r >= '1' && r <= '9':
			digits = append(digits, uint8(r-'1'))
		case r == ' ' || r == ',' || r == '-' || r == '.':
			// separator
		default:
			return game.Move{}, fmt.Errorf("invalid position: %q", s)
		}
	}
	switch {
	case v == game.VariantClassic && len(digits) == 1:
		return game.Move{Cell: digits[0]}, nil
	case v == game.VariantUltimate && len(digits) == 2:
		return game.Move{Sub: digits[0], Cell: digits[1]}, nil
	}
	return game.Move{}, fmt.Errorf("invalid position: %q", s)
}

func positionHelp(v game.Variant) string {
	if v == game.VariantUltimate {
		return "Invalid position. Send two numbers between 1 and 9, board then cell, e.g. 57."
	}
	return "Invalid position. Please provide a number between 1 and 9."
}

func pickDifficulty(prefs PlayerPrefs, arg string) (string, error) {
	d := strings.ToLower(arg)
	if d == "" {
		d = prefs.Difficulty
	}
	if d == "" {
		d = "normal"
	}
	if !validDifficulty(d) {
		return "", fmt.Errorf("invalid difficulty: %q", d)
	}
	return d, nil
}

func validDifficulty(d string) bool {
	switch d {
	case "easy", "normal", "hard":
		return true
	default:
		return false
	}
}

// searchDepth maps a difficulty to a search depth. Classic boards are small
// enough to search to the end regardless.
func searchDepth(v game.Variant, difficulty string) int {
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

func (s *Service) Start(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)

	errg.Go(func() error {
		return s.sendSub.Listen(ctx, s.sendCh)
	})

	errg.Go(func() error {
		ticker := time.NewTicker(4 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()

			case now := <-ticker.C:
				// clean up
				s.games.Range(func(key string, value *runningGame) bool {
					if value.StartedAt.Add(gameExpiry).Before(now) {
						s.logger.Debug(
							"game expired, deleting",
							"phone_number", key,
							"game_id", value.ID,
							"started_at", value.StartedAt)
						s.games.Delete(key)
					}
					return true
				})
			}
		}
	})

	return errg.Wait()
}

// SubscribeMessages implements [twisms.MessageSubscriber].
func (s *Service) SubscribeMessages(ch chan<- *twismsproto.Message, filters *twismsproto.MessageFilters) {
	s.sendSub.Subscribe(ch, func(msg *twismsproto.Message) bool {
		return twisms.FilterMessage(filters, msg)
	})
}

// UnsubscribeMessages implements [twisms.MessageSubscriber].
func (s *Service) UnsubscribeMessages(ch chan<- *twismsproto.Message) {
	s.sendSub.Unsubscribe(ch)
}
