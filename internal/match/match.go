// Package match runs episodes (matches) between two players: it rolls the dice, presents
// each player the board from its own perspective, applies the selected moves and resolves the
// winner.
package match

import (
	"context"
	"fmt"
	"github.com/janpfeifer/bkgGo/internal/players"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"k8s.io/klog/v2"
	"math/rand/v2"
)

// Status of an Episode.
type Status int

const (
	NotStarted Status = iota
	InProgress
	Over
)

var statusNames = []string{"NotStarted", "InProgress", "Over"}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// TurnHook is called after every turn with the color that played, its roll, and the move
// played (nil for a pass). The move is written from the mover's perspective.
type TurnHook func(e *Episode, color Color, roll Roll, move Move)

// Episode is one match between two players, seated as White and Black.
//
// Players always see the board with their own pieces as White: the board is flipped for the
// duration of the Black seat's turn.
type Episode struct {
	name     string
	board    *Board
	seats    [NumColors]players.Player
	rng      *rand.Rand
	status   Status
	next     Color
	turns    int
	maxTurns int
	winner   Color
	onTurn   TurnHook
}

// NewEpisode creates an episode played on board (which is modified as the episode
// progresses). rng is used for the dice and to pick the first mover.
func NewEpisode(board *Board, white, black players.Player, rng *rand.Rand) *Episode {
	return &Episode{
		name:   "episode",
		board:  board,
		seats:  [NumColors]players.Player{white, black},
		rng:    rng,
		next:   NoColor,
		winner: NoColor,
	}
}

// WithName sets the name used in logs.
func (e *Episode) WithName(name string) *Episode {
	e.name = name
	return e
}

// WithMaxTurns caps the number of turns: when reached, the episode is over and the winner
// is resolved with ResolveWinner on the current position. 0 means no limit.
func (e *Episode) WithMaxTurns(maxTurns int) *Episode {
	e.maxTurns = max(maxTurns, 0)
	return e
}

// WithTurnHook sets a function called after every turn, e.g. to draw the board.
func (e *Episode) WithTurnHook(hook TurnHook) *Episode {
	e.onTurn = hook
	return e
}

// Board being played.
func (e *Episode) Board() *Board { return e.board }

// Status of the episode.
func (e *Episode) Status() Status { return e.status }

// Turns played so far.
func (e *Episode) Turns() int { return e.turns }

// NextColor to play, or NoColor if not started or over.
func (e *Episode) NextColor() Color { return e.next }

// Winner of the episode, or NoColor if it is not over.
func (e *Episode) Winner() Color { return e.winner }

// String implements fmt.Stringer.
func (e *Episode) String() string { return e.name }

// Start the episode with first to move.
func (e *Episode) Start(first Color) {
	if e.status != NotStarted {
		return
	}
	e.status = InProgress
	e.next = first
	klog.V(1).Infof("%s: started, %s (%s) moves first", e, first, e.seats[first])
	e.checkOver()
}

// PlayTurn plays the turn of the next color. It is a no-op if the episode is not in progress.
func (e *Episode) PlayTurn() {
	if e.status != InProgress {
		return
	}
	color := e.next
	roll := RollDice(e.rng, e.board.Die())
	move := e.playTurn(color, roll)
	e.turns++
	if klog.V(2).Enabled() {
		klog.Infof("%s: turn %d, %s rolled %s and played %s", e, e.turns, color, roll, move)
	}
	if e.onTurn != nil {
		e.onTurn(e, color, roll, move)
	}
	e.next = color.Opponent()
	e.checkOver()
}

// playTurn asks the player seated as color for its move, on the board flipped to its
// perspective, and applies it.
func (e *Episode) playTurn(color Color, roll Roll) Move {
	if color == Black {
		restore := e.board.Flip()
		defer restore()
	}
	moves := e.board.LegalMoves(roll, White)
	if len(moves) == 0 {
		return nil
	}
	move, ok := e.seats[color].SelectMove(e.board, moves)
	if !ok {
		return nil
	}
	e.board.Apply(move, White)
	return move
}

func (e *Episode) checkOver() {
	if !e.board.IsOver() && (e.maxTurns == 0 || e.turns < e.maxTurns) {
		return
	}
	e.status = Over
	e.next = NoColor
	e.winner = ResolveWinner(e.board)
	klog.V(1).Infof("%s: over after %d turns, %s (%s) won: %s", e, e.turns, e.winner, e.seats[e.winner], e.board)
}

// Run the episode until it is over, and returns the winner. The first mover is picked at
// random if the episode was not started yet.
//
// It only returns an error if ctx is cancelled, checked before each turn.
func (e *Episode) Run(ctx context.Context) (winner Color, err error) {
	if e.status == NotStarted {
		e.Start(Colors[e.rng.IntN(NumColors)])
	}
	for e.status == InProgress {
		if err = ctx.Err(); err != nil {
			return NoColor, err
		}
		e.PlayTurn()
	}
	return e.winner, nil
}

// Run creates an episode on board and runs it to the end. See Episode.Run.
func Run(ctx context.Context, board *Board, white, black players.Player, rng *rand.Rand) (winner Color, err error) {
	return NewEpisode(board, white, black, rng).Run(ctx)
}

// ResolveWinner returns the color that borne off more pieces. On a tie, the color with
// fewer pieces on the bar wins, and Black wins if those are also tied.
func ResolveWinner(board *Board) Color {
	whiteOut, blackOut := board.Out(White), board.Out(Black)
	switch {
	case whiteOut > blackOut:
		return White
	case blackOut > whiteOut:
		return Black
	case board.Bar(Black) <= board.Bar(White):
		return Black
	default:
		return White
	}
}
