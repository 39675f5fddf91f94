// bkg plays games between two configured players, e.g. a trained evaluator against the
// heuristic player, or a human against the trained evaluator, and prints the win tally.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/bkgGo/internal/match"
	"github.com/janpfeifer/bkgGo/internal/players"
	_ "github.com/janpfeifer/bkgGo/internal/players/default"
	"github.com/janpfeifer/bkgGo/internal/profilers"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"github.com/janpfeifer/bkgGo/internal/ui/cli"
	"github.com/janpfeifer/bkgGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	flagPlayers = [2]*string{
		flag.String("p0", "nn,file=weights.bin", "Configuration of the first player, see players/default for the options."),
		flag.String("p1", "heuristic", "Configuration of the second player."),
	}
	flagNumGames    = flag.Int("num_games", 100, "Number of games to play. Players alternate colors (and who plays as White) each game.")
	flagDraw        = flag.Bool("draw", false, "Draw the board after every turn. It implies -parallelism=1.")
	flagDrawDelay   = flag.Duration("draw_delay", 500*time.Millisecond, "Pause after drawing each turn, if -draw is set.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play these many games simultaneously.")
	flagMaxTurns    = flag.Int("max_turns", 0, "Max turns per game, after which the winner is decided by the pieces borne off. 0 for no limit.")
	flagColumns     = flag.Int("columns", StandardColumns, "Number of columns of the board: a multiple of 4 in [8, 48].")
	flagSeed        = flag.Int64("seed", -1, "Random seed for the dice. If negative, a random seed is used.")
)

// Globals
var (
	// globalCtx is cancelled when the program is interrupted (Ctrl+C).
	globalCtx = context.Background()

	ui       = cli.New(true, false)
	muDrawUI sync.Mutex
)

// Tally of wins per player.
type Tally struct {
	mu    sync.Mutex
	Wins  [2]int
	Games int
}

func (t *Tally) add(winnerIdx int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Wins[winnerIdx]++
	t.Games++
}

// String implements fmt.Stringer.
func (t *Tally) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("%d of %d games played, p0 won %d, p1 won %d", t.Games, *flagNumGames, t.Wins[0], t.Wins[1])
}

// isInteractive returns whether the games are drawn or played by a human, in which case
// they are played one at a time.
func isInteractive() bool {
	return *flagDraw || strings.HasPrefix(*flagPlayers[0], "human") || strings.HasPrefix(*flagPlayers[1], "human")
}

func getParallelism() (parallelism int) {
	if isInteractive() {
		return 1
	}
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}

func newRNG(gameIdx int) *rand.Rand {
	if *flagSeed < 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(*flagSeed), uint64(gameIdx)))
}

// drawTurn is the match.TurnHook used with -draw.
func drawTurn(e *match.Episode, color Color, roll Roll, move Move) {
	muDrawUI.Lock()
	defer muDrawUI.Unlock()
	fmt.Println()
	ui.PrintBoard(e.Board())
	if move == nil {
		fmt.Printf("\n%s: turn %d, %s rolled %s and passed\n", e, e.Turns(), ui.PlayerName(color), roll)
	} else {
		fmt.Printf("\n%s: turn %d, %s rolled %s and played %s\n", e, e.Turns(), ui.PlayerName(color), roll, move)
	}
	time.Sleep(*flagDrawDelay)
}

// playGame creates the players and plays one game. Players are created for each game,
// since they are not safe for concurrent use. It returns the index of the winning player.
func playGame(ctx context.Context, gameIdx int, layout Layout) (winnerIdx int, err error) {
	var seats [NumColors]players.Player
	// Even games p0 plays White, odd games it plays Black.
	for playerIdx, config := range flagPlayers {
		seat := Color((playerIdx + gameIdx) % 2)
		seats[seat], err = players.New(layout.NumColumns, *config)
		if err != nil {
			return 0, errors.WithMessagef(err, "-p%d", playerIdx)
		}
	}
	board, err := NewBoard(layout)
	if err != nil {
		return 0, err
	}
	e := match.NewEpisode(board, seats[White], seats[Black], newRNG(gameIdx)).
		WithName(fmt.Sprintf("game-%04d", gameIdx)).
		WithMaxTurns(*flagMaxTurns)
	if *flagDraw {
		e.WithTurnHook(drawTurn)
	}
	winner, err := e.Run(ctx)
	if err != nil {
		return 0, err
	}
	if isInteractive() {
		ui.PrintWinner(winner)
	}
	return (int(winner) + gameIdx) % 2, nil
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	must.M(profilers.Setup(globalCtx))
	defer profilers.OnQuit()

	layout, err := DefaultLayout(*flagColumns)
	if err != nil {
		klog.Exitf("Invalid -columns: %+v", err)
	}
	// Check the player configurations before starting.
	for playerIdx, config := range flagPlayers {
		if _, err := players.New(layout.NumColumns, *config); err != nil {
			klog.Exitf("Invalid -p%d=%q: %+v", playerIdx, *config, err)
		}
	}

	var tally Tally
	parallelism := getParallelism()
	var spinner *spinning.Spinning
	if !isInteractive() {
		spinner = spinning.New(globalCtx, os.Stdout, tally.String)
	}
	var eg errgroup.Group
	eg.SetLimit(parallelism)
	for gameIdx := range *flagNumGames {
		eg.Go(func() error {
			winnerIdx, err := playGame(globalCtx, gameIdx, layout)
			if err != nil {
				if globalCtx.Err() != nil {
					return nil
				}
				return err
			}
			tally.add(winnerIdx)
			return nil
		})
	}
	err = eg.Wait()
	if spinner != nil {
		spinner.Done()
	}
	if err != nil {
		klog.Exitf("Failed to play games: %+v", err)
	}
	if globalCtx.Err() != nil {
		fmt.Printf("Interrupted: %v\n", globalCtx.Err())
	}
	fmt.Println(tally.String())
	if tally.Games > 0 {
		fmt.Printf("p0 (%s) win rate: %.1f%%\n", *flagPlayers[0], 100*float64(tally.Wins[0])/float64(tally.Games))
	}
}
