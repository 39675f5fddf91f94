// Package trainer implements the TD self-play training loop: for each iteration a fresh
// episode is played between the td.Learner (seated as White) and a fixed-policy opponent,
// and the learner's update for the episode is applied to the parameters it shares.
package trainer

import (
	"context"
	"fmt"
	"github.com/janpfeifer/bkgGo/internal/ai/nn"
	"github.com/janpfeifer/bkgGo/internal/ai/td"
	"github.com/janpfeifer/bkgGo/internal/features"
	"github.com/janpfeifer/bkgGo/internal/match"
	"github.com/janpfeifer/bkgGo/internal/players"
	"github.com/janpfeifer/bkgGo/internal/searchers/greedy"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"time"
)

// Trainer owns the parameters being trained.
type Trainer struct {
	config   Config
	layout   Layout
	params   *nn.Params
	learner  *td.Learner
	opponent players.Player
	rng      *rand.Rand
	stats    Stats
}

// Stats of the training so far.
type Stats struct {
	// Episodes played.
	Episodes int

	// Wins of the learner.
	Wins int

	// AverageWinRate is a moving average of the learner's wins.
	AverageWinRate float64

	// AverageTurns is a moving average of the number of turns per episode.
	AverageTurns float64
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	rate := 0.0
	if s.Episodes > 0 {
		rate = float64(s.Wins) / float64(s.Episodes)
	}
	return fmt.Sprintf("%d episodes, wins=%.1f%% (~%.1f%% recently), ~%.1f turns/episode",
		s.Episodes, 100*rate, 100*s.AverageWinRate, s.AverageTurns)
}

const averageDecay = 0.99

// movingAverage with the given decay. For the first values (count is the number of values
// including newValue) it is a plain average.
func movingAverage(average, newValue, decay float64, count int) float64 {
	decay = min(1-1/float64(count), decay)
	return average*decay + (1-decay)*newValue
}

// New creates a Trainer: it loads the parameters from config.LoadFile, or initializes them
// randomly, and creates the opponent.
func New(config Config) (*Trainer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid trainer configuration")
	}
	layout, err := config.Layout()
	if err != nil {
		return nil, err
	}
	t := &Trainer{config: config, layout: layout}
	if config.Seed < 0 {
		t.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		t.rng = rand.New(rand.NewPCG(uint64(config.Seed), 0))
	}

	numFeatures := features.Dim(config.NumColumns)
	if config.LoadFile != "" {
		t.params, err = nn.Load(config.LoadFile, numFeatures, config.NumHidden)
		if err != nil {
			return nil, err
		}
		klog.Infof("Continuing training from %s", config.LoadFile)
	} else {
		t.params = nn.NewParams(numFeatures, config.NumHidden, t.rng)
	}
	t.learner = td.NewLearner(t.params, config.Discount).WithTraceMode(config.TraceMode)

	if config.Opponent == SelfOpponent {
		network := nn.New(t.params).WithName("self")
		t.opponent = players.NewSearcherScorer(greedy.New(network), network)
	} else {
		t.opponent, err = players.New(config.NumColumns, config.Opponent)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to create training opponent")
		}
	}
	return t, nil
}

// Params being trained.
func (t *Trainer) Params() *nn.Params { return t.params }

// Stats of the training so far.
func (t *Trainer) Stats() Stats { return t.stats }

// Episode plays one episode to the end and applies the learner's update. It returns whether
// the learner won.
func (t *Trainer) Episode(ctx context.Context) (won bool, err error) {
	board, err := NewBoard(t.layout)
	if err != nil {
		return false, err
	}
	e := match.NewEpisode(board, t.learner, t.opponent, t.rng).
		WithName(fmt.Sprintf("episode-%06d", t.stats.Episodes)).
		WithMaxTurns(t.config.MaxTurns)
	// Episodes are always played to the end: cancellation is only checked between episodes.
	winner, err := e.Run(context.WithoutCancel(ctx))
	if err != nil {
		return false, err
	}
	won = winner == White
	outcome := 0.0
	if won {
		outcome = 1
	}
	update := t.learner.Update(outcome)
	t.params.AddScaled(t.config.LearningRate, update)

	t.stats.Episodes++
	if won {
		t.stats.Wins++
	}
	t.stats.AverageWinRate = movingAverage(t.stats.AverageWinRate, outcome, averageDecay, t.stats.Episodes)
	t.stats.AverageTurns = movingAverage(t.stats.AverageTurns, float64(e.Turns()), averageDecay, t.stats.Episodes)
	return won, nil
}

// Run the training for config.NumIterations episodes, and save the parameters at the end.
//
// Cancelling ctx stops the training after the current episode: the parameters are still
// saved, and no error is returned.
func (t *Trainer) Run(ctx context.Context) error {
	start := time.Now()
	klog.Infof("Training %s with %s against %s, for %d iterations", t.params, t.learner, t.opponent, t.config.NumIterations)
	for iteration := range t.config.NumIterations {
		if ctx.Err() != nil {
			klog.Infof("Training interrupted after %d iterations: %v", iteration, ctx.Err())
			break
		}
		if _, err := t.Episode(ctx); err != nil {
			return errors.WithMessagef(err, "episode #%d", iteration)
		}
		count := iteration + 1
		if t.config.ReportEvery > 0 && count%t.config.ReportEvery == 0 {
			klog.Infof("Iteration %d/%d: %s, elapsed %s", count, t.config.NumIterations, t.stats, time.Since(start).Round(time.Second))
		}
		if t.config.CheckpointEvery > 0 && count%t.config.CheckpointEvery == 0 && count < t.config.NumIterations {
			if err := t.params.Save(t.config.SaveFile); err != nil {
				return errors.WithMessagef(err, "checkpoint at iteration %d", count)
			}
		}
	}
	klog.Infof("Training finished: %s, elapsed %s", t.stats, time.Since(start).Round(time.Second))
	return t.params.Save(t.config.SaveFile)
}
