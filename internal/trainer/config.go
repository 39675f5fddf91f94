package trainer

import (
	"github.com/janpfeifer/bkgGo/internal/ai/td"
	"github.com/janpfeifer/bkgGo/internal/state"
	"github.com/pkg/errors"
)

// SelfOpponent is the Config.Opponent value for a greedy player sharing the learner's
// parameters.
const SelfOpponent = "self"

// Config of the training.
type Config struct {
	// NumIterations is the number of episodes to play and learn from.
	NumIterations int

	// Discount of the eligibility trace, in [0, 1].
	Discount float64

	// LearningRate applied to each episode's update.
	LearningRate float64

	// NumHidden is the width of the hidden layer of the network.
	NumHidden int

	// NumColumns and Die configure the board.
	NumColumns, Die int

	// TraceMode of the eligibility trace.
	TraceMode td.TraceMode

	// Opponent the learner plays against: SelfOpponent or a player configuration
	// (see players.New).
	Opponent string

	// MaxTurns per episode, 0 for no limit.
	MaxTurns int

	// Seed for the random number generator. If negative a random seed is used.
	Seed int64

	// LoadFile with parameters to continue training from. If empty, training starts from
	// randomly initialized parameters.
	LoadFile string

	// SaveFile where to save the parameters at the end, and at every checkpoint.
	SaveFile string

	// ReportEvery iterations a progress line is logged. 0 disables it.
	ReportEvery int

	// CheckpointEvery iterations the parameters are saved. 0 disables it.
	CheckpointEvery int
}

// DefaultConfig returns the default training configuration.
func DefaultConfig() Config {
	return Config{
		NumIterations:   10_000,
		Discount:        0.7,
		LearningRate:    1e-3,
		NumHidden:       30,
		NumColumns:      state.StandardColumns,
		Die:             state.DefaultDie,
		TraceMode:       td.TraceCompounding,
		Opponent:        SelfOpponent,
		Seed:            -1,
		ReportEvery:     100,
		CheckpointEvery: 1000,
	}
}

// Validate the configuration.
func (c Config) Validate() error {
	switch {
	case c.NumIterations < 0:
		return errors.Errorf("invalid number of iterations %d", c.NumIterations)
	case c.Discount < 0 || c.Discount > 1:
		return errors.Errorf("discount must be in [0, 1], got %g", c.Discount)
	case c.LearningRate <= 0:
		return errors.Errorf("learning rate must be positive, got %g", c.LearningRate)
	case c.NumHidden <= 0:
		return errors.Errorf("invalid hidden layer width %d", c.NumHidden)
	case c.MaxTurns < 0:
		return errors.Errorf("invalid max turns %d", c.MaxTurns)
	case c.ReportEvery < 0 || c.CheckpointEvery < 0:
		return errors.Errorf("report (%d) and checkpoint (%d) frequencies must be >= 0", c.ReportEvery, c.CheckpointEvery)
	case c.Opponent == "":
		return errors.New("no opponent configured")
	}
	if _, err := c.Layout(); err != nil {
		return err
	}
	return nil
}

// Layout of the board used for training.
func (c Config) Layout() (state.Layout, error) {
	layout, err := state.DefaultLayout(c.NumColumns)
	if err != nil {
		return layout, err
	}
	layout.Die = c.Die
	if err = layout.Validate(); err != nil {
		return layout, err
	}
	return layout, nil
}
