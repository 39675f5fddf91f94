package trainer

import (
	"context"
	"github.com/janpfeifer/bkgGo/internal/ai/nn"
	"github.com/janpfeifer/bkgGo/internal/ai/td"
	"github.com/janpfeifer/bkgGo/internal/features"
	_ "github.com/janpfeifer/bkgGo/internal/players/default"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func smallConfig(t *testing.T) Config {
	config := DefaultConfig()
	config.NumIterations = 10
	config.NumColumns = 8
	config.Die = 3
	config.NumHidden = 4
	config.LearningRate = 0.1
	config.Seed = 42
	config.MaxTurns = 500
	config.ReportEvery = 5
	config.CheckpointEvery = 4
	config.SaveFile = filepath.Join(t.TempDir(), "weights.bin")
	return config
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 10_000, config.NumIterations)
	assert.Equal(t, 0.7, config.Discount)
	assert.Equal(t, 1e-3, config.LearningRate)
	assert.Equal(t, 30, config.NumHidden)
	assert.Equal(t, 24, config.NumColumns)
	assert.Equal(t, td.TraceCompounding, config.TraceMode)
	assert.Equal(t, SelfOpponent, config.Opponent)
}

func TestValidate(t *testing.T) {
	for name, modify := range map[string]func(c *Config){
		"discount":      func(c *Config) { c.Discount = 1.5 },
		"learning rate": func(c *Config) { c.LearningRate = 0 },
		"hidden":        func(c *Config) { c.NumHidden = 0 },
		"columns":       func(c *Config) { c.NumColumns = 10 },
		"die":           func(c *Config) { c.Die = 0 },
		"max turns":     func(c *Config) { c.MaxTurns = -1 },
		"opponent":      func(c *Config) { c.Opponent = "" },
	} {
		config := DefaultConfig()
		modify(&config)
		assert.Error(t, config.Validate(), "invalid %s not detected", name)
		_, err := New(config)
		assert.Error(t, err, "invalid %s not detected", name)
	}
}

func TestMovingAverage(t *testing.T) {
	avg := movingAverage(0, 1, 0.99, 1)
	assert.Equal(t, 1.0, avg)
	avg = movingAverage(avg, 0, 0.99, 2)
	assert.InDelta(t, 0.5, avg, 1e-12)
	avg = movingAverage(1, 0, 0.99, 1000)
	assert.InDelta(t, 0.99, avg, 1e-12)
}

func TestRun(t *testing.T) {
	config := smallConfig(t)
	tr, err := New(config)
	require.NoError(t, err)
	initial := tr.Params().Clone()

	require.NoError(t, tr.Run(context.Background()))
	stats := tr.Stats()
	assert.Equal(t, config.NumIterations, stats.Episodes)
	assert.GreaterOrEqual(t, stats.Wins, 0)
	assert.LessOrEqual(t, stats.Wins, stats.Episodes)
	assert.Greater(t, stats.AverageTurns, 0.0)
	assert.False(t, initial.EqualApprox(tr.Params(), 0), "parameters were not updated")

	// The checkpoint at iteration 8 was backed up by the final save.
	_, err = os.Stat(config.SaveFile + "~")
	assert.NoError(t, err)
	saved, err := nn.Load(config.SaveFile, features.Dim(config.NumColumns), config.NumHidden)
	require.NoError(t, err)
	assert.True(t, saved.EqualApprox(tr.Params(), 0))

	// Continue training from the saved file, against a different opponent.
	config.LoadFile = config.SaveFile
	config.Opponent = "random,seed=1"
	config.TraceMode = td.TraceStandard
	config.NumIterations = 3
	tr, err = New(config)
	require.NoError(t, err)
	assert.True(t, saved.EqualApprox(tr.Params(), 0))
	require.NoError(t, tr.Run(context.Background()))
	assert.Equal(t, 3, tr.Stats().Episodes)
}

func TestRunInterrupted(t *testing.T) {
	config := smallConfig(t)
	tr, err := New(config)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, tr.Run(ctx))
	assert.Equal(t, 0, tr.Stats().Episodes)
	_, err = os.Stat(config.SaveFile)
	assert.NoError(t, err, "parameters must be saved even if interrupted")
}

func TestNewErrors(t *testing.T) {
	config := smallConfig(t)
	config.LoadFile = filepath.Join(t.TempDir(), "missing.bin")
	_, err := New(config)
	assert.ErrorIs(t, err, nn.ErrMissingWeights)

	config = smallConfig(t)
	config.Opponent = "unknown_player"
	_, err = New(config)
	assert.Error(t, err)
}
