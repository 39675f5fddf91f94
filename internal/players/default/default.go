// Package _default registers the default players that can be included in any front-end:
//
//   - random: plays uniformly at random. Parameters: seed (int).
//   - heuristic: maximizes its pip count advantage.
//   - nn: the trained evaluator, see NN.
//   - human: reads its moves from the terminal.
package _default

import (
	"github.com/janpfeifer/bkgGo/internal/ai/nn"
	"github.com/janpfeifer/bkgGo/internal/features"
	"github.com/janpfeifer/bkgGo/internal/parameters"
	"github.com/janpfeifer/bkgGo/internal/players"
	"github.com/janpfeifer/bkgGo/internal/searchers"
	"github.com/janpfeifer/bkgGo/internal/searchers/expectimax"
	"github.com/janpfeifer/bkgGo/internal/searchers/greedy"
	"github.com/janpfeifer/bkgGo/internal/ui/cli"
	"github.com/pkg/errors"
	"math/rand/v2"
	"os"
)

func init() {
	players.RegisterModule("random", Random{})
	players.RegisterModule("heuristic", Heuristic{})
	players.RegisterModule("nn", NN{})
	players.RegisterModule("human", Human{})
}

// newRNG returns a random number generator seeded with the "seed" parameter, or randomly
// seeded if not given.
func newRNG(params parameters.Params) (*rand.Rand, error) {
	seed, err := parameters.PopParamOr(params, "seed", -1)
	if err != nil {
		return nil, err
	}
	if seed < 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), nil
	}
	return rand.New(rand.NewPCG(uint64(seed), 0)), nil
}

// Random module.
type Random struct{}

// Assert Random implements Module.
var _ players.Module = Random{}

// NewPlayer implements players.Module.
func (Random) NewPlayer(_ int, params parameters.Params) (players.Player, error) {
	rng, err := newRNG(params)
	if err != nil {
		return nil, err
	}
	return players.NewRandom(rng), nil
}

// Heuristic module.
type Heuristic struct{}

// Assert Heuristic implements Module.
var _ players.Module = Heuristic{}

// NewPlayer implements players.Module.
func (Heuristic) NewPlayer(_ int, _ parameters.Params) (players.Player, error) {
	return players.Heuristic{}, nil
}

// DefaultNumHidden is the width of the hidden layer of the nn player, if not configured.
const DefaultNumHidden = 30

// NN module creates players using the trained evaluator. Parameters:
//
//   - file (string, required): weights saved by the trainer.
//   - hidden (int): width of the hidden layer, default is DefaultNumHidden.
//   - depth (int): 0 (default) uses the one-ply greedy search, larger values use expectimax
//     search over the dice to the given depth.
//   - adversarial (bool): for expectimax, assume the opponent picks the worst move for the player.
//   - randomness (float): if > 0, moves are drawn from a softmax of their values divided
//     by randomness.
//   - seed (int): seed for randomness.
type NN struct{}

// Assert NN implements Module.
var _ players.Module = NN{}

// NewPlayer implements players.Module.
func (NN) NewPlayer(numColumns int, params parameters.Params) (players.Player, error) {
	file, err := parameters.PopParamOr(params, "file", "")
	if err != nil {
		return nil, err
	}
	numHidden, err := parameters.PopParamOr(params, "hidden", DefaultNumHidden)
	if err != nil {
		return nil, err
	}
	depth, err := parameters.PopParamOr(params, "depth", 0)
	if err != nil {
		return nil, err
	}
	adversarial, err := parameters.PopParamOr(params, "adversarial", false)
	if err != nil {
		return nil, err
	}
	randomness, err := parameters.PopParamOr(params, "randomness", 0.0)
	if err != nil {
		return nil, err
	}
	rng, err := newRNG(params)
	if err != nil {
		return nil, err
	}
	if depth < 0 {
		return nil, errors.Errorf("nn: invalid depth=%d", depth)
	}

	weights, err := nn.Load(file, features.Dim(numColumns), numHidden)
	if err != nil {
		return nil, err
	}
	network := nn.New(weights)
	var searcher searchers.Searcher
	if depth == 0 {
		searcher = greedy.New(network)
	} else {
		searcher = expectimax.New(network).WithMaxDepth(depth).WithAdversarial(adversarial)
	}
	searcher = searchers.NewRandomizedSearcher(searcher, randomness, rng)
	return players.NewSearcherScorer(searcher, network), nil
}

// Human module.
type Human struct{}

// Assert Human implements Module.
var _ players.Module = Human{}

// NewPlayer implements players.Module.
func (Human) NewPlayer(_ int, params parameters.Params) (players.Player, error) {
	color, err := parameters.PopParamOr(params, "color", true)
	if err != nil {
		return nil, err
	}
	return cli.NewHuman(cli.New(color, false), os.Stdin), nil
}
