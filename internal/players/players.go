// Package players defines the Player interface and a factory of players from configuration
// strings. Player providers register themselves as modules, see package players/default.
package players

import (
	"github.com/janpfeifer/bkgGo/internal/parameters"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"github.com/pkg/errors"
	"maps"
	"slices"
)

// Player is anything that is able to play the game.
//
// The board is always presented from the player's perspective: its pieces are White.
type Player interface {
	// SelectMove returns one of the moves. It returns ok=false if it won't move, which is
	// handled as a pass.
	SelectMove(board *Board, moves []Move) (move Move, ok bool)
}

// Module creates players from their parameters.
type Module interface {
	// NewPlayer is called at the start of a match played on boards with numColumns columns.
	// It should pop the parameters it uses: parameters left over are reported as an error.
	NewPlayer(numColumns int, params parameters.Params) (Player, error)
}

var (
	// Registered modules.
	keywordToModules = make(map[string]Module)
)

// RegisterModule so it can be used by any of the front-ends.
func RegisterModule(name string, module Module) {
	keywordToModules[name] = module
}

// Modules returns the names of the registered modules, sorted.
func Modules() []string {
	return slices.Sorted(maps.Keys(keywordToModules))
}

// DefaultPlayerConfig is used if no configuration is given.
var DefaultPlayerConfig = "heuristic"

// New creates a new Player given the configuration string.
//
// config is the module name followed by an optional comma-separated list of parameters with
// optional values, e.g.: "nn,file=weights.bin,depth=1". If empty, DefaultPlayerConfig is used.
func New(numColumns int, config string) (Player, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	moduleName, params := parameters.Parse(config)
	module, found := keywordToModules[moduleName]
	if !found {
		if len(keywordToModules) == 0 {
			return nil, errors.Errorf("unknown player %q: no modules registered, perhaps you need to import _ \"github.com/janpfeifer/bkgGo/internal/players/default\"", moduleName)
		}
		return nil, errors.Errorf("unknown player %q, registered players are %q", moduleName, Modules())
	}
	player, err := module.NewPlayer(numColumns, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create player %q", config)
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, errors.WithMessagef(err, "player %q", config)
	}
	return player, nil
}
