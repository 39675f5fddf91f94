// trainer learns the nn evaluator with TD self-play, and saves its parameters.
package main

import (
	"context"
	"flag"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/bkgGo/internal/ai/td"
	_ "github.com/janpfeifer/bkgGo/internal/players/default"
	"github.com/janpfeifer/bkgGo/internal/profilers"
	"github.com/janpfeifer/bkgGo/internal/trainer"
	"github.com/janpfeifer/bkgGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
	"time"
)

var defaults = trainer.DefaultConfig()

var (
	flagNumIterations = flag.Int("num_iterations", defaults.NumIterations, "Number of episodes to play and learn from.")
	flagDiscount      = flag.Float64("discount", defaults.Discount, "Discount of the eligibility trace, in [0, 1].")
	flagLearningRate  = flag.Float64("learning_rate", defaults.LearningRate, "Learning rate applied to each episode's update.")
	flagHidden        = flag.Int("hidden", defaults.NumHidden, "Width of the hidden layer.")
	flagColumns       = flag.Int("columns", defaults.NumColumns, "Number of columns of the board: a multiple of 4 in [8, 48].")
	flagDie           = flag.Int("die", defaults.Die, "Number of faces of the dice.")
	flagSeed          = flag.Int64("seed", defaults.Seed, "Random seed. If negative, a random seed is used.")
	flagTrace         = flag.String("trace", defaults.TraceMode.String(), "Eligibility trace mode: \"compounding\" or \"standard\".")
	flagOpponent      = flag.String("opponent", defaults.Opponent,
		"Opponent of the learner: \"self\" for a greedy player sharing the parameters being trained, "+
			"or a player configuration, e.g.: \"random\", \"heuristic\" or \"nn,file=other.bin\".")
	flagLoad            = flag.String("load", "", "Parameters file to continue training from.")
	flagSave            = flag.String("save", "weights.bin", "File where to save the trained parameters.")
	flagReportEvery     = flag.Int("report_every", defaults.ReportEvery, "Log progress every these many iterations. 0 disables it.")
	flagCheckpointEvery = flag.Int("checkpoint_every", defaults.CheckpointEvery, "Save the parameters every these many iterations. 0 disables it.")
	flagMaxTurns        = flag.Int("max_turns", defaults.MaxTurns, "Max turns per episode, after which the winner is decided by the pieces borne off. 0 for no limit.")
)

// Globals
var (
	// globalCtx is cancelled when the program is interrupted (Ctrl+C).
	globalCtx = context.Background()
)

func configFromFlags() (config trainer.Config, err error) {
	config = trainer.DefaultConfig()
	config.NumIterations = *flagNumIterations
	config.Discount = *flagDiscount
	config.LearningRate = *flagLearningRate
	config.NumHidden = *flagHidden
	config.NumColumns = *flagColumns
	config.Die = *flagDie
	config.Seed = *flagSeed
	config.Opponent = *flagOpponent
	config.LoadFile = *flagLoad
	config.SaveFile = *flagSave
	config.ReportEvery = *flagReportEvery
	config.CheckpointEvery = *flagCheckpointEvery
	config.MaxTurns = *flagMaxTurns
	config.TraceMode, err = td.ParseTraceMode(*flagTrace)
	if err != nil {
		return
	}
	err = config.Validate()
	return
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C: training stops after the current episode, and parameters are saved.
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 10*time.Second)
	defer cancel()

	must.M(profilers.Setup(globalCtx))
	defer profilers.OnQuit()

	config := must.M1(configFromFlags())
	t := must.M1(trainer.New(config))
	err := exceptions.TryCatch[error](func() {
		must.M(t.Run(globalCtx))
	})
	if err != nil {
		klog.Exitf("Training failed: %+v", err)
	}
}
