package virus

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pillbox/internal/config"
	"github.com/vovakirdan/pillbox/internal/core"
	"github.com/vovakirdan/pillbox/internal/games/virus/engine"
	"github.com/vovakirdan/pillbox/internal/logging"
)

// SoakOptions configures a headless run of random games.
type SoakOptions struct {
	Games    int
	Seed     int64 // Game i uses Seed+i
	MaxSteps int   // Per game; unfinished games are counted separately
	Mode     Mode
	Config   config.VirusConfig
	TickRate int
	Logger   *log.Logger
}

// SoakFailure records a board invariant that broke during a soak.
type SoakFailure struct {
	Game int
	Seed int64
	Step int
	Err  error
}

func (f SoakFailure) Error() string {
	return fmt.Sprintf("game %d (seed %d) step %d: %v", f.Game, f.Seed, f.Step, f.Err)
}

// SoakReport aggregates a soak run.
type SoakReport struct {
	Games        int
	Won          int
	Lost         int
	Unfinished   int
	Rounds       int
	Steps        int
	Pieces       int
	Contaminants int // Contaminants cleared across finished rounds
	LongestChain int
	BestScore    int
	MaxLevel     int
	Failures     []SoakFailure
}

// OK reports whether every game kept its invariants.
func (r SoakReport) OK() bool {
	return len(r.Failures) == 0
}

// Soak plays games with random steering and checks the board after every step.
func Soak(opts SoakOptions) SoakReport {
	if opts.Games <= 0 {
		opts.Games = 1
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 100000
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Mode == "" {
		opts.Mode = ModeCampaign
	}
	if opts.Config == (config.VirusConfig{}) {
		opts.Config = config.DefaultVirusConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	var report SoakReport
	for i := 0; i < opts.Games; i++ {
		seed := opts.Seed + int64(i)
		report.Games++
		soakGame(&report, opts, i, seed)
		logger.Debug("soak game finished", "game", i, "seed", seed, "rounds", report.Rounds, "failures", len(report.Failures))
	}
	logger.Info("soak complete",
		"games", report.Games, "won", report.Won, "lost", report.Lost,
		"unfinished", report.Unfinished, "failures", len(report.Failures))
	return report
}

func soakGame(report *SoakReport, opts SoakOptions, index int, seed int64) {
	step := 0
	defer func() {
		if r := recover(); r != nil {
			var ie *engine.InvariantError
			err, ok := r.(error)
			if !ok || !errors.As(err, &ie) {
				panic(r)
			}
			report.Failures = append(report.Failures, SoakFailure{Game: index, Seed: seed, Step: step, Err: err})
		}
	}()

	g := NewWithConfig(opts.Mode, opts.Config)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: opts.TickRate, Seed: seed})
	steer := rand.New(rand.NewSource(seed ^ 0x5eed))

	for ; step < opts.MaxSteps; step++ {
		res := g.Step(randomFrame(steer))
		report.Steps++
		for _, ev := range res.Events {
			if ev.Round != nil {
				report.addRound(*ev.Round)
			}
		}
		if err := g.Round().CheckInvariants(); err != nil {
			report.Failures = append(report.Failures, SoakFailure{Game: index, Seed: seed, Step: step, Err: err})
			return
		}
		report.MaxLevel = max(report.MaxLevel, res.State.Level)
		if res.State.GameOver {
			report.BestScore = max(report.BestScore, res.State.Score)
			if res.State.Won {
				report.Won++
			} else {
				report.Lost++
			}
			return
		}
	}
	report.BestScore = max(report.BestScore, g.State().Score)
	report.Unfinished++
}

func (r *SoakReport) addRound(s core.RoundSummary) {
	r.Rounds++
	r.Pieces += s.Pieces
	r.Contaminants += s.Cleared
	r.LongestChain = max(r.LongestChain, s.LongestChain)
}

// randomFrame presses one steering key on roughly a quarter of the steps.
func randomFrame(rng *rand.Rand) core.InputFrame {
	frame := core.NewInputFrame()
	if rng.Intn(4) == 0 {
		frame.Set(pieceActions[rng.Intn(len(pieceActions))])
	}
	return frame
}
