package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pillbox/internal/games/virus"
)

var (
	flagSoakGames int
	flagSoakSteps int
	flagSoakMode  string
)

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Play random games headless and check the board",
	Long: `Play many games with random steering and no terminal, verifying the
board invariants after every step. Exits non-zero if any check fails.
Each game is seeded from --seed, so failures can be replayed.

Examples:
  pillbox soak --games 500
  pillbox soak --mode virus_endless --seed 7 --log-level debug`,
	Run: runSoak,
}

func init() {
	soakCmd.Flags().IntVar(&flagSoakGames, "games", 100, "Number of games to play")
	soakCmd.Flags().IntVar(&flagSoakSteps, "steps", 100000, "Step limit per game")
	soakCmd.Flags().StringVar(&flagSoakMode, "mode", "virus", "Mode: virus or virus_endless")
}

func runSoak(_ *cobra.Command, _ []string) {
	mode := virus.ModeCampaign
	switch flagSoakMode {
	case "virus":
	case "virus_endless":
		mode = virus.ModeEndless
	default:
		exitf("unknown mode %q", flagSoakMode)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	report := virus.Soak(virus.SoakOptions{
		Games:    flagSoakGames,
		Seed:     seed,
		MaxSteps: flagSoakSteps,
		Mode:     mode,
		Config:   loadGameConfig(),
		TickRate: flagFPS,
		Logger:   newLogger("soak", false),
	})

	fmt.Printf("Soak: %d games from seed %d in %s\n", report.Games, seed, time.Since(start).Round(time.Millisecond))
	fmt.Println()
	fmt.Printf("  Won:          %d\n", report.Won)
	fmt.Printf("  Lost:         %d\n", report.Lost)
	fmt.Printf("  Unfinished:   %d\n", report.Unfinished)
	fmt.Printf("  Rounds:       %d\n", report.Rounds)
	fmt.Printf("  Steps:        %d\n", report.Steps)
	fmt.Printf("  Pills:        %d\n", report.Pieces)
	fmt.Printf("  Viruses:      %d cleared\n", report.Contaminants)
	fmt.Printf("  Best chain:   %d\n", report.LongestChain)
	fmt.Printf("  Best score:   %d\n", report.BestScore)
	fmt.Printf("  Best level:   %d\n", report.MaxLevel)

	if !report.OK() {
		fmt.Println()
		for _, f := range report.Failures {
			fmt.Printf("  FAIL %v\n", f)
		}
		exitf("%d invariant failures", len(report.Failures))
	}
}
