package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pillbox/internal/config"
	"github.com/vovakirdan/pillbox/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start pillbox with the interactive menu",
	Long: `Start pillbox in interactive menu mode.

Pick the campaign, endless mode or a specific level, cycle the difficulty
with Left/Right, and browse high scores and round history. After a game
ends (or from the pause screen) press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter        - Select
  Tab          - High scores
  Q            - Quit

Examples:
  pillbox menu
  pillbox menu --fps 30
  pillbox menu --difficulty hard --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	base := loadGameConfig()
	preset := parseDifficulty()
	if preset == "" {
		preset = config.DifficultyNormal
	}

	logger := newLogger("pillbox", true)
	store := openStore()
	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard || menuResult.WantsHistory {
			view := tui.ViewScores
			if menuResult.WantsHistory {
				view = tui.ViewHistory
			}
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, view)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		sel := *menuResult.Selection
		preset = sel.Difficulty
		logger.Info("game selected", "game", sel.GameID, "level", sel.Level, "difficulty", sel.Difficulty)

		// Fresh seed per game unless --seed pins it
		runCfg := cfg
		if flagSeed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}

		back, runErr := tui.Run(tui.GameFor(sel, base), store, runCfg, tui.Options{
			Player: flagPlayer,
			Logger: logger,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}
		if !back {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
