package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pillbox/internal/core"
	"github.com/vovakirdan/pillbox/internal/games/virus"
	"github.com/vovakirdan/pillbox/internal/platform/tui"
	"github.com/vovakirdan/pillbox/internal/registry"
	"github.com/vovakirdan/pillbox/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing directly, skipping the menu. The mode defaults to the
campaign ("virus"); "virus_endless" keeps adding viruses level after level.

Controls:
  Left/Right, A/D   - Move capsule
  Down, S, Space    - Drop one row
  Up, X, W          - Rotate clockwise
  Z                 - Rotate counter-clockwise
  P/Esc             - Pause
  R                 - Restart (after game over)
  B                 - Back (while paused or after game over)
  Ctrl+S            - Save screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slow capsules, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Fast capsules, start at 70% difficulty
  fixed  - No progression, stays at config's initial speed

Examples:
  pillbox play
  pillbox play --level 5
  pillbox play virus_endless --difficulty hard
  pillbox play --config ./my-virus.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, fmt.Sprintf("Campaign level to start from (1-%d)", virus.LevelCount()))
}

// terminalConfig builds the runtime config from the flags and the terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database; the game still runs without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "virus"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		exitf("unknown mode %q, run 'pillbox list' to see available modes", gameID)
	}
	if flagLevel < 0 || flagLevel > virus.LevelCount() {
		exitf("level must be between 1 and %d", virus.LevelCount())
	}
	if flagLevel > 0 && gameID != "virus" {
		exitf("--level only applies to the campaign")
	}

	// Validate config up front so a broken file fails before the screen clears
	loadGameConfig()

	virus.SetConfigPath(flagConfig)
	virus.SetDifficultyPreset(parseDifficulty())
	virus.SetStartLevel(flagLevel)

	game, err := registry.Create(gameID)
	if err != nil {
		exitf("creating game: %v", err)
	}

	logger := newLogger("pillbox", true)
	store := openStore()

	_, runErr := tui.Run(game, store, terminalConfig(), tui.Options{
		Player: flagPlayer,
		Logger: logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running game: %v", runErr)
	}
}
