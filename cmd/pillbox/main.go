// pillbox is a falling-capsule puzzle for the terminal: match colors to clear
// every virus from the bottle.
//
// Usage:
//
//	pillbox list              - List game modes
//	pillbox play [mode]       - Play campaign or endless directly
//	pillbox menu              - Start the interactive menu
//	pillbox serve             - Start SSH server for remote play
//	pillbox scores [mode]     - Show high scores
//	pillbox history [mode]    - Show recent rounds
//	pillbox soak              - Play random games headless and check the board
//	pillbox config            - Print or install the default config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.pillbox/scores.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pillbox/internal/config"
	"github.com/vovakirdan/pillbox/internal/logging"

	// Import games to register them
	_ "github.com/vovakirdan/pillbox/internal/games/virus"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagPlayer     string
)

var logFile *os.File

func main() {
	err := rootCmd.Execute()
	closeLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pillbox",
	Short: "Pillbox - clear the viruses with falling capsules",
	Long: `Pillbox is a terminal puzzle: drop two-colored capsules into the
bottle and line up four or more of a color to destroy the viruses.

Available commands:
  list     - Show game modes
  play     - Play a mode directly
  menu     - Interactive menu with level and difficulty selection
  serve    - Start SSH server for remote play
  scores   - View high scores
  history  - View recent rounds
  soak     - Headless random play with board checks

Examples:
  pillbox menu
  pillbox play --level 5 --difficulty hard
  pillbox play virus_endless
  pillbox serve --ssh :2222
  pillbox history --limit 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pillbox/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name recorded with scores")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(soakCmd)
	rootCmd.AddCommand(configCmd)
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// newLogger builds the command logger. Interactive commands own the terminal,
// so they log only when --log-file is set.
func newLogger(prefix string, interactive bool) *log.Logger {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		if logFile == nil {
			f, openErr := logging.OpenFile(flagLogFile)
			if openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", openErr)
				return logging.Discard()
			}
			logFile = f
		}
		w = logFile
	case interactive:
		return logging.Discard()
	}
	return logging.New(w, prefix, level)
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// loadGameConfig loads the virus config from --config and applies --difficulty.
func loadGameConfig() config.VirusConfig {
	cfg, err := config.LoadVirus(flagConfig)
	if err != nil {
		exitf("loading config: %v", err)
	}
	if preset := parseDifficulty(); preset != "" {
		config.ApplyVirusPreset(&cfg, preset)
	}
	return cfg
}

// parseDifficulty validates --difficulty; empty means the config's own setting.
func parseDifficulty() config.DifficultyPreset {
	if flagDifficulty == "" {
		return ""
	}
	preset := config.ParsePreset(flagDifficulty)
	if preset == "" {
		exitf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	return preset
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	closeLogFile()
	os.Exit(1)
}
