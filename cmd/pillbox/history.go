package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pillbox/internal/registry"
	"github.com/vovakirdan/pillbox/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryMine  bool
	flagHistoryID    int64
)

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Show recent rounds",
	Long: `List recently finished rounds, one line per level attempt.

Examples:
  pillbox history
  pillbox history virus_endless --limit 50
  pillbox history --mine
  pillbox history --id 12`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of rounds to show")
	historyCmd.Flags().BoolVar(&flagHistoryMine, "mine", false, "Only rounds played by --player, across modes")
	historyCmd.Flags().Int64Var(&flagHistoryID, "id", 0, "Show one round in detail")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagHistoryID > 0 {
		printRound(store, flagHistoryID)
		return
	}

	var rounds []storage.RoundRecord
	if flagHistoryMine {
		rounds, err = store.PlayerRounds(flagPlayer, flagHistoryLimit)
	} else {
		gameID := "virus"
		if len(args) == 1 {
			gameID = args[0]
		}
		if !registry.Exists(gameID) {
			exitf("unknown mode %q, run 'pillbox list' to see available modes", gameID)
		}
		rounds, err = store.RecentRounds(gameID, flagHistoryLimit)
	}
	if err != nil {
		exitf("retrieving rounds: %v", err)
	}

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-14s  %-3s  %-6s  %-7s  %-5s  %-5s  %-8s  %-12s  %s\n",
		"ID", "Mode", "Lvl", "Result", "Viruses", "Pills", "Chain", "Score", "Player", "Date")
	for _, r := range rounds {
		fmt.Printf("  %-5d  %-14s  %-3d  %-6s  %-7s  %-5d  %-5d  %-8d  %-12s  %s\n",
			r.ID, r.GameID, r.Level, r.Outcome, fmt.Sprintf("%d/%d", r.Cleared, r.Contaminants),
			r.Pieces, r.LongestChain, r.Score, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printRound(store *storage.Store, id int64) {
	r, err := store.RoundByID(id)
	if err != nil {
		exitf("%v", err)
	}
	if r == nil {
		exitf("no round with id %d", id)
	}

	fmt.Printf("Round %d - %s level %d\n", r.ID, r.GameID, r.Level)
	fmt.Println()
	fmt.Printf("  Result:   %s\n", r.Outcome)
	fmt.Printf("  Player:   %s\n", r.Player)
	fmt.Printf("  Seed:     %d\n", r.Seed)
	fmt.Printf("  Viruses:  %d of %d cleared\n", r.Cleared, r.Contaminants)
	fmt.Printf("  Pills:    %d\n", r.Pieces)
	fmt.Printf("  Ticks:    %d\n", r.Ticks)
	fmt.Printf("  Chain:    %d\n", r.LongestChain)
	fmt.Printf("  Score:    %d\n", r.Score)
	fmt.Printf("  Played:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
}
