package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pillbox/internal/registry"
	"github.com/vovakirdan/pillbox/internal/storage"
)

var (
	flagScoresAll   bool
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a game mode (default: the campaign).

Examples:
  pillbox scores
  pillbox scores virus_endless --limit 25
  pillbox scores --all
  pillbox scores virus --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show a summary for every mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and round history for the mode")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 = all)")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresAll {
		printAllStats(store)
		return
	}

	gameID := "virus"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		exitf("unknown mode %q, run 'pillbox list' to see available modes", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		exitf("creating game: %v", err)
	}
	title := game.Title()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Cleared scores and history for %s.\n", title)
		return
	}

	var scores []storage.ScoreEntry
	if flagScoresLimit > 0 {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	} else {
		scores, err = store.AllScores(gameID)
	}
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pillbox play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "Rank", "Score", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-12s  %s\n", "----", "-----", "-----", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %-12s  %s\n", i+1, entry.Score, entry.Level, entry.Player, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  |  Games: %d  |  Avg: %.0f  |  Best level: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
}

func printAllStats(store *storage.Store) {
	all, err := store.GetAllGamesStats()
	if err != nil {
		exitf("%v", err)
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %-5s  %s\n", "Mode", "Games", "Best", "Avg", "Level", "Last played")
	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %-5s  %s\n", "----", "-----", "----", "---", "-----", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-14s  %-6d  %-10d  %-10.0f  %-5d  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.BestLevel, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
