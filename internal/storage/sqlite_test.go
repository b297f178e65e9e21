package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{GameID: "virus", Score: 100, Level: 2},
		{GameID: "virus", Score: 50, Level: 1, Player: "alice"},
		{GameID: "virus", Score: 200, Level: 3},
		{GameID: "virus_endless", Score: 500, Level: 7},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("virus", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Level != 3 {
		t.Errorf("Level = %d, want 3", scores[0].Level)
	}
	if scores[0].Player != DefaultPlayer {
		t.Errorf("empty player should be stored as %q, got %q", DefaultPlayer, scores[0].Player)
	}
	if scores[2].Player != "alice" {
		t.Errorf("Player = %q, want alice", scores[2].Player)
	}

	endless, err := store.TopScores("virus_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{GameID: "test", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("virus")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore(ScoreEntry{GameID: "virus", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "virus", Score: 300})
	store.SaveScore(ScoreEntry{GameID: "virus", Score: 200})

	high, err = store.HighScore("virus")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{GameID: "virus", Score: 100})
	store.SaveRound(RoundRecord{GameID: "virus", Level: 1, Outcome: "lost"})
	store.SaveScore(ScoreEntry{GameID: "virus_endless", Score: 300})

	if err := store.ClearScores("virus"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("virus", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if rounds, _ := store.RecentRounds("virus", 10); len(rounds) != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", len(rounds))
	}
	if scores, _ := store.TopScores("virus_endless", 10); len(scores) != 1 {
		t.Error("Endless scores should not be affected")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore(ScoreEntry{GameID: "test", Score: i * 10})
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreRounds(t *testing.T) {
	store := openTestStore(t)

	first := RoundRecord{
		GameID:       "virus",
		Seed:         42,
		Level:        1,
		Outcome:      "won",
		Contaminants: 4,
		Cleared:      4,
		Pieces:       9,
		Ticks:        180,
		LongestChain: 2,
		Score:        900,
	}
	id, err := store.SaveRound(first)
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	got, err := store.RoundByID(id)
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RoundByID() returned nil")
	}
	first.ID = id
	first.Player = DefaultPlayer
	first.CreatedAt = got.CreatedAt
	if *got != first {
		t.Errorf("RoundByID() = %+v, want %+v", *got, first)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	store.SaveRound(RoundRecord{GameID: "virus", Player: "bob", Level: 2, Outcome: "lost", Cleared: 3, LongestChain: 4})
	store.SaveRound(RoundRecord{GameID: "virus_endless", Player: "bob", Level: 1, Outcome: "won", Cleared: 4})

	recent, err := store.RecentRounds("virus", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Level != 2 {
		t.Errorf("RecentRounds() should be newest first, got %+v", recent)
	}

	all, _ := store.RecentRounds("", 10)
	if len(all) != 3 {
		t.Errorf("RecentRounds(all) = %d rounds, want 3", len(all))
	}

	bob, _ := store.PlayerRounds("bob", 10)
	if len(bob) != 2 {
		t.Errorf("PlayerRounds(bob) = %d rounds, want 2", len(bob))
	}

	missing, err := store.RoundByID(9999)
	if err != nil || missing != nil {
		t.Errorf("RoundByID(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("virus")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore(ScoreEntry{GameID: "virus", Score: 100, Level: 2})
	store.SaveScore(ScoreEntry{GameID: "virus", Score: 300, Level: 4})
	store.SaveRound(RoundRecord{GameID: "virus", Level: 1, Outcome: "won", Cleared: 4, LongestChain: 2})
	store.SaveRound(RoundRecord{GameID: "virus", Level: 2, Outcome: "lost", Cleared: 5, LongestChain: 3})

	stats, err := store.GetGameStats("virus")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("score stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.BestLevel != 4 {
		t.Errorf("BestLevel = %d, want 4", stats.BestLevel)
	}
	if stats.RoundsWon != 1 || stats.RoundsLost != 1 || stats.Cleared != 9 || stats.LongestChain != 3 {
		t.Errorf("round stats = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if all["virus"] == nil || all["virus"].GamesCount != 2 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
}

func TestStoreCreatesNestedDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"~/.pillbox/scores.db", filepath.Join(home, ".pillbox/scores.db")},
		{"~", home},
		{"/tmp/scores.db", "/tmp/scores.db"},
		{"~other/scores.db", "~other/scores.db"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := expandHome(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("expandHome(%q) = %q, %v; expected %q", tt.in, got, err, tt.want)
		}
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore(ScoreEntry{GameID: "virus", Score: 300}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil || version != len(migrations) {
		t.Errorf("user_version = %d, %v; expected %d", version, err, len(migrations))
	}
	if high, err := store.HighScore("virus"); err != nil || high != 300 {
		t.Errorf("HighScore() = %d, %v after reopen", high, err)
	}
}
