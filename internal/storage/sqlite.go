// Package storage provides SQLite-based persistence for scores and round history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// DefaultPlayer is recorded for local games.
const DefaultPlayer = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	Level     int // Level reached, 1-based
	CreatedAt time.Time
}

// RoundRecord is the persisted outcome of one round (one level attempt).
type RoundRecord struct {
	ID           int64
	GameID       string
	Player       string
	Seed         int64
	Level        int
	Outcome      string // "won" or "lost"
	Contaminants int    // Seeded at round start
	Cleared      int    // Contaminants cleared
	Pieces       int
	Ticks        int
	LongestChain int
	Score        int // Points gained during the round
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SSH sessions share the store
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrations are applied in order; PRAGMA user_version holds how many ran.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		player TEXT NOT NULL DEFAULT 'local',
		score INTEGER NOT NULL,
		level INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);`,

	`CREATE TABLE IF NOT EXISTS rounds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		player TEXT NOT NULL DEFAULT 'local',
		seed INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		contaminants INTEGER NOT NULL DEFAULT 0,
		cleared INTEGER NOT NULL DEFAULT 0,
		pieces INTEGER NOT NULL DEFAULT 0,
		ticks INTEGER NOT NULL DEFAULT 0,
		longest_chain INTEGER NOT NULL DEFAULT 0,
		score INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_rounds_game_id ON rounds(game_id);
	CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player);`,
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime converts a scanned created_at value; the driver may return either form.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a finished game. Empty Player is stored as DefaultPlayer.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.Player == "" {
		e.Player = DefaultPlayer
	}
	if e.Level < 1 {
		e.Level = 1
	}

	return s.insert("score",
		"INSERT INTO scores (game_id, player, score, level) VALUES (?, ?, ?, ?)",
		e.GameID, e.Player, e.Score, e.Level)
}

func (s *Store) insert(what, query string, args ...any) (int64, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save %s: %w", what, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted %s ID: %w", what, err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, game_id, player, score, level, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, game_id, player, score, level, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC`,
		gameID,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	return collect(s.db, "scores", query, args, func(rows *sql.Rows) (ScoreEntry, error) {
		var e ScoreEntry
		var createdAt any
		err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Level, &createdAt)
		e.CreatedAt = parseTime(createdAt)
		return e, err
	})
}

// collect runs query and scans every row with scan.
func collect[T any](db *sql.DB, what, query string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query %s: %w", what, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan %s: %w", what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: %s iteration: %w", what, err)
	}
	return out, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores and round history for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM rounds WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// SaveRound records the outcome of one round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundRecord) (int64, error) {
	if r.Player == "" {
		r.Player = DefaultPlayer
	}

	return s.insert("round",
		`INSERT INTO rounds
		 (game_id, player, seed, level, outcome, contaminants, cleared, pieces, ticks, longest_chain, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Player, r.Seed, r.Level, r.Outcome,
		r.Contaminants, r.Cleared, r.Pieces, r.Ticks, r.LongestChain, r.Score)
}

// RoundByID retrieves a single round. Returns nil if it does not exist.
func (s *Store) RoundByID(id int64) (*RoundRecord, error) {
	rounds, err := s.queryRounds(roundColumns+` FROM rounds WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, nil
	}
	return &rounds[0], nil
}

// RecentRounds retrieves the most recent rounds, newest first.
// An empty gameID returns rounds of every game.
func (s *Store) RecentRounds(gameID string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if gameID == "" {
		return s.queryRounds(roundColumns+` FROM rounds ORDER BY id DESC LIMIT ?`, limit)
	}
	return s.queryRounds(roundColumns+` FROM rounds WHERE game_id = ? ORDER BY id DESC LIMIT ?`, gameID, limit)
}

// PlayerRounds retrieves round history for one player, newest first.
func (s *Store) PlayerRounds(player string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRounds(roundColumns+` FROM rounds WHERE player = ? ORDER BY id DESC LIMIT ?`, player, limit)
}

const roundColumns = `SELECT id, game_id, player, seed, level, outcome, contaminants, cleared,
		pieces, ticks, longest_chain, score, created_at`

func (s *Store) queryRounds(query string, args ...any) ([]RoundRecord, error) {
	return collect(s.db, "rounds", query, args, func(rows *sql.Rows) (RoundRecord, error) {
		var r RoundRecord
		var createdAt any
		err := rows.Scan(&r.ID, &r.GameID, &r.Player, &r.Seed, &r.Level, &r.Outcome,
			&r.Contaminants, &r.Cleared, &r.Pieces, &r.Ticks, &r.LongestChain, &r.Score, &createdAt)
		r.CreatedAt = parseTime(createdAt)
		return r, err
	})
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID       string
	GamesCount   int
	HighScore    int
	AvgScore     float64
	TotalScore   int64
	BestLevel    int
	RoundsWon    int
	RoundsLost   int
	Cleared      int64 // Contaminants cleared over all rounds
	LongestChain int
	LastPlayed   time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(level), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BestLevel)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COALESCE(SUM(outcome = 'won'), 0), COALESCE(SUM(outcome = 'lost'), 0),
		        COALESCE(SUM(cleared), 0), COALESCE(MAX(longest_chain), 0)
		 FROM rounds WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RoundsWon, &stats.RoundsLost, &stats.Cleared, &stats.LongestChain)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves score statistics for every game that has scores.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	list, err := collect(s.db, "stats",
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(level), MAX(created_at)
		 FROM scores GROUP BY game_id`, nil,
		func(rows *sql.Rows) (*GameStats, error) {
			gs := &GameStats{}
			var lastPlayed any
			err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &gs.BestLevel, &lastPlayed)
			gs.LastPlayed = parseTime(lastPlayed)
			return gs, err
		})
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*GameStats, len(list))
	for _, gs := range list {
		stats[gs.GameID] = gs
	}
	return stats, nil
}
